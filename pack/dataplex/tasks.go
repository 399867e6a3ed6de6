package dataplex

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// taskInput identifies a single task.
type taskInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	TaskID    string `json:"task_id"`
}

func (in *taskInput) path() (string, error) {
	return gcloud.TaskPath(in.ProjectID, in.Location, in.LakeID, in.TaskID)
}

// createTaskInput is the input for the dataplex_create_task tool.
type createTaskInput struct {
	taskInput
	Config map[string]any `json:"config"`
}

func createTaskTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_create_task").
		WithDescription("Create a scheduled or on-demand task in a Dataplex lake").
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in createTaskInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.LakePath(in.ProjectID, in.Location, in.LakeID)
			if err != nil {
				return failed(err)
			}
			if in.TaskID == "" {
				return failed(gcloud.InvalidArgumentf("task_id is required"))
			}
			if err := gcloud.RequireSections(in.Config, "trigger_spec", "execution_spec"); err != nil {
				return failed(err)
			}
			if _, err := gcloud.RequireOneOf(in.Config, "spark", "notebook", "sql_script"); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.CreateTask(ctx, parent, in.TaskID, gcloud.SanitizeConfig(in.Config))
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

// updateTaskInput is the input for the dataplex_update_task tool.
type updateTaskInput struct {
	taskInput
	UpdateMask []string       `json:"update_mask"`
	Config     map[string]any `json:"config"`
}

func updateTaskTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_update_task").
		WithDescription("Update fields of a Dataplex task").
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in updateTaskInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}
			spec, err := gcloud.BuildUpdate(name, in.UpdateMask, in.Config)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.UpdateTask(ctx, spec)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func deleteTaskTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_delete_task").
		WithDescription("Delete a Dataplex task").
		Destructive().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in taskInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.DeleteTask(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func getTaskTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_get_task").
		WithDescription("Fetch a Dataplex task").
		ReadOnly().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in taskInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			task, err := cfg.Provider.GetTask(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(task))
		}).
		MustBuild()
}

// listTasksInput is the input for the dataplex_list_tasks tool.
type listTasksInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	PageSize  int    `json:"page_size,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

func listTasksTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_list_tasks").
		WithDescription("List tasks within a Dataplex lake").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listTasksInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.LakePath(in.ProjectID, in.Location, in.LakeID)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			tasks, err := cfg.Provider.ListTasks(ctx, parent, in.PageSize, in.Filter)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: tasks, Count: len(tasks)}))
		}).
		MustBuild()
}

// runTaskInput is the input for the dataplex_run_task tool.
type runTaskInput struct {
	taskInput
	Labels map[string]string `json:"labels,omitempty"`
	Args   map[string]string `json:"args,omitempty"`
}

func runTaskTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_run_task").
		WithDescription("Trigger an on-demand run of a Dataplex task").
		WithRiskLevel(tool.RiskMedium).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in runTaskInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			job, err := cfg.Provider.RunTask(ctx, name, in.Labels, in.Args)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(job))
		}).
		MustBuild()
}
