package dataplex

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// jobInput identifies a single task job.
type jobInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	TaskID    string `json:"task_id"`
	JobID     string `json:"job_id"`
}

func (in *jobInput) path() (string, error) {
	return gcloud.JobPath(in.ProjectID, in.Location, in.LakeID, in.TaskID, in.JobID)
}

func getJobTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_get_job").
		WithDescription("Fetch a Dataplex task job").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in jobInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			job, err := cfg.Provider.GetJob(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(job))
		}).
		MustBuild()
}

// listJobsInput is the input for the dataplex_list_jobs tool.
type listJobsInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	TaskID    string `json:"task_id"`
	PageSize  int    `json:"page_size,omitempty"`
}

func listJobsTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_list_jobs").
		WithDescription("List jobs of a Dataplex task").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listJobsInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.TaskPath(in.ProjectID, in.Location, in.LakeID, in.TaskID)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			jobs, err := cfg.Provider.ListJobs(ctx, parent, in.PageSize)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: jobs, Count: len(jobs)}))
		}).
		MustBuild()
}

func cancelJobTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_cancel_job").
		WithDescription("Cancel a running Dataplex task job").
		WithRiskLevel(tool.RiskMedium).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in jobInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			if err := cfg.Provider.CancelJob(ctx, name); err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(map[string]any{
				"name":             name,
				"cancel_requested": true,
			}))
		}).
		MustBuild()
}
