package dataproc

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// submitJobInput is the input for the dataproc_submit_job tool.
type submitJobInput struct {
	regionScope
	ClusterName string            `json:"cluster_name"`
	JobType     string            `json:"job_type"`
	JobConfig   map[string]any    `json:"job_config"`
	Labels      map[string]string `json:"labels,omitempty"`
	IDPrefix    string            `json:"id_prefix,omitempty"`
}

// submitJobOutput wraps the created job with its generated id.
type submitJobOutput struct {
	JobID string         `json:"job_id"`
	Job   map[string]any `json:"job"`
}

func submitJobTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_submit_job").
		WithDescription("Submit a job to a Dataproc cluster").
		WithRiskLevel(tool.RiskMedium).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in submitJobInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.regionScope.validate(); err != nil {
				return failed(err)
			}

			prefix := in.IDPrefix
			if prefix == "" {
				prefix = cfg.JobIDPrefix
			}
			job, jobID, err := BuildJob(in.ProjectID, prefix, in.JobType, in.ClusterName, in.JobConfig, in.Labels)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			created, err := cfg.Provider.SubmitJob(ctx, in.ProjectID, in.Region, job)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(submitJobOutput{JobID: jobID, Job: created}))
		}).
		MustBuild()
}

// jobInput identifies a single job.
type jobInput struct {
	regionScope
	JobID string `json:"job_id"`
}

func (in *jobInput) validate() error {
	if err := in.regionScope.validate(); err != nil {
		return err
	}
	if in.JobID == "" {
		return gcloud.InvalidArgumentf("job_id is required")
	}
	return nil
}

func getJobTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_get_job").
		WithDescription("Fetch a Dataproc job").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in jobInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			job, err := cfg.Provider.GetJob(ctx, in.ProjectID, in.Region, in.JobID)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(job))
		}).
		MustBuild()
}

// listJobsInput is the input for the dataproc_list_jobs tool.
type listJobsInput struct {
	regionScope
	ClusterName  string `json:"cluster_name,omitempty"`
	StateMatcher string `json:"state_matcher,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
}

func listJobsTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_list_jobs").
		WithDescription("List Dataproc jobs in a region, optionally filtered by cluster or activity").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listJobsInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.regionScope.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			jobs, err := cfg.Provider.ListJobs(ctx, in.ProjectID, in.Region, in.ClusterName, in.StateMatcher, in.PageSize)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: jobs, Count: len(jobs)}))
		}).
		MustBuild()
}

func cancelJobTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_cancel_job").
		WithDescription("Cancel a running Dataproc job").
		WithRiskLevel(tool.RiskMedium).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in jobInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			job, err := cfg.Provider.CancelJob(ctx, in.ProjectID, in.Region, in.JobID)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(job))
		}).
		MustBuild()
}
