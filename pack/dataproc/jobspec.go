package dataproc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// jobTypeFields maps a normalized job type to the name of its payload field
// in the job resource.
var jobTypeFields = map[string]string{
	"hadoop":    "hadoop_job",
	"spark":     "spark_job",
	"pyspark":   "pyspark_job",
	"hive":      "hive_job",
	"pig":       "pig_job",
	"spark_r":   "spark_r_job",
	"spark_sql": "spark_sql_job",
	"presto":    "presto_job",
	"trino":     "trino_job",
}

// NormalizeJobType canonicalizes a job type string: lowercased, trimmed,
// with dashes folded to underscores.
func NormalizeJobType(jobType string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(jobType)), "-", "_")
}

// SupportedJobTypes returns the sorted list of accepted job types.
func SupportedJobTypes() []string {
	types := make([]string, 0, len(jobTypeFields))
	for t := range jobTypeFields {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// validateJobConfig checks the per-type required fields of a job payload.
func validateJobConfig(jobType string, cfg map[string]any) error {
	switch jobType {
	case "pyspark":
		if s, _ := cfg["main_python_file_uri"].(string); s == "" {
			return gcloud.InvalidArgumentf("pyspark job requires main_python_file_uri")
		}
	case "spark_r":
		if s, _ := cfg["main_r_file_uri"].(string); s == "" {
			return gcloud.InvalidArgumentf("spark_r job requires main_r_file_uri")
		}
	case "hadoop", "spark":
		// main_class and main_jar_file_uri form a oneof on the job proto,
		// so exactly one must be set. Setting both is rejected here rather
		// than letting the service drop one of them.
		if _, err := gcloud.RequireOneOf(cfg, "main_class", "main_jar_file_uri"); err != nil {
			return err
		}
	case "hive", "pig", "spark_sql", "presto", "trino":
		key, err := gcloud.RequireOneOf(cfg, "query_file_uri", "query_list")
		if err != nil {
			return err
		}
		if key == "query_list" {
			list, _ := cfg["query_list"].(map[string]any)
			queries, _ := list["queries"].([]any)
			if len(queries) == 0 {
				return gcloud.InvalidArgumentf("query_list must contain at least one query")
			}
		}
	}
	return nil
}

// BuildJob assembles a submittable job resource: a generated id, the cluster
// placement, and the typed payload. Returns the job and its id.
func BuildJob(project, prefix, jobType, clusterName string, cfg map[string]any, labels map[string]string) (map[string]any, string, error) {
	normalized := NormalizeJobType(jobType)
	field, ok := jobTypeFields[normalized]
	if !ok {
		return nil, "", gcloud.InvalidArgumentf("unsupported job type %q, expected one of %s",
			jobType, strings.Join(SupportedJobTypes(), ", "))
	}
	if clusterName == "" {
		return nil, "", gcloud.InvalidArgumentf("cluster_name is required")
	}
	if cfg == nil {
		return nil, "", gcloud.InvalidArgumentf("job config is required")
	}
	if err := validateJobConfig(normalized, cfg); err != nil {
		return nil, "", err
	}

	if prefix == "" {
		prefix = "job"
	}
	jobID := fmt.Sprintf("%s-%s-%s", prefix, normalized, uuid.NewString()[:8])

	job := map[string]any{
		"reference": map[string]any{
			"project_id": project,
			"job_id":     jobID,
		},
		"placement": map[string]any{
			"cluster_name": clusterName,
		},
		field: gcloud.SanitizeConfig(cfg),
	}
	if len(labels) > 0 {
		asAny := make(map[string]any, len(labels))
		for k, v := range labels {
			asAny[k] = v
		}
		job["labels"] = asAny
	}
	return job, jobID, nil
}
