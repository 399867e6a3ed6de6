package gcloud

import "fmt"

// Resource paths follow the canonical hierarchy
// project -> location -> lake -> zone -> asset | task -> job.
// Builders are pure: they validate their inputs and never touch the network.

type pathPart struct {
	collection string
	id         string
}

func buildPath(parts ...pathPart) (string, error) {
	name := ""
	for _, p := range parts {
		if p.id == "" {
			return "", InvalidArgumentf("%s id must not be empty", p.collection)
		}
		name += "/" + p.collection + "/" + p.id
	}
	return name[1:], nil
}

// LocationPath returns projects/{project}/locations/{location}.
func LocationPath(project, location string) (string, error) {
	return buildPath(
		pathPart{"projects", project},
		pathPart{"locations", location},
	)
}

// LakePath returns the canonical name of a lake.
func LakePath(project, location, lake string) (string, error) {
	return buildPath(
		pathPart{"projects", project},
		pathPart{"locations", location},
		pathPart{"lakes", lake},
	)
}

// ZonePath returns the canonical name of a zone within a lake.
func ZonePath(project, location, lake, zone string) (string, error) {
	return buildPath(
		pathPart{"projects", project},
		pathPart{"locations", location},
		pathPart{"lakes", lake},
		pathPart{"zones", zone},
	)
}

// AssetPath returns the canonical name of an asset within a zone.
func AssetPath(project, location, lake, zone, asset string) (string, error) {
	return buildPath(
		pathPart{"projects", project},
		pathPart{"locations", location},
		pathPart{"lakes", lake},
		pathPart{"zones", zone},
		pathPart{"assets", asset},
	)
}

// TaskPath returns the canonical name of a task within a lake.
func TaskPath(project, location, lake, task string) (string, error) {
	return buildPath(
		pathPart{"projects", project},
		pathPart{"locations", location},
		pathPart{"lakes", lake},
		pathPart{"tasks", task},
	)
}

// JobPath returns the canonical name of a job (task run) within a task.
func JobPath(project, location, lake, task, job string) (string, error) {
	return buildPath(
		pathPart{"projects", project},
		pathPart{"locations", location},
		pathPart{"lakes", lake},
		pathPart{"tasks", task},
		pathPart{"jobs", job},
	)
}

// RegionScope validates a Dataproc project/region pair and returns the
// regional service endpoint.
func RegionScope(project, region string) (string, error) {
	if project == "" {
		return "", InvalidArgumentf("project id must not be empty")
	}
	if region == "" {
		return "", InvalidArgumentf("region must not be empty")
	}
	return fmt.Sprintf("%s-dataproc.googleapis.com:443", region), nil
}
