// Package catalog provides Dataplex catalog search tools.
package catalog

import "context"

// Provider defines the interface for catalog entry search.
type Provider interface {
	// Name returns the provider name (e.g., "gcp", "memory").
	Name() string

	// SearchEntries searches catalog entries within a project scope.
	SearchEntries(ctx context.Context, scope, query string, pageSize int) ([]map[string]any, error)
}
