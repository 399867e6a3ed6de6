package catalog

import (
	"context"
	"fmt"

	dataplexapi "cloud.google.com/go/dataplex/apiv1"
	"cloud.google.com/go/dataplex/apiv1/dataplexpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// GCPProvider implements Provider against the Dataplex catalog service.
type GCPProvider struct {
	client *dataplexapi.CatalogClient
}

// GCPConfig configures the GCP provider.
type GCPConfig struct {
	// CredentialsFile is an optional path to a service account JSON file.
	// When empty, Application Default Credentials are used.
	CredentialsFile string

	// Endpoint overrides the service endpoint, mainly for tests.
	Endpoint string
}

// NewGCPProvider creates a catalog provider backed by the real service.
func NewGCPProvider(ctx context.Context, cfg GCPConfig) (*GCPProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := dataplexapi.NewCatalogClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return &GCPProvider{client: client}, nil
}

// Name returns the provider name.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// Close releases the underlying client connection.
func (p *GCPProvider) Close() error {
	return p.client.Close()
}

// SearchEntries searches catalog entries within a project scope.
func (p *GCPProvider) SearchEntries(ctx context.Context, scope, query string, pageSize int) ([]map[string]any, error) {
	it := p.client.SearchEntries(ctx, &dataplexpb.SearchEntriesRequest{
		Name:     scope,
		Query:    query,
		PageSize: int32(pageSize),
	})

	var items []map[string]any
	for {
		result, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, gcloud.MessageToMap(result))
	}
	return items, nil
}
