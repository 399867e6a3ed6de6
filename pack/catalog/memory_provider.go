package catalog

import (
	"context"
	"strings"
	"sync"
)

// MemoryProvider is an in-memory implementation of the Provider interface.
// Useful for testing and development.
type MemoryProvider struct {
	mu      sync.RWMutex
	entries map[string][]map[string]any
}

// NewMemoryProvider creates a new in-memory catalog provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		entries: make(map[string][]map[string]any),
	}
}

// Name returns the provider name.
func (p *MemoryProvider) Name() string {
	return "memory"
}

// AddEntry registers a catalog entry under a project scope.
func (p *MemoryProvider) AddEntry(scope string, entry map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[scope] = append(p.entries[scope], entry)
}

// SearchEntries searches catalog entries within a project scope. Matching is
// a case-insensitive substring check over the entry name and description.
func (p *MemoryProvider) SearchEntries(ctx context.Context, scope, query string, pageSize int) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	needle := strings.ToLower(query)
	var items []map[string]any
	for _, entry := range p.entries[scope] {
		name, _ := entry["name"].(string)
		desc, _ := entry["description"].(string)
		if !strings.Contains(strings.ToLower(name), needle) &&
			!strings.Contains(strings.ToLower(desc), needle) {
			continue
		}
		items = append(items, entry)
		if pageSize > 0 && len(items) >= pageSize {
			break
		}
	}
	return items, nil
}
