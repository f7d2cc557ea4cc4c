package commission

import (
	"context"
	"log/slog"
	"sync"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
)

// BatchClient is the remote half of commission resolution.
type BatchClient interface {
	BatchLookup(ctx context.Context, ids []string, cfg domain.ProviderConfig) map[string]float64
}

// Resolver merges the manual override store with the remote affiliate client.
// The store is owned exclusively by the resolver; callers go through Ingest,
// Resolve and UpdateConfig.
type Resolver struct {
	store  *Store
	client BatchClient

	mu  sync.RWMutex
	cfg domain.ProviderConfig
}

func NewResolver(store *Store, client BatchClient, cfg domain.ProviderConfig) *Resolver {
	return &Resolver{store: store, client: client, cfg: cfg}
}

// Resolve maps each requested id to a commission rate. Manual overrides win
// unconditionally; only the unresolved complement is sent to the remote
// provider. Ids neither source knows are absent from the result, never
// present with a placeholder.
func (r *Resolver) Resolve(ctx context.Context, ids []string) map[string]float64 {
	result := r.store.Lookup(ids)

	var remaining []string
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		return result
	}

	for id, rate := range r.client.BatchLookup(ctx, remaining, r.Config()) {
		result[id] = rate
	}
	return result
}

// IngestManualCSV feeds a tabular override batch into the store and returns
// the number of rows accepted.
func (r *Resolver) IngestManualCSV(data []byte) int {
	count := r.store.IngestCSV(data)
	slog.Info("manual overrides ingested", "rows", count, "total", r.store.Len())
	return count
}

// UpdateConfig replaces the provider configuration wholesale.
func (r *Resolver) UpdateConfig(cfg domain.ProviderConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
}

// Config returns the current provider configuration snapshot.
func (r *Resolver) Config() domain.ProviderConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}
