package cache

import (
	"context"
	"time"

	"stylematrix/backend/internal/domain"
)

// CatalogCache holds the services catalog, the one read hot enough to be
// worth caching. Sales aggregates are always recomputed from the store.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]domain.Service, bool, error)
	Set(ctx context.Context, key string, services []domain.Service, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context, _ string) ([]domain.Service, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ string, _ []domain.Service, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
