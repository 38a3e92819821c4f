package cache

import (
	"context"
	"time"

	"zafarpos/backend/internal/domain"
)

// CatalogCache caches the two filtered catalog lookups. The catalog is
// read-only at runtime, so entries only ever expire by TTL.
type CatalogCache interface {
	GetSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, bool, error)
	SetSubcategories(ctx context.Context, categoryID int64, subs []domain.Subcategory, ttl time.Duration) error
	GetItems(ctx context.Context, subcategoryID int64) ([]domain.Item, bool, error)
	SetItems(ctx context.Context, subcategoryID int64, items []domain.Item, ttl time.Duration) error
}

type NoopCatalogCache struct{}

func (NoopCatalogCache) GetSubcategories(_ context.Context, _ int64) ([]domain.Subcategory, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetSubcategories(_ context.Context, _ int64, _ []domain.Subcategory, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) GetItems(_ context.Context, _ int64) ([]domain.Item, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetItems(_ context.Context, _ int64, _ []domain.Item, _ time.Duration) error {
	return nil
}
