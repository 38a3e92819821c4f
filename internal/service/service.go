package service

import (
	"context"
	"log"
	"time"

	"zafarpos/backend/internal/cache"
	"zafarpos/backend/internal/domain"
	"zafarpos/backend/internal/store"
)

// Service is the catalog read path: repository lookups behind an optional
// read-through cache, with results normalized so handlers always encode a
// JSON array (the upstream API used to return no body for empty sets;
// clients should get [] instead).
type Service struct {
	repo     store.Repository
	cache    cache.CatalogCache
	cacheTTL time.Duration
}

func New(repo store.Repository, catalogCache cache.CatalogCache, cacheTTL time.Duration) *Service {
	if catalogCache == nil {
		catalogCache = cache.NoopCatalogCache{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &Service{
		repo:     repo,
		cache:    catalogCache,
		cacheTTL: cacheTTL,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *Service) ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	if cached, ok, err := s.cache.GetSubcategories(ctx, categoryID); err != nil {
		log.Printf("[service] WARN: subcategory cache read category=%d: %v", categoryID, err)
	} else if ok {
		return cached, nil
	}

	subs, err := s.repo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []domain.Subcategory{}
	}

	if err := s.cache.SetSubcategories(ctx, categoryID, subs, s.cacheTTL); err != nil {
		log.Printf("[service] WARN: subcategory cache write category=%d: %v", categoryID, err)
	}

	return subs, nil
}

func (s *Service) ListItems(ctx context.Context, subcategoryID int64) ([]domain.Item, error) {
	if cached, ok, err := s.cache.GetItems(ctx, subcategoryID); err != nil {
		log.Printf("[service] WARN: item cache read subcategory=%d: %v", subcategoryID, err)
	} else if ok {
		return cached, nil
	}

	items, err := s.repo.ListItems(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}

	if err := s.cache.SetItems(ctx, subcategoryID, items, s.cacheTTL); err != nil {
		log.Printf("[service] WARN: item cache write subcategory=%d: %v", subcategoryID, err)
	}

	return items, nil
}

func (s *Service) GetItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}
