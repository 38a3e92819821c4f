package memory

import (
	"context"
	"sort"
	"sync"

	"zafarpos/backend/internal/domain"
	"zafarpos/backend/internal/store"
)

type Store struct {
	mu            sync.RWMutex
	categories    map[int64]domain.Category
	subcategories map[int64]domain.Subcategory
	items         map[int64]domain.Item
}

// NewSeeded builds the dev/test catalog from store.SeedCatalog. IDs are
// assigned in seed order starting at 1, matching the auto-increment order
// of the SQL seed.
func NewSeeded() *Store {
	s := &Store{
		categories:    make(map[int64]domain.Category),
		subcategories: make(map[int64]domain.Subcategory),
		items:         make(map[int64]domain.Item),
	}

	var catID, subID, itemID int64
	for _, cat := range store.SeedCatalog {
		catID++
		s.categories[catID] = domain.Category{ID: catID, Title: cat.Title}
		for _, sub := range cat.Subs {
			subID++
			s.subcategories[subID] = domain.Subcategory{ID: subID, CategoryID: catID, Title: sub.Title}
			for _, item := range sub.Items {
				itemID++
				s.items[itemID] = domain.Item{
					ID:            itemID,
					SubcategoryID: subID,
					Title:         item.Title,
					PriceCents:    item.PriceCents,
					Qty:           item.Qty,
				}
			}
		}
	}

	return s
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })

	return categories, nil
}

func (s *Store) ListSubcategories(_ context.Context, categoryID int64) ([]domain.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]domain.Subcategory, 0, 8)
	for _, sub := range s.subcategories {
		if sub.CategoryID == categoryID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })

	return subs, nil
}

func (s *Store) ListItems(_ context.Context, subcategoryID int64) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Item, 0, 8)
	for _, item := range s.items {
		if item.SubcategoryID == subcategoryID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

func (s *Store) GetItem(_ context.Context, itemID int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}
