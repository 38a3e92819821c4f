package store

import (
	"context"
	"errors"

	"zafarpos/backend/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Repository serves the read-only catalog hierarchy. Unknown parent IDs
// yield empty slices, not errors; only GetItem distinguishes absence.
type Repository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
	ListItems(ctx context.Context, subcategoryID int64) ([]domain.Item, error)
	GetItem(ctx context.Context, itemID int64) (*domain.Item, error)
}
