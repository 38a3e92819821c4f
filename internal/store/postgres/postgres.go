package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"zafarpos/backend/internal/domain"
	"zafarpos/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.seedIfEmpty(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS subcategories (
			id BIGSERIAL PRIMARY KEY,
			category_id BIGINT NOT NULL REFERENCES categories(id),
			title TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS items (
			id BIGSERIAL PRIMARY KEY,
			subcategory_id BIGINT NOT NULL REFERENCES subcategories(id),
			title TEXT NOT NULL,
			price_cents BIGINT NOT NULL,
			qty INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_subcategories_category ON subcategories(category_id);
		CREATE INDEX IF NOT EXISTS idx_items_subcategory ON items(subcategory_id);
	`)
	return err
}

// seedIfEmpty provisions the stock catalog on a fresh database, the same
// data the in-memory store ships with. An already populated catalog is
// left untouched.
func (s *Store) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, cat := range store.SeedCatalog {
		var catID int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (title) VALUES ($1) RETURNING id
		`, cat.Title).Scan(&catID); err != nil {
			return err
		}
		for _, sub := range cat.Subs {
			var subID int64
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO subcategories (category_id, title) VALUES ($1, $2) RETURNING id
			`, catID, sub.Title).Scan(&subID); err != nil {
				return err
			}
			for _, item := range sub.Items {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO items (subcategory_id, title, price_cents, qty) VALUES ($1, $2, $3, $4)
				`, subID, item.Title, item.PriceCents, item.Qty); err != nil {
					return err
				}
			}
		}
	}

	return tx.Commit()
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0, 16)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (s *Store) ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, title
		FROM subcategories
		WHERE category_id = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.Subcategory, 0, 16)
	for rows.Next() {
		var sub domain.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Title); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

func (s *Store) ListItems(ctx context.Context, subcategoryID int64) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subcategory_id, title, price_cents, qty
		FROM items
		WHERE subcategory_id = $1
		ORDER BY id
	`, subcategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0, 16)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.SubcategoryID, &item.Title, &item.PriceCents, &item.Qty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Store) GetItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	var item domain.Item
	err := s.db.QueryRowContext(ctx, `
		SELECT id, subcategory_id, title, price_cents, qty
		FROM items
		WHERE id = $1
	`, itemID).Scan(&item.ID, &item.SubcategoryID, &item.Title, &item.PriceCents, &item.Qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
