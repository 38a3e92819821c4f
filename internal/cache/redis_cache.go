package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"zafarpos/backend/internal/domain"
)

type RedisCatalogCache struct {
	client *redis.Client
}

func NewRedisCatalogCache(addr string, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCatalogCache{client: client}
}

func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func (c *RedisCatalogCache) GetSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, bool, error) {
	var subs []domain.Subcategory
	ok, err := c.get(ctx, subcategoriesKey(categoryID), &subs)
	return subs, ok, err
}

func (c *RedisCatalogCache) SetSubcategories(ctx context.Context, categoryID int64, subs []domain.Subcategory, ttl time.Duration) error {
	return c.set(ctx, subcategoriesKey(categoryID), subs, ttl)
}

func (c *RedisCatalogCache) GetItems(ctx context.Context, subcategoryID int64) ([]domain.Item, bool, error) {
	var items []domain.Item
	ok, err := c.get(ctx, itemsKey(subcategoryID), &items)
	return items, ok, err
}

func (c *RedisCatalogCache) SetItems(ctx context.Context, subcategoryID int64, items []domain.Item, ttl time.Duration) error {
	return c.set(ctx, itemsKey(subcategoryID), items, ttl)
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func subcategoriesKey(categoryID int64) string {
	return fmt.Sprintf("catalog:subcategories:%d", categoryID)
}

func itemsKey(subcategoryID int64) string {
	return fmt.Sprintf("catalog:items:%d", subcategoryID)
}
