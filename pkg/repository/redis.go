package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/models"
	"github.com/go-redis/redis/v8"
)

// Snapshot keys. One full list per key; snapshots are replaced whole,
// never merged.
const (
	keyOrders     = "snapshot:orders"
	keyProducts   = "snapshot:products"
	keyCategories = "snapshot:categories"

	snapshotTTL = 30 * time.Second
)

// SnapshotCache holds the last fetched list of each entity. Every
// mutating call invalidates the affected snapshot so the next read is
// a full refetch from the owning store. A cache miss or redis failure
// is never an error, only a refetch.
type SnapshotCache struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewSnapshotCache(cfg *config.RedisConfig) *SnapshotCache {
	return &SnapshotCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *SnapshotCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SnapshotCache) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, snapshotTTL).Err()
}

func (r *SnapshotCache) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SnapshotCache) CacheOrders(ctx context.Context, orders []models.Order) error {
	return r.setJSON(ctx, keyOrders, orders)
}

func (r *SnapshotCache) GetOrders(ctx context.Context) ([]models.Order, bool) {
	var orders []models.Order
	ok, err := r.getJSON(ctx, keyOrders, &orders)
	if err != nil || !ok {
		return nil, false
	}
	return orders, true
}

// InvalidateOrders drops the order snapshot. Satisfies
// lifecycle.Invalidator.
func (r *SnapshotCache) InvalidateOrders(ctx context.Context) error {
	return r.client.Del(ctx, keyOrders).Err()
}

func (r *SnapshotCache) CacheProducts(ctx context.Context, products []models.Product) error {
	return r.setJSON(ctx, keyProducts, products)
}

func (r *SnapshotCache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	var products []models.Product
	ok, err := r.getJSON(ctx, keyProducts, &products)
	if err != nil || !ok {
		return nil, false
	}
	return products, true
}

func (r *SnapshotCache) InvalidateProducts(ctx context.Context) error {
	return r.client.Del(ctx, keyProducts).Err()
}

func (r *SnapshotCache) CacheCategories(ctx context.Context, categories []models.Category) error {
	return r.setJSON(ctx, keyCategories, categories)
}

func (r *SnapshotCache) GetCategories(ctx context.Context) ([]models.Category, bool) {
	var categories []models.Category
	ok, err := r.getJSON(ctx, keyCategories, &categories)
	if err != nil || !ok {
		return nil, false
	}
	return categories, true
}

func (r *SnapshotCache) InvalidateCategories(ctx context.Context) error {
	return r.client.Del(ctx, keyCategories).Err()
}

func (r *SnapshotCache) Close() error {
	return r.client.Close()
}
