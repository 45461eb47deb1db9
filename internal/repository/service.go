package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/car-doctor/internal/database"
	"github.com/deppfellow/car-doctor/internal/dberr"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogCachePrefix = "catalog:"

// catalogCache is the subset of *redis.Client the catalog reads use.
type catalogCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ServiceRepository reads the service catalog. Reads go through a Redis
// cache when one is configured; services are never written by this API
// so entries only expire.
type ServiceRepository struct {
	db     *database.Database
	cache  catalogCache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewServiceRepository(db *database.Database, cache *redis.Client, ttl time.Duration, logger *zerolog.Logger) *ServiceRepository {
	r := &ServiceRepository{db: db, ttl: ttl, logger: logger}
	if cache != nil && ttl > 0 {
		r.cache = cache
	}
	return r
}

func (r *ServiceRepository) ListServices(ctx context.Context, q model.ServiceQuery) ([]model.Service, error) {
	key := listCacheKey(q)

	services := []model.Service{}
	if r.cacheGet(ctx, key, &services) {
		return services, nil
	}

	opts := options.Find().SetSort(ServiceSort(q.Sort))

	cursor, err := r.db.Services().Find(ctx, ServiceFilter(q.Search), opts)
	if err != nil {
		return nil, dberr.Wrap(err, database.ServicesCollection, "find")
	}

	if err := cursor.All(ctx, &services); err != nil {
		return nil, dberr.Wrap(err, database.ServicesCollection, "decode")
	}
	if services == nil {
		services = []model.Service{}
	}

	r.cacheSet(ctx, key, services)

	return services, nil
}

// GetService returns the projected service, or nil when no record has id.
func (r *ServiceRepository) GetService(ctx context.Context, id primitive.ObjectID) (*model.Service, error) {
	key := catalogCachePrefix + "detail:" + id.Hex()

	var cached model.Service
	if r.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	opts := options.FindOne().SetProjection(ServiceDetailProjection())

	var service model.Service
	err := r.db.Services().FindOne(ctx, RecordIDFilter(id), opts).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, database.ServicesCollection, "find one")
	}

	r.cacheSet(ctx, key, service)

	return &service, nil
}

func listCacheKey(q model.ServiceQuery) string {
	return fmt.Sprintf("%slist:%s:%s", catalogCachePrefix, q.Sort, q.Search)
}

// cacheGet reports whether key was found and decoded into dst. Cache
// failures are logged and treated as misses.
func (r *ServiceRepository) cacheGet(ctx context.Context, key string, dst any) bool {
	if r.cache == nil {
		return false
	}

	raw, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt")
		return false
	}

	return true
}

func (r *ServiceRepository) cacheSet(ctx context.Context, key string, value any) {
	if r.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("catalog cache encode failed")
		return
	}

	if err := r.cache.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}
