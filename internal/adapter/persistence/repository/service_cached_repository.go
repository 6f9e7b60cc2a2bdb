package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"
)

const (
	serviceCacheKeyPrefix = "catalog:service:"
	serviceListCacheKey   = "catalog:services"
)

// ServiceCache is the key/value store behind CachedServiceRepository.
// Get reports false on a miss.
type ServiceCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedServiceRepository is a read-through cache in front of the catalog store.
// Cache failures are logged and the call falls back to the store; writes
// always go to the store and then evict the affected keys.
type CachedServiceRepository struct {
	next  interfaces.IServiceRepository
	cache ServiceCache
	ttl   time.Duration
}

var _ interfaces.IServiceRepository = (*CachedServiceRepository)(nil)

func NewCachedServiceRepository(next interfaces.IServiceRepository, cache ServiceCache, ttl time.Duration) *CachedServiceRepository {
	return &CachedServiceRepository{next: next, cache: cache, ttl: ttl}
}

func (r *CachedServiceRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	key := serviceCacheKeyPrefix + id
	var cached entities.Service
	if r.load(ctx, key, &cached) {
		return cached, nil
	}

	s, err := r.next.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID != "" {
		r.store(ctx, key, s)
	}
	return s, nil
}

func (r *CachedServiceRepository) List(ctx context.Context) ([]entities.Service, error) {
	var cached []entities.Service
	if r.load(ctx, serviceListCacheKey, &cached) {
		return cached, nil
	}

	items, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, serviceListCacheKey, items)
	return items, nil
}

func (r *CachedServiceRepository) Save(ctx context.Context, s entities.Service) (entities.Service, error) {
	saved, err := r.next.Save(ctx, s)
	if err != nil {
		return entities.Service{}, err
	}
	r.evict(ctx, s.ID)
	return saved, nil
}

func (r *CachedServiceRepository) UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error) {
	updated, err := r.next.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.Service{}, err
	}
	r.evict(ctx, id)
	return updated, nil
}

func (r *CachedServiceRepository) load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[catalog][cache] get failed key=%s err=%v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[catalog][cache] decode failed key=%s err=%v", key, err)
		return false
	}
	return true
}

func (r *CachedServiceRepository) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[catalog][cache] encode failed key=%s err=%v", key, err)
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
		log.Printf("[catalog][cache] set failed key=%s err=%v", key, err)
	}
}

func (r *CachedServiceRepository) evict(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, serviceCacheKeyPrefix+id, serviceListCacheKey); err != nil {
		log.Printf("[catalog][cache] delete failed service_id=%s err=%v", id, err)
	}
}
