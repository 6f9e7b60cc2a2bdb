package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"agency_configurator/internal/domain/entities"
	mock_interfaces "agency_configurator/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type memoryCache struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

func cachedService() entities.Service {
	return entities.Service{
		ID:                   "svc-website",
		Name:                 "Website",
		BasePrice:            decimal.RequireFromString("1000.50"),
		DeliveryTimeBaseDays: 10,
		Status:               entities.ServiceStatusActive,
	}
}

func TestCachedServiceRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("second read served from cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mock_interfaces.NewMockIServiceRepository(ctrl)
		store.EXPECT().GetByID(ctx, "svc-website").Return(cachedService(), nil).Times(1)

		repo := NewCachedServiceRepository(store, newMemoryCache(), time.Minute)
		for i := 0; i < 2; i++ {
			got, err := repo.GetByID(ctx, "svc-website")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.BasePrice.Equal(decimal.RequireFromString("1000.50")) {
				t.Fatalf("unexpected base price %s", got.BasePrice)
			}
		}
	})

	t.Run("misses are not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mock_interfaces.NewMockIServiceRepository(ctrl)
		store.EXPECT().GetByID(ctx, "nope").Return(entities.Service{}, nil).Times(2)

		cache := newMemoryCache()
		repo := NewCachedServiceRepository(store, cache, time.Minute)
		_, _ = repo.GetByID(ctx, "nope")
		_, _ = repo.GetByID(ctx, "nope")
		if len(cache.data) != 0 {
			t.Fatalf("expected empty cache, got %d keys", len(cache.data))
		}
	})

	t.Run("cache failure falls back to store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mock_interfaces.NewMockIServiceRepository(ctrl)
		store.EXPECT().GetByID(ctx, "svc-website").Return(cachedService(), nil)

		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		repo := NewCachedServiceRepository(store, cache, time.Minute)
		got, err := repo.GetByID(ctx, "svc-website")
		if err != nil || got.ID != "svc-website" {
			t.Fatalf("unexpected result: %+v err=%v", got, err)
		}
	})
}

func TestCachedServiceRepository_WritesEvict(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_interfaces.NewMockIServiceRepository(ctrl)
	store.EXPECT().List(ctx).Return([]entities.Service{cachedService()}, nil).Times(2)
	store.EXPECT().UpdateStatus(ctx, "svc-website", entities.ServiceStatusInactive).Return(cachedService(), nil)

	cache := newMemoryCache()
	repo := NewCachedServiceRepository(store, cache, time.Minute)

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, "svc-website", entities.ServiceStatusInactive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.data[serviceListCacheKey]; ok {
		t.Fatalf("list key must be evicted after a write")
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCachedServiceRepository_SaveErrorKeepsCache(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_interfaces.NewMockIServiceRepository(ctrl)
	store.EXPECT().Save(ctx, gomock.Any()).Return(entities.Service{}, errors.New("throttled"))

	cache := newMemoryCache()
	repo := NewCachedServiceRepository(store, cache, time.Minute)
	if _, err := repo.Save(ctx, cachedService()); err == nil {
		t.Fatalf("expected error")
	}
	if len(cache.deleted) != 0 {
		t.Fatalf("nothing should be evicted on a failed write")
	}
}
