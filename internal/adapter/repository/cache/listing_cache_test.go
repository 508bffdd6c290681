package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockListings struct {
	domain.ListingsPort
	mock.Mock
}

func (m *mockListings) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListings) UpdateListing(ctx context.Context, id string, params domain.UpdateListingParams) (*domain.Listing, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListings) GetFeaturedListings(ctx context.Context, limit int) ([]*domain.Listing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestListingCache_OutageFallsBackToStore(t *testing.T) {
	inner := new(mockListings)
	mm := metrics.NewMetricsManager("rental-service-test")
	cache := NewListingCache(inner, unreachableRedis(t), time.Minute, mm, logger.NewNop())
	listing := &domain.Listing{ID: "listing-1", Title: "Moon base"}
	inner.On("GetListing", mock.Anything, "listing-1").Return(listing, nil).Once()

	got, err := cache.GetListing(context.Background(), "listing-1")

	require.NoError(t, err)
	assert.Same(t, listing, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(mm.ListingCacheLookups.WithLabelValues("error")))
	inner.AssertExpectations(t)
}

func TestListingCache_StoreErrorsPropagate(t *testing.T) {
	inner := new(mockListings)
	cache := NewListingCache(inner, unreachableRedis(t), 0, nil, logger.NewNop())
	inner.On("GetListing", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := cache.GetListing(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListingCache_UpdateSucceedsWhenInvalidationFails(t *testing.T) {
	inner := new(mockListings)
	cache := NewListingCache(inner, unreachableRedis(t), time.Minute, nil, logger.NewNop())
	title := "Renamed"
	params := domain.UpdateListingParams{Title: &title}
	inner.On("UpdateListing", mock.Anything, "listing-1", params).Return(&domain.Listing{ID: "listing-1", Title: title}, nil)

	got, err := cache.UpdateListing(context.Background(), "listing-1", params)

	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
}

func TestListingCache_OtherOperationsPassThrough(t *testing.T) {
	inner := new(mockListings)
	cache := NewListingCache(inner, unreachableRedis(t), time.Minute, nil, logger.NewNop())
	inner.On("GetFeaturedListings", mock.Anything, 3).Return([]*domain.Listing{{ID: "f"}}, nil).Once()

	got, err := cache.GetFeaturedListings(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	inner.AssertExpectations(t)
}
