package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/tourism/internal/lib/cache"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSettingStore struct {
	mock.Mock
}

func (m *mockSettingStore) List(ctx context.Context, publicOnly bool) ([]model.Setting, error) {
	args := m.Called(ctx, publicOnly)
	items, _ := args.Get(0).([]model.Setting)
	return items, args.Error(1)
}

func (m *mockSettingStore) UpsertMany(ctx context.Context, settings []model.Setting) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *mockSettingStore) InsertMissing(ctx context.Context, s model.Setting) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dst any) error {
	return m.Called(ctx, key, dst).Error(0)
}

func (m *mockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func TestSettingService_Public_CacheHit(t *testing.T) {
	store := new(mockSettingStore)
	c := new(mockCache)
	c.On("Get", mock.Anything, publicSettingsKey, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*map[string]string) = map[string]string{"site_name": "Noor Travel"}
	}).Return(nil).Once()

	got, err := NewSettingService(store, c, &nopLogger).Public(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"site_name": "Noor Travel"}, got)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSettingService_Public_MissLoadsAndStores(t *testing.T) {
	store := new(mockSettingStore)
	c := new(mockCache)
	want := map[string]string{"currency": "SAR", "site_name": "Noor Travel"}

	c.On("Get", mock.Anything, publicSettingsKey, mock.Anything).Return(cache.ErrMiss).Once()
	store.On("List", mock.Anything, true).Return([]model.Setting{
		{Key: "currency", Value: "SAR", IsPublic: true},
		{Key: "site_name", Value: "Noor Travel", IsPublic: true},
	}, nil).Once()
	c.On("Set", mock.Anything, publicSettingsKey, want, publicSettingsTTL).Return(nil).Once()

	s := NewSettingService(store, c, &nopLogger)
	got, err := s.Public(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	store.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestSettingService_Currency_FallsBack(t *testing.T) {
	store := new(mockSettingStore)
	c := new(mockCache)
	c.On("Get", mock.Anything, publicSettingsKey, mock.Anything).Return(errors.New("connection refused"))
	store.On("List", mock.Anything, true).Return(nil, errors.New("db down"))

	s := NewSettingService(store, c, &nopLogger)
	assert.Equal(t, defaultCurrency, s.Currency(context.Background()))
	assert.Equal(t, defaultSiteName, s.SiteName(context.Background()))
}

func TestSettingService_Update(t *testing.T) {
	store := new(mockSettingStore)
	c := new(mockCache)

	store.On("UpsertMany", mock.Anything, []model.Setting{
		{Key: "admin_notification_email", Value: "ops@example.com", IsPublic: false},
		{Key: "currency", Value: "SAR", IsPublic: true},
		{Key: "hero_banner", Value: "Ramadan offers", IsPublic: false},
	}).Return(nil).Once()
	c.On("Delete", mock.Anything, []string{publicSettingsKey}).Return(nil).Once()
	store.On("List", mock.Anything, false).Return([]model.Setting{{Key: "currency", Value: "SAR"}}, nil).Once()

	_, err := NewSettingService(store, c, &nopLogger).Update(context.Background(), &model.UpdateSettingsRequest{Settings: map[string]string{
		"currency":                 "SAR",
		"hero_banner":              "Ramadan offers",
		"admin_notification_email": "ops@example.com",
	}})
	require.NoError(t, err)
	store.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestSettingService_Update_FailureKeepsCache(t *testing.T) {
	store := new(mockSettingStore)
	c := new(mockCache)
	store.On("UpsertMany", mock.Anything, mock.Anything).Return(errors.New("value too long")).Once()

	_, err := NewSettingService(store, c, &nopLogger).Update(context.Background(), &model.UpdateSettingsRequest{Settings: map[string]string{
		"currency":  "EUR",
		"site_name": "Noor Travel",
	}})
	require.Error(t, err)
	c.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSettingService_Seed(t *testing.T) {
	store := new(mockSettingStore)
	c := new(mockCache)

	for i, st := range model.DefaultSettings {
		store.On("InsertMissing", mock.Anything, st).Return(i < 2, nil).Once()
	}
	c.On("Delete", mock.Anything, []string{publicSettingsKey}).Return(nil).Once()

	n, err := NewSettingService(store, c, &nopLogger).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	store.AssertExpectations(t)
	c.AssertExpectations(t)
}
