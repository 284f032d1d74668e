package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/deppfellow/tourism/internal/lib/cache"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/rs/zerolog"
)

const (
	publicSettingsKey = "settings:public"
	publicSettingsTTL = 10 * time.Minute

	defaultSiteName = "Tourism"
	defaultCurrency = "USD"
)

type SettingStore interface {
	List(ctx context.Context, publicOnly bool) ([]model.Setting, error)
	UpsertMany(ctx context.Context, settings []model.Setting) error
	InsertMissing(ctx context.Context, s model.Setting) (bool, error)
}

type SettingCache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type SettingService struct {
	settings SettingStore
	cache    SettingCache
	logger   *zerolog.Logger
}

func NewSettingService(settings SettingStore, c SettingCache, logger *zerolog.Logger) *SettingService {
	return &SettingService{settings: settings, cache: c, logger: logger}
}

// Public returns the public settings as a key/value map. Reads go through
// the cache; a cache failure falls back to the database.
func (s *SettingService) Public(ctx context.Context) (map[string]string, error) {
	var values map[string]string
	err := s.cache.Get(ctx, publicSettingsKey, &values)
	if err == nil {
		return values, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn().Err(err).Msg("settings cache read failed")
	}

	settings, err := s.settings.List(ctx, true)
	if err != nil {
		return nil, err
	}
	values = make(map[string]string, len(settings))
	for _, st := range settings {
		values[st.Key] = st.Value
	}

	if err := s.cache.Set(ctx, publicSettingsKey, values, publicSettingsTTL); err != nil {
		s.logger.Warn().Err(err).Msg("settings cache write failed")
	}
	return values, nil
}

func (s *SettingService) List(ctx context.Context) ([]model.Setting, error) {
	return s.settings.List(ctx, false)
}

// Update writes every key in the request atomically. New keys become
// public when they are one of the known public defaults.
func (s *SettingService) Update(ctx context.Context, req *model.UpdateSettingsRequest) ([]model.Setting, error) {
	keys := make([]string, 0, len(req.Settings))
	for k := range req.Settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	settings := make([]model.Setting, len(keys))
	for i, k := range keys {
		settings[i] = model.Setting{Key: k, Value: req.Settings[k], IsPublic: model.IsPublicSettingKey(k)}
	}
	if err := s.settings.UpsertMany(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Strs("keys", keys).Msg("settings updated")
	return s.settings.List(ctx, false)
}

// Seed inserts the default settings that do not exist yet.
func (s *SettingService) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for _, st := range model.DefaultSettings {
		ok, err := s.settings.InsertMissing(ctx, st)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	if inserted > 0 {
		s.invalidate(ctx)
	}
	return inserted, nil
}

// SiteName is used in outgoing emails.
func (s *SettingService) SiteName(ctx context.Context) string {
	return s.value(ctx, "site_name", defaultSiteName)
}

// Currency is stamped on bookings and receipts.
func (s *SettingService) Currency(ctx context.Context) string {
	return s.value(ctx, "currency", defaultCurrency)
}

func (s *SettingService) value(ctx context.Context, key, fallback string) string {
	values, err := s.Public(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("falling back to default setting")
		return fallback
	}
	if v := values[key]; v != "" {
		return v
	}
	return fallback
}

func (s *SettingService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, publicSettingsKey); err != nil {
		s.logger.Warn().Err(err).Msg("settings cache invalidation failed")
	}
}
