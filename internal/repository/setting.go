package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/jackc/pgx/v5"
)

type SettingRepository struct {
	db database.DBTX
}

func NewSettingRepository(db database.DBTX) *SettingRepository {
	return &SettingRepository{db: db}
}

func scanSetting(row pgx.Row) (model.Setting, error) {
	var s model.Setting
	err := row.Scan(&s.Key, &s.Value, &s.IsPublic, &s.UpdatedAt)
	return s, err
}

func (r *SettingRepository) List(ctx context.Context, publicOnly bool) ([]model.Setting, error) {
	query := `SELECT key, value, is_public, updated_at FROM settings`
	if publicOnly {
		query += ` WHERE is_public`
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	settings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Setting, error) {
		return scanSetting(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan settings: %w", err)
	}
	return settings, nil
}

// Upsert writes value for key. is_public is only applied to new keys.
// UpsertMany writes every setting in one statement, so either all of
// them land or none do. is_public is only used for keys that do not exist.
func (r *SettingRepository) UpsertMany(ctx context.Context, settings []model.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	keys := make([]string, len(settings))
	values := make([]string, len(settings))
	public := make([]bool, len(settings))
	for i, st := range settings {
		keys[i], values[i], public[i] = st.Key, st.Value, st.IsPublic
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO settings (key, value, is_public)
		SELECT * FROM unnest($1::text[], $2::text[], $3::bool[])
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		keys, values, public)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// InsertMissing inserts s unless the key exists and reports whether a row
// was written.
func (r *SettingRepository) InsertMissing(ctx context.Context, s model.Setting) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO settings (key, value, is_public)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING`,
		s.Key, s.Value, s.IsPublic)
	if err != nil {
		return false, fmt.Errorf("seed setting %s: %w", s.Key, err)
	}
	return tag.RowsAffected() == 1, nil
}
