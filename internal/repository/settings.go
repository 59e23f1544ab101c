package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/venue-booking/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository stores small JSON documents by key.
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository constructs a SettingsRepository.
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// WithTx runs fn in a transaction shared by the repository's methods.
func (r *SettingsRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTx(ctx, r.db, fn)
}

// Get returns the raw JSON stored under key and whether it exists.
func (r *SettingsRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return r.get(ctx, `SELECT value::text FROM settings WHERE key = $1`, key)
}

// GetForUpdate is Get plus a row lock held until the transaction ends.
func (r *SettingsRepository) GetForUpdate(ctx context.Context, key string) ([]byte, bool, error) {
	return r.get(ctx, `SELECT value::text FROM settings WHERE key = $1 FOR UPDATE`, key)
}

func (r *SettingsRepository) get(ctx context.Context, sql, key string) ([]byte, bool, error) {
	var raw string
	err := database.Conn(ctx, r.db).QueryRow(ctx, sql, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, translate(err, "get setting", nil)
	}
	return []byte(raw), true, nil
}

// Seed stores value under key unless the key already exists.
func (r *SettingsRepository) Seed(ctx context.Context, key string, value []byte) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `
INSERT INTO settings (key, value) VALUES ($1, $2::text::jsonb)
ON CONFLICT (key) DO NOTHING`, key, string(value))
	return translate(err, "seed setting", nil)
}

// Put stores value under key, replacing any previous value.
func (r *SettingsRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `
INSERT INTO settings (key, value, updated_at) VALUES ($1, $2::text::jsonb, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, key, string(value))
	return translate(err, "put setting", nil)
}
