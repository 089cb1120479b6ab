package offline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storyshare/internal/common"
	"storyshare/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveAsset(ctx context.Context, url string, data []byte) error {
	query := `INSERT INTO offline_assets (url, data, timestamp) VALUES (?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET data = excluded.data, timestamp = excluded.timestamp`
	_, err := r.db.ExecContext(ctx, query, url, data, dbx.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("%w: failed to save offline asset: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAsset(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM offline_assets WHERE url = ?`, url).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get offline asset: %w", common.ErrPersistence, err)
	}
	return data, nil
}

func (r *SQLiteRepository) SaveData(ctx context.Context, key string, data []byte) error {
	query := `INSERT INTO offline_data (key, data, timestamp) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data, timestamp = excluded.timestamp`
	_, err := r.db.ExecContext(ctx, query, key, data, dbx.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("%w: failed to save offline data: %w", common.ErrPersistence, err)
	}
	return nil
}

// GetData returns nil (not an error) for an absent key; missing offline data
// is an ordinary condition for callers.
func (r *SQLiteRepository) GetData(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM offline_data WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get offline data: %w", common.ErrPersistence, err)
	}
	return data, nil
}
