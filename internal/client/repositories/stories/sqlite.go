package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storyshare/internal/client/models"
	"storyshare/internal/common"
	"storyshare/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts a story or replaces the cached copy by id.
func (r *SQLiteRepository) Upsert(ctx context.Context, s models.Story) error {
	query := `INSERT INTO stories (id, name, description, photo_url, lat, lon, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				description = excluded.description,
				photo_url = excluded.photo_url,
				lat = excluded.lat,
				lon = excluded.lon,
				created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, s.PhotoURL,
		dbx.NullFloat(s.Lat), dbx.NullFloat(s.Lon), dbx.FormatTime(s.CreatedAt))
	if err != nil {
		return fmt.Errorf("%w: failed to upsert story: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertAll(ctx context.Context, list []models.Story) error {
	for _, s := range list {
		if err := r.Upsert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// GetAll lists all cached stories, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Story, error) {
	query := `SELECT id, name, description, photo_url, lat, lon, created_at
			FROM stories ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select stories: %w", common.ErrPersistence, err)
	}
	defer rows.Close()

	var result []models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate stories: %w", common.ErrPersistence, err)
	}
	return result, nil
}

// GetByID returns a single cached story or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := `SELECT id, name, description, photo_url, lat, lon, created_at
			FROM stories WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete story: %w", common.ErrPersistence, err)
	}
	return nil
}

// Clear empties the partition. Used by the page-1 replacement policy.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stories`)
	if err != nil {
		return fmt.Errorf("%w: failed to clear stories: %w", common.ErrPersistence, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (models.Story, error) {
	var s models.Story
	var lat, lon sql.NullFloat64
	var createdAt string
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.PhotoURL, &lat, &lon, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Story{}, err
		}
		return models.Story{}, fmt.Errorf("%w: failed to scan story: %w", common.ErrPersistence, err)
	}
	s.Lat = dbx.FloatPtr(lat)
	s.Lon = dbx.FloatPtr(lon)
	t, err := dbx.ParseTime(createdAt)
	if err != nil {
		return models.Story{}, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	s.CreatedAt = t
	return s, nil
}
