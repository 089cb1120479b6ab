package pending

import (
	"context"
	"database/sql"
	"fmt"

	"storyshare/internal/client/models"
	"storyshare/internal/common"
	"storyshare/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// The autoincrement seq column carries insertion order.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, sub models.PendingSubmission) error {
	query := `INSERT INTO pending_stories (id, description, photo_data, lat, lon, created_at, is_guest)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET description = excluded.description,
				photo_data = excluded.photo_data,
				lat = excluded.lat,
				lon = excluded.lon,
				created_at = excluded.created_at,
				is_guest = excluded.is_guest
	`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.Description, sub.PhotoData,
		dbx.NullFloat(sub.Lat), dbx.NullFloat(sub.Lon),
		dbx.FormatTime(sub.CreatedAt), sub.IsGuest)
	if err != nil {
		return fmt.Errorf("%w: failed to queue pending story: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.PendingSubmission, error) {
	query := `SELECT id, description, photo_data, lat, lon, created_at, is_guest
			FROM pending_stories ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select pending stories: %w", common.ErrPersistence, err)
	}
	defer rows.Close()

	var result []models.PendingSubmission
	for rows.Next() {
		var sub models.PendingSubmission
		var lat, lon sql.NullFloat64
		var createdAt string
		if err := rows.Scan(&sub.ID, &sub.Description, &sub.PhotoData, &lat, &lon, &createdAt, &sub.IsGuest); err != nil {
			return nil, fmt.Errorf("%w: failed to scan pending story: %w", common.ErrPersistence, err)
		}
		sub.Lat = dbx.FloatPtr(lat)
		sub.Lon = dbx.FloatPtr(lon)
		t, err := dbx.ParseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		sub.CreatedAt = t
		sub.IsPending = true
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate pending stories: %w", common.ErrPersistence, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_stories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to remove pending story: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_stories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count pending stories: %w", common.ErrPersistence, err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_stories`)
	if err != nil {
		return fmt.Errorf("%w: failed to clear pending stories: %w", common.ErrPersistence, err)
	}
	return nil
}
