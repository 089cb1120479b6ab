package bookmarks

import (
	"context"
	"database/sql"
	"fmt"

	"storyshare/internal/client/models"
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

func (r *SQLiteRepository) Add(ctx context.Context, b models.Bookmark) error {
	query := `INSERT INTO bookmarks (id, name, description, photo_url, lat, lon, created_at, bookmarked_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET bookmarked_at = excluded.bookmarked_at
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Description, b.PhotoURL,
		dbx.NullFloat(b.Lat), dbx.NullFloat(b.Lon),
		dbx.FormatTime(b.CreatedAt), dbx.FormatTime(b.BookmarkedAt))
	if err != nil {
		return fmt.Errorf("%w: failed to add bookmark: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, storyID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, storyID)
	if err != nil {
		return fmt.Errorf("%w: failed to remove bookmark: %w", common.ErrPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Bookmark, error) {
	query := `SELECT id, name, description, photo_url, lat, lon, created_at, bookmarked_at
			FROM bookmarks ORDER BY bookmarked_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select bookmarks: %w", common.ErrPersistence, err)
	}
	defer rows.Close()

	var result []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		var lat, lon sql.NullFloat64
		var createdAt, bookmarkedAt string
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.PhotoURL, &lat, &lon, &createdAt, &bookmarkedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan bookmark: %w", common.ErrPersistence, err)
		}
		b.Lat = dbx.FloatPtr(lat)
		b.Lon = dbx.FloatPtr(lon)
		created, err := dbx.ParseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		marked, err := dbx.ParseTime(bookmarkedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		b.CreatedAt = created
		b.BookmarkedAt = marked
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate bookmarks: %w", common.ErrPersistence, err)
	}
	return result, nil
}

// IsBookmarked reports whether a bookmark exists for the story. Any lookup
// failure counts as "not bookmarked".
func (r *SQLiteRepository) IsBookmarked(ctx context.Context, storyID string) bool {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE id = ?`, storyID).Scan(&n)
	if err != nil {
		return false
	}
	return n > 0
}
