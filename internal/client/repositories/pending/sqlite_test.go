package pending

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"storyshare/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE pending_stories (
  seq         INTEGER PRIMARY KEY AUTOINCREMENT,
  id          TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL,
  photo_data  TEXT NOT NULL,
  lat         REAL,
  lon         REAL,
  created_at  TEXT NOT NULL,
  is_guest    INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

func submission(desc string, guest bool) models.PendingSubmission {
	return models.NewPendingSubmission(models.StoryDraft{
		Description: desc,
		Photo:       []byte(desc),
		PhotoType:   "image/jpeg",
	}, guest)
}

func TestGetAll_PreservesInsertionOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := submission("a", false)
	b := submission("b", true)
	c := submission("c", false)
	for _, s := range []models.PendingSubmission{a, b, c} {
		require.NoError(t, r.Add(ctx, s))
	}

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
	require.True(t, all[1].IsGuest)
	require.True(t, all[0].IsPending)
}

func TestRemove_DeletesOnlyThatRecord(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := submission("a", false)
	b := submission("b", false)
	require.NoError(t, r.Add(ctx, a))
	require.NoError(t, r.Add(ctx, b))

	require.NoError(t, r.Remove(ctx, a.ID))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, b.ID, all[0].ID)
}

func TestAdd_RoundTripsPhotoData(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	s := submission("photo round trip", false)
	require.NoError(t, r.Add(ctx, s))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)

	draft, err := all[0].Draft()
	require.NoError(t, err)
	require.Equal(t, []byte("photo round trip"), draft.Photo)
}
