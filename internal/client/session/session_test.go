package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return NewManager(metadata.NewSQLiteRepository(db))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	auth := models.SessionAuth{Token: "abc", Name: "Dina", UserID: "u1"}
	require.NoError(t, m.Set(ctx, auth))
	require.Equal(t, auth, m.Get(ctx))
	require.Equal(t, "abc", m.Token(ctx))
}

func TestSignedIn_AbsentOrEmptyTokenIsSignedOut(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	require.False(t, m.SignedIn(ctx))

	require.NoError(t, m.Set(ctx, models.SessionAuth{Name: "no token"}))
	require.False(t, m.SignedIn(ctx))
}

func TestSignedIn_OpaqueTokenCounts(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, models.SessionAuth{Token: "not-a-jwt"}))
	require.True(t, m.SignedIn(ctx))
}

func TestSignedIn_ExpiredJWTIsSignedOut(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, models.SessionAuth{Token: signedToken(t, time.Now().Add(-time.Hour))}))
	require.False(t, m.SignedIn(ctx))

	require.NoError(t, m.Set(ctx, models.SessionAuth{Token: signedToken(t, time.Now().Add(time.Hour))}))
	require.True(t, m.SignedIn(ctx))
}

func TestClearAtRoot(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, models.SessionAuth{Token: "abc"}))
	require.NoError(t, m.ClearAtRoot(ctx, "#/home"))
	require.True(t, m.SignedIn(ctx), "non-root start must keep the session")

	require.NoError(t, m.ClearAtRoot(ctx, "#/"))
	require.False(t, m.SignedIn(ctx), "root start must clear the session")
}

func TestClear_Idempotent(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.Clear(ctx))
	require.NoError(t, m.Set(ctx, models.SessionAuth{Token: "abc"}))
	require.NoError(t, m.Clear(ctx))
	require.False(t, m.SignedIn(ctx))
}
