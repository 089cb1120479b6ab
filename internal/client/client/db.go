package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"storyshare/internal/client/migrations"
	"storyshare/internal/client/repositories/bookmarks"
	"storyshare/internal/client/repositories/metadata"
	"storyshare/internal/client/repositories/offline"
	"storyshare/internal/client/repositories/pending"
	"storyshare/internal/client/repositories/stories"
	"storyshare/internal/common"
)

// Repositories bundles the partitions of the local record store.
type Repositories struct {
	Stories   stories.Repository
	Pending   pending.Repository
	Bookmarks bookmarks.Repository
	Offline   offline.Repository
	Metadata  metadata.Repository

	DB *sql.DB
}

// RunMigrations applies the embedded goose migrations, creating every
// partition the client needs. Safe to run repeatedly.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the local SQLite database, ensures all
// partitions exist, and returns the repository bundle. Failure here means
// the platform has no usable persistent storage; the error matches
// common.ErrStorageUnavailable so callers can degrade to cache-less mode.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	repos := &Repositories{
		Stories:   stories.NewSQLiteRepository(db),
		Pending:   pending.NewSQLiteRepository(db),
		Bookmarks: bookmarks.NewSQLiteRepository(db),
		Offline:   offline.NewSQLiteRepository(db),
		Metadata:  metadata.NewSQLiteRepository(db),
		DB:        db,
	}
	return repos, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
