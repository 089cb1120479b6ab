package bookmarks

import (
	"context"

	"storyshare/internal/client/models"
)

// Repository is the bookmarks partition: stories the user pinned, with an
// independent lifecycle from the stories cache.
type Repository interface {
	// Add bookmarks a story, stamping bookmarkedAt.
	Add(ctx context.Context, b models.Bookmark) error

	// Remove deletes a bookmark by story id.
	Remove(ctx context.Context, storyID string) error

	// GetAll lists bookmarks, most recently bookmarked first.
	GetAll(ctx context.Context) ([]models.Bookmark, error)

	// IsBookmarked probes for a bookmark. Lookup failures report false
	// rather than an error.
	IsBookmarked(ctx context.Context, storyID string) bool
}
