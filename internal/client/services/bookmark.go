package services

import (
	"context"
	"fmt"
	"time"

	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/bookmarks"
)

// BookmarkService manages the saved-stories list. Bookmarks are purely
// local, so the operations return plain errors rather than results.
type BookmarkService interface {
	// Save bookmarks a story, refreshing the timestamp when it is
	// already saved.
	Save(ctx context.Context, story models.Story) error

	// Remove drops a bookmark by story id.
	Remove(ctx context.Context, storyID string) error

	// List returns all bookmarks, most recently saved first.
	List(ctx context.Context) ([]models.Bookmark, error)

	// IsSaved reports whether the story is bookmarked.
	IsSaved(ctx context.Context, storyID string) bool
}

type bookmarkService struct {
	repo bookmarks.Repository
}

func NewBookmarkService(repo bookmarks.Repository) BookmarkService {
	return &bookmarkService{repo: repo}
}

func (b *bookmarkService) Save(ctx context.Context, story models.Story) error {
	bm := models.Bookmark{Story: story, BookmarkedAt: time.Now().UTC()}
	if err := b.repo.Add(ctx, bm); err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}
	return nil
}

func (b *bookmarkService) Remove(ctx context.Context, storyID string) error {
	if err := b.repo.Remove(ctx, storyID); err != nil {
		return fmt.Errorf("removing bookmark: %w", err)
	}
	return nil
}

func (b *bookmarkService) List(ctx context.Context) ([]models.Bookmark, error) {
	return b.repo.GetAll(ctx)
}

func (b *bookmarkService) IsSaved(ctx context.Context, storyID string) bool {
	return b.repo.IsBookmarked(ctx, storyID)
}
