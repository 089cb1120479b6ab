package stories

import (
	"context"

	"storyshare/internal/client/models"
)

// Repository is the stories partition of the local record store: the
// cached copy of remotely fetched stories.
//
// The partition is evicted by replacement: fetching page 1 of the list
// clears it before the new page is written. Individual operations are
// atomic per record; no cross-record transaction is required.
type Repository interface {
	// Upsert inserts a story or replaces it by id.
	Upsert(ctx context.Context, story models.Story) error

	// UpsertAll upserts every story in the slice.
	UpsertAll(ctx context.Context, list []models.Story) error

	// GetAll returns all cached stories, newest first.
	GetAll(ctx context.Context) ([]models.Story, error)

	// GetByID returns one cached story or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Story, error)

	// DeleteByID removes one cached story.
	DeleteByID(ctx context.Context, id string) error

	// Clear empties the partition.
	Clear(ctx context.Context) error
}
