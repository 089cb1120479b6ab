package pending

import (
	"context"

	"storyshare/internal/client/models"
)

// Repository is the pending-submission queue: story-add requests that
// failed while the device was confirmed offline, awaiting replay.
//
// Records are created on write failure and destroyed on successful replay.
// GetAll must preserve insertion order so the sync coordinator can replay
// submissions in the order the user made them.
type Repository interface {
	// Add appends a submission to the queue.
	Add(ctx context.Context, sub models.PendingSubmission) error

	// GetAll returns the whole queue in insertion order.
	GetAll(ctx context.Context) ([]models.PendingSubmission, error)

	// Remove deletes one submission by id (after successful replay).
	Remove(ctx context.Context, id string) error

	// Count reports the queue length.
	Count(ctx context.Context) (int, error)

	// Clear empties the queue.
	Clear(ctx context.Context) error
}
