// Package api is the transport layer for the remote story API. It wraps
// each REST endpoint behind the Client interface and maps failures into two
// shapes: common.ErrNetwork when the request never completed, and
// *ServerError when the server answered with its error envelope.
//
// The offline fallback and queueing semantics live one layer up, in the
// services package; this package only talks HTTP.
package api

import (
	"context"
	"fmt"

	"storyshare/internal/client/models"
)

// Client is the remote API contract consumed by the gateway services.
type Client interface {
	// Register creates an account. The server's envelope message is
	// surfaced through *ServerError on failure.
	Register(ctx context.Context, name, email, password string) error

	// Login exchanges credentials for the auth record.
	Login(ctx context.Context, email, password string) (models.SessionAuth, error)

	// ListStories fetches one page of stories. withLocation asks the
	// server to include only records that carry coordinates.
	ListStories(ctx context.Context, page, size int, withLocation bool, token string) ([]models.Story, error)

	// GetStory fetches a single story by id.
	GetStory(ctx context.Context, id, token string) (*models.Story, error)

	// AddStory posts a submission as multipart form data.
	AddStory(ctx context.Context, draft models.StoryDraft, token string) error

	// AddStoryGuest posts a submission to the unauthenticated endpoint.
	AddStoryGuest(ctx context.Context, draft models.StoryDraft) error

	// Subscribe registers a push subscription.
	Subscribe(ctx context.Context, sub PushSubscription, token string) error

	// Unsubscribe removes a push subscription by endpoint.
	Unsubscribe(ctx context.Context, endpoint, token string) error

	// TestNotification asks the server to send a test push.
	TestNotification(ctx context.Context, token string) error

	// Ping reports reachability: nil when any HTTP response arrives.
	Ping(ctx context.Context) error
}

// PushSubscription mirrors the browser push subscription sent to the
// subscribe endpoint.
type PushSubscription struct {
	Endpoint string            `json:"endpoint"`
	Keys     map[string]string `json:"keys"`
}

// ServerError is a completed request the server rejected: the envelope had
// error=true or the status was non-2xx. Message is the server's own text.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.StatusCode)
}
