// Package services contains the application services of the story client:
// authentication, story fetch/submit with offline fallback, bookmarks, and
// push notifications. Every remote-facing operation returns a tagged
// models.Result instead of a bare error so the caller can distinguish
// connectivity failures, server rejections and local storage trouble.
package services

import (
	"errors"

	"storyshare/internal/client/api"
	"storyshare/internal/client/models"
	"storyshare/internal/common"
)

// User-facing messages for degraded outcomes.
const (
	msgConnectivity  = "Cannot reach the server. Check your connection and try again."
	msgServingCached = "You are offline. Showing saved stories."
	msgOfflineEmpty  = "You are offline and no saved stories are available yet."
	msgQueued        = "You are offline. Your story was saved and will be shared once you are back online."
	msgStorage       = "Local storage is unavailable."
)

// classify maps an error to a result kind and a message fit for display.
// Server envelope messages pass through verbatim; local store failures are
// recognized by their sentinel, never by elimination.
func classify(err error) (models.ErrorKind, string) {
	var serverErr *api.ServerError
	switch {
	case errors.As(err, &serverErr):
		return models.ErrorKindServer, serverErr.Message
	case errors.Is(err, common.ErrNetwork):
		return models.ErrorKindNetwork, msgConnectivity
	case errors.Is(err, common.ErrPersistence), errors.Is(err, common.ErrStorageUnavailable):
		return models.ErrorKindStorage, msgStorage
	default:
		return models.ErrorKindServer, err.Error()
	}
}
