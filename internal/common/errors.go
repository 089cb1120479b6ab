// Package common defines shared constants and sentinel errors used across
// the storyshare client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence error")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Transport-level errors.
	ErrNetwork = errors.New("network error")
)
