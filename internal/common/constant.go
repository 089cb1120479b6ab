// Package common contains shared constants and sentinel errors used across
// storyshare components.
package common

// AuthHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthHeaderName = "Authorization"

// PendingIDPrefix and PendingGuestIDPrefix mark locally generated ids of
// story submissions queued while offline.
const (
	PendingIDPrefix      = "pending-"
	PendingGuestIDPrefix = "pending-guest-"
)
