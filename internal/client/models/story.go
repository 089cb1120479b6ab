// Package models defines client-side data models for the storyshare CLI:
// stories, pending submissions, bookmarks, session auth, and the normalized
// result envelope returned by gateway operations.
package models

import (
	"strings"
	"time"

	"storyshare/internal/common"
)

// Story is a record fetched from the remote API. Stories are immutable once
// fetched and are cached verbatim in the local store.
type Story struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasLocation reports whether the story carries GPS coordinates.
func (s Story) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}

// IsPending reports whether the story is a rendered queued submission
// rather than a fetched record, by its client-generated id prefix.
func (s Story) IsPending() bool {
	return strings.HasPrefix(s.ID, common.PendingIDPrefix)
}

// Bookmark is a story the user pinned locally. Its lifecycle is independent
// from the stories cache: created and deleted by explicit user action only.
type Bookmark struct {
	Story
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}
