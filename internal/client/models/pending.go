package models

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storyshare/internal/common"
)

// StoryDraft is the user's input for a story submission: description, photo
// bytes, and optional coordinates.
type StoryDraft struct {
	Description string
	Photo       []byte
	PhotoType   string // MIME type, e.g. "image/jpeg"
	Lat         *float64
	Lon         *float64
}

// PendingSubmission is a story-add request that failed while the device was
// confirmed offline. It is owned by the pending queue until the sync
// coordinator replays it successfully, at which point it is deleted. The
// photo is re-encoded as a data URL so it survives storage.
type PendingSubmission struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	PhotoData   string    `json:"photoData"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	IsPending   bool      `json:"isPending"`
	IsGuest     bool      `json:"isGuest,omitempty"`
}

// NewPendingSubmission builds a queued submission from a draft. The id is
// client-generated and prefixed so pending records are recognizable.
func NewPendingSubmission(draft StoryDraft, isGuest bool) PendingSubmission {
	prefix := common.PendingIDPrefix
	if isGuest {
		prefix = common.PendingGuestIDPrefix
	}
	return PendingSubmission{
		ID:          prefix + uuid.NewString(),
		Description: draft.Description,
		PhotoData:   EncodePhotoData(draft.Photo, draft.PhotoType),
		Lat:         draft.Lat,
		Lon:         draft.Lon,
		CreatedAt:   time.Now().UTC(),
		IsPending:   true,
		IsGuest:     isGuest,
	}
}

// Draft reverses NewPendingSubmission: it decodes the embedded photo back
// into binary form for replay.
func (p PendingSubmission) Draft() (StoryDraft, error) {
	photo, photoType, err := DecodePhotoData(p.PhotoData)
	if err != nil {
		return StoryDraft{}, err
	}
	return StoryDraft{
		Description: p.Description,
		Photo:       photo,
		PhotoType:   photoType,
		Lat:         p.Lat,
		Lon:         p.Lon,
	}, nil
}

// Story renders the queued submission as a story so pages can show it
// alongside fetched records. The data URL doubles as the photo source.
func (p PendingSubmission) Story() Story {
	return Story{
		ID:          p.ID,
		Name:        "You (pending)",
		Description: p.Description,
		PhotoURL:    p.PhotoData,
		Lat:         p.Lat,
		Lon:         p.Lon,
		CreatedAt:   p.CreatedAt,
	}
}

// EncodePhotoData encodes photo bytes as a data URL
// ("data:image/jpeg;base64,..."). An empty MIME type defaults to image/jpeg.
func EncodePhotoData(photo []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(photo)
}

// DecodePhotoData splits a data URL back into raw bytes and MIME type.
func DecodePhotoData(data string) ([]byte, string, error) {
	head, payload, found := strings.Cut(data, ";base64,")
	if !found {
		return nil, "", fmt.Errorf("photo data is not a base64 data URL")
	}
	mimeType := strings.TrimPrefix(head, "data:")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode photo data: %w", err)
	}
	return raw, mimeType, nil
}
