package cacheworker

import "unicode/utf8"

// Message types exchanged between the worker and the pages.
const (
	MessageSimulatePush        = "SIMULATE_PUSH"
	MessageNotificationClicked = "NOTIFICATION_CLICKED"
)

// maxBodyLen is the display cap for notification body text.
const maxBodyLen = 100

// Message is the worker/page message envelope.
type Message struct {
	Type string           `json:"type"`
	Data NotificationData `json:"data,omitempty"`
}

// NotificationData is the push payload. The server is loose about field
// names, so each piece of information has two accepted spellings.
type NotificationData struct {
	Title       string `json:"title,omitempty"`
	Body        string `json:"body,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Name        string `json:"name,omitempty"`
	StoryID     string `json:"storyId,omitempty"`
	ID          string `json:"id,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Notification is the shaped, displayable form of a push payload plus the
// route a click should navigate to.
type Notification struct {
	Title  string
	Body   string
	Image  string
	Tag    string
	Target string
}

// BuildNotification derives the display fields from a push payload:
// body text capped at 100 characters, prefixed with the author name, and a
// click target pointing at the story detail when an id is present.
func BuildNotification(data NotificationData) Notification {
	title := data.Title
	if title == "" {
		title = "New story shared"
	}

	body := firstOf(data.Body, data.Description)
	body = truncate(body, maxBodyLen)
	if author := firstOf(data.Author, data.Name); author != "" {
		body = author + ": " + body
	}

	storyID := firstOf(data.StoryID, data.ID)
	target := "/home"
	tag := "story"
	if storyID != "" {
		target = "/story/" + storyID
		tag = "story-" + storyID
	}

	return Notification{
		Title:  title,
		Body:   body,
		Image:  firstOf(data.PhotoURL, data.Image),
		Tag:    tag,
		Target: target,
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
