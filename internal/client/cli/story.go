package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"storyshare/internal/client/models"
	"storyshare/internal/filex"
)

func (a *App) list(ctx context.Context, page int) {
	res := a.storyService.List(ctx, page)
	if res.Error {
		fmt.Println(res.Message)
		return
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	if len(res.Value) == 0 {
		fmt.Println("No stories yet. Be the first to share one!")
		return
	}
	for _, s := range res.Value {
		fmt.Println(formatStoryLine(s))
	}
}

func (a *App) show(ctx context.Context, id string) {
	res := a.storyService.Detail(ctx, id)
	if res.Error {
		fmt.Println(res.Message)
		return
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	printStory(res.Value)
	if a.isSignedIn(ctx) {
		if a.bookmarkService.IsSaved(ctx, res.Value.ID) {
			fmt.Println("Bookmarked. (unbookmark " + res.Value.ID + " to remove)")
		}
	}
}

// addAny routes the add command: signed-in users go through the guarded add
// page, everyone else is offered the guest submission flow.
func (a *App) addAny(ctx context.Context) {
	if a.isSignedIn(ctx) {
		a.open(ctx, "#/add")
		return
	}
	fmt.Println("You are not signed in; the story will be shared as a guest.")
	a.addGuest(ctx)
}

func (a *App) add(ctx context.Context) {
	draft, err := a.collectDraft(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.reportSubmission(a.storyService.Add(ctx, draft))
}

func (a *App) addGuest(ctx context.Context) {
	draft, err := a.collectDraft(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.reportSubmission(a.storyService.AddGuest(ctx, draft))
}

func (a *App) reportSubmission(res models.Result[models.Story]) {
	if res.Error {
		fmt.Println(res.Message)
		return
	}
	fmt.Println(res.Message)
	if res.Pending {
		fmt.Printf("Queued as %s\n", res.Value.ID)
	}
}

// collectDraft prompts for the submission fields: description, photo file,
// optional coordinates.
func (a *App) collectDraft(ctx context.Context) (models.StoryDraft, error) {
	description, err := GetMultiline(a.reader, "Tell your story", os.Stdout)
	if err != nil {
		return models.StoryDraft{}, err
	}
	if description == "" {
		return models.StoryDraft{}, fmt.Errorf("a story needs a description")
	}

	photoPath, err := getSimpleText(a.reader, "Path to photo file", os.Stdout)
	if err != nil {
		return models.StoryDraft{}, err
	}
	photo, mimeType, err := filex.ReadImage(photoPath)
	if err != nil {
		return models.StoryDraft{}, fmt.Errorf("reading photo: %w", err)
	}

	draft := models.StoryDraft{
		Description: description,
		Photo:       photo,
		PhotoType:   mimeType,
	}

	lat, err := a.readCoordinate(ctx, "Latitude (optional, leave blank to skip)")
	if err != nil {
		return models.StoryDraft{}, err
	}
	if lat != nil {
		lon, err := a.readCoordinate(ctx, "Longitude")
		if err != nil {
			return models.StoryDraft{}, err
		}
		if lon == nil {
			return models.StoryDraft{}, fmt.Errorf("longitude is required when latitude is set")
		}
		draft.Lat, draft.Lon = lat, lon
	}
	return draft, nil
}

func (a *App) readCoordinate(_ context.Context, prompt string) (*float64, error) {
	raw, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid coordinate %q", raw)
	}
	return &v, nil
}

func formatStoryLine(s models.Story) string {
	desc := s.Description
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		desc = desc[:i]
	}
	if len(desc) > 60 {
		desc = desc[:60] + "..."
	}
	line := fmt.Sprintf("%-40s  %-16s  %s", s.ID, s.Name, desc)
	if s.IsPending() {
		line += "  [pending]"
	}
	return line
}

func printStory(s models.Story) {
	fmt.Printf("Story %s\n", s.ID)
	fmt.Printf("  By:      %s\n", s.Name)
	fmt.Printf("  Shared:  %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	if s.HasLocation() {
		fmt.Printf("  At:      %.5f, %.5f\n", *s.Lat, *s.Lon)
	}
	if s.PhotoURL != "" && !strings.HasPrefix(s.PhotoURL, "data:") {
		fmt.Printf("  Photo:   %s\n", s.PhotoURL)
	}
	fmt.Printf("  %s\n", s.Description)
}
