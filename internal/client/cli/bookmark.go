package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"storyshare/internal/client/models"
)

func (a *App) listBookmarks(ctx context.Context) {
	list, err := a.bookmarkService.List(ctx)
	if err != nil {
		a.log.Error(ctx, "bookmarks read failed", "error", err)
		fmt.Println("Could not read your bookmarks.")
		return
	}
	if len(list) == 0 {
		fmt.Println("No bookmarks yet. Use: bookmark <id>")
		return
	}
	for _, b := range list {
		fmt.Println(formatStoryLine(b.Story))
	}
}

// bookmark saves a story for offline reading. The record comes from the
// detail fetch, so a cached copy works while offline too.
func (a *App) bookmark(ctx context.Context, id string) {
	res := a.storyService.Detail(ctx, id)
	if res.Error {
		fmt.Println(res.Message)
		return
	}
	if err := a.bookmarkService.Save(ctx, res.Value); err != nil {
		a.log.Error(ctx, "bookmark save failed", "id", id, "error", err)
		fmt.Println("Could not save the bookmark.")
		return
	}
	a.savePhotoOffline(ctx, res.Value)
	fmt.Println("Bookmarked.")
}

// savePhotoOffline stores the story photo in the offline assets partition
// so a bookmarked story keeps its image across restarts and offline
// stretches. Best effort: a failure only costs the offline photo.
func (a *App) savePhotoOffline(ctx context.Context, s models.Story) {
	if s.PhotoURL == "" || strings.HasPrefix(s.PhotoURL, "data:") {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PhotoURL, nil)
	if err != nil {
		return
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.log.Warn(ctx, "photo not saved for offline", "id", s.ID, "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	if err := a.repos.Offline.SaveAsset(ctx, s.PhotoURL, data); err != nil {
		a.log.Warn(ctx, "photo not saved for offline", "id", s.ID, "error", err)
	}
}

func (a *App) unbookmark(ctx context.Context, id string) {
	if err := a.bookmarkService.Remove(ctx, id); err != nil {
		a.log.Error(ctx, "bookmark remove failed", "id", id, "error", err)
		fmt.Println("Could not remove the bookmark.")
		return
	}
	fmt.Println("Bookmark removed.")
}
