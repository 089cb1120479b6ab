package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/bookmarks"
)

func TestBookmarkService_SaveListRemove(t *testing.T) {
	db := setupDB(t)
	svc := NewBookmarkService(bookmarks.NewSQLiteRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, models.Story{ID: "s1", Name: "ana", Description: "first"}))
	require.NoError(t, svc.Save(ctx, models.Story{ID: "s2", Name: "bob", Description: "second"}))

	require.True(t, svc.IsSaved(ctx, "s1"))
	require.False(t, svc.IsSaved(ctx, "missing"))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.Remove(ctx, "s1"))
	require.False(t, svc.IsSaved(ctx, "s1"))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "s2", list[0].ID)
}

func TestBookmarkService_SaveTwiceKeepsSingleEntry(t *testing.T) {
	db := setupDB(t)
	svc := NewBookmarkService(bookmarks.NewSQLiteRepository(db))
	ctx := context.Background()

	s := models.Story{ID: "s1", Name: "ana", Description: "first"}
	require.NoError(t, svc.Save(ctx, s))
	require.NoError(t, svc.Save(ctx, s))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
