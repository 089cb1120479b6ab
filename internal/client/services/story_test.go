package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"storyshare/internal/client/api"
	"storyshare/internal/client/client"
	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/metadata"
	"storyshare/internal/client/repositories/pending"
	"storyshare/internal/client/repositories/stories"
	"storyshare/internal/client/session"
	"storyshare/internal/common"
	"storyshare/internal/logging"
	"storyshare/internal/netx"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

// ---- fake client ----

// fakeClient implements api.Client for unit tests.
type fakeClient struct {
	ListRet []models.Story
	ListErr error

	GetRet *models.Story
	GetErr error

	AddErr      error
	AddCalls    int
	GuestCalls  int
	LastToken   string
	LoginRet    models.SessionAuth
	LoginErr    error
	RegisterErr error
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) error {
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.SessionAuth, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ListStories(ctx context.Context, page, size int, withLocation bool, token string) ([]models.Story, error) {
	f.LastToken = token
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetStory(ctx context.Context, id, token string) (*models.Story, error) {
	return f.GetRet, f.GetErr
}

func (f *fakeClient) AddStory(ctx context.Context, draft models.StoryDraft, token string) error {
	f.AddCalls++
	f.LastToken = token
	return f.AddErr
}

func (f *fakeClient) AddStoryGuest(ctx context.Context, draft models.StoryDraft) error {
	f.GuestCalls++
	return f.AddErr
}

func (f *fakeClient) Subscribe(ctx context.Context, sub api.PushSubscription, token string) error {
	return nil
}

func (f *fakeClient) Unsubscribe(ctx context.Context, endpoint, token string) error { return nil }
func (f *fakeClient) TestNotification(ctx context.Context, token string) error      { return nil }
func (f *fakeClient) Ping(ctx context.Context) error                                { return nil }

var errConnRefused = fmt.Errorf("%w: connection refused", common.ErrNetwork)

func newStoryService(t *testing.T, fc *fakeClient, db *sql.DB, online bool) (StoryService, *netx.Monitor) {
	t.Helper()
	sess := session.NewManager(metadata.NewSQLiteRepository(db))
	monitor := netx.NewMonitor(online)
	svc := NewStoryService(fc, stories.NewSQLiteRepository(db), pending.NewSQLiteRepository(db),
		sess, monitor, logging.NewNop(), 10)
	return svc, monitor
}

// ---- tests ----

func TestList_PageOneReplacesCache(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	storyRepo := stories.NewSQLiteRepository(db)

	// a stale record that must not survive a page-1 fetch
	require.NoError(t, storyRepo.Upsert(ctx, models.Story{ID: "stale", Name: "Old"}))

	fc := &fakeClient{ListRet: []models.Story{{ID: "s1", Name: "Fresh"}}}
	svc, _ := newStoryService(t, fc, db, true)

	res := svc.List(ctx, 1)
	require.False(t, res.Error)
	require.False(t, res.FromCache)

	cached, err := storyRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "s1", cached[0].ID)
}

func TestList_LaterPagesMergeIntoCache(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	storyRepo := stories.NewSQLiteRepository(db)
	require.NoError(t, storyRepo.Upsert(ctx, models.Story{ID: "p1", Name: "Page one"}))

	fc := &fakeClient{ListRet: []models.Story{{ID: "p2", Name: "Page two"}}}
	svc, _ := newStoryService(t, fc, db, true)

	res := svc.List(ctx, 2)
	require.False(t, res.Error)

	cached, err := storyRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)
}

func TestList_OfflineServesCache(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	storyRepo := stories.NewSQLiteRepository(db)
	require.NoError(t, storyRepo.Upsert(ctx, models.Story{ID: "c1", Name: "Cached"}))

	fc := &fakeClient{ListErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, false)

	res := svc.List(ctx, 1)
	require.False(t, res.Error)
	require.True(t, res.FromCache)
	require.Len(t, res.Value, 1)
	require.NotEmpty(t, res.Message)
}

func TestList_OfflineEmptyCacheFails(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	fc := &fakeClient{ListErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, false)

	res := svc.List(ctx, 1)
	require.True(t, res.Error)
	require.Equal(t, models.ErrorKindNetwork, res.Kind)
}

func TestList_NetworkErrorWhileOnlineIsPlainFailure(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	storyRepo := stories.NewSQLiteRepository(db)
	require.NoError(t, storyRepo.Upsert(ctx, models.Story{ID: "c1"}))

	fc := &fakeClient{ListErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, true)

	res := svc.List(ctx, 1)
	require.True(t, res.Error)
	require.Equal(t, models.ErrorKindNetwork, res.Kind)
	require.False(t, res.FromCache)
}

func TestDetail_OfflineFallsBackToCachedRecord(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	storyRepo := stories.NewSQLiteRepository(db)
	require.NoError(t, storyRepo.Upsert(ctx, models.Story{ID: "s9", Name: "Kept"}))

	fc := &fakeClient{GetErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, false)

	res := svc.Detail(ctx, "s9")
	require.False(t, res.Error)
	require.True(t, res.FromCache)
	require.Equal(t, "Kept", res.Value.Name)
}

func TestAdd_OfflineQueuesExactlyOneSubmission(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	pendingRepo := pending.NewSQLiteRepository(db)

	fc := &fakeClient{AddErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, false)

	res := svc.Add(ctx, models.StoryDraft{Description: "queued while offline", Photo: []byte{1, 2}})
	require.False(t, res.Error)
	require.True(t, res.Pending)
	require.True(t, res.Value.IsPending())
	require.NotEmpty(t, res.Message)

	n, err := pendingRepo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestAdd_NetworkErrorWhileOnlineDoesNotQueue(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	pendingRepo := pending.NewSQLiteRepository(db)

	fc := &fakeClient{AddErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, true)

	res := svc.Add(ctx, models.StoryDraft{Description: "should not queue", Photo: []byte{1}})
	require.True(t, res.Error)
	require.Equal(t, models.ErrorKindNetwork, res.Kind)
	require.False(t, res.Pending)

	n, err := pendingRepo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAdd_ServerRejectionIsNotQueued(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	pendingRepo := pending.NewSQLiteRepository(db)

	fc := &fakeClient{AddErr: &api.ServerError{StatusCode: 400, Message: "description is required"}}
	svc, _ := newStoryService(t, fc, db, false)

	res := svc.Add(ctx, models.StoryDraft{Photo: []byte{1}})
	require.True(t, res.Error)
	require.Equal(t, models.ErrorKindServer, res.Kind)
	require.Equal(t, "description is required", res.Message)

	n, err := pendingRepo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAddGuest_QueuedRecordCarriesGuestFlag(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	pendingRepo := pending.NewSQLiteRepository(db)

	fc := &fakeClient{AddErr: errConnRefused}
	svc, _ := newStoryService(t, fc, db, false)

	res := svc.AddGuest(ctx, models.StoryDraft{Description: "guest", Photo: []byte{1}})
	require.False(t, res.Error)
	require.True(t, res.Pending)

	queued, err := pendingRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	require.True(t, queued[0].IsGuest)
	require.Contains(t, queued[0].ID, common.PendingGuestIDPrefix)
}

func TestClassify_PersistenceSentinelIsStorageKind(t *testing.T) {
	kind, msg := classify(fmt.Errorf("%w: failed to upsert story: disk I/O error", common.ErrPersistence))
	require.Equal(t, models.ErrorKindStorage, kind)
	require.Equal(t, msgStorage, msg)

	// Other local errors must not be mistaken for storage trouble.
	kind, _ = classify(context.Canceled)
	require.NotEqual(t, models.ErrorKindStorage, kind)
}
