package services

import (
	"context"
	"errors"

	"storyshare/internal/client/api"
	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/pending"
	"storyshare/internal/client/repositories/stories"
	"storyshare/internal/client/session"
	"storyshare/internal/common"
	"storyshare/internal/logging"
	"storyshare/internal/netx"
)

// StoryService fetches and submits stories with the offline policy applied:
// reads fall back to the local cache when the device is offline, and failed
// submissions are queued for later sync instead of being lost.
type StoryService interface {
	// List fetches one page of stories. Fetching page 1 replaces the
	// local cache; later pages are merged into it.
	List(ctx context.Context, page int) models.Result[[]models.Story]

	// Detail fetches a single story by id.
	Detail(ctx context.Context, id string) models.Result[models.Story]

	// Add submits a story as the signed-in user. While offline the
	// submission is queued and the result carries Pending=true.
	Add(ctx context.Context, draft models.StoryDraft) models.Result[models.Story]

	// AddGuest is Add through the unauthenticated endpoint.
	AddGuest(ctx context.Context, draft models.StoryDraft) models.Result[models.Story]

	// PendingCount reports how many submissions wait for sync.
	PendingCount(ctx context.Context) int
}

type storyService struct {
	client      api.Client
	storyRepo   stories.Repository
	pendingRepo pending.Repository
	session     *session.Manager
	monitor     *netx.Monitor
	log         logging.Logger
	pageSize    int
}

// NewStoryService constructs a StoryService. pageSize is the list page size
// requested from the server.
func NewStoryService(client api.Client, storyRepo stories.Repository, pendingRepo pending.Repository,
	sess *session.Manager, monitor *netx.Monitor, log logging.Logger, pageSize int) StoryService {
	return &storyService{
		client:      client,
		storyRepo:   storyRepo,
		pendingRepo: pendingRepo,
		session:     sess,
		monitor:     monitor,
		log:         log,
		pageSize:    pageSize,
	}
}

func (s *storyService) List(ctx context.Context, page int) models.Result[[]models.Story] {
	token := s.session.Token(ctx)

	list, err := s.client.ListStories(ctx, page, s.pageSize, true, token)
	if err == nil {
		s.refreshCache(ctx, page, list)
		return models.OK(list)
	}

	if s.offline(err) {
		cached, cerr := s.storyRepo.GetAll(ctx)
		if cerr != nil {
			s.log.Error(ctx, "stories cache read failed", "error", cerr)
			kind, msg := classify(cerr)
			return models.Fail[[]models.Story](kind, msg)
		}
		if len(cached) == 0 {
			return models.Fail[[]models.Story](models.ErrorKindNetwork, msgOfflineEmpty)
		}
		r := models.OKNotice(cached, msgServingCached)
		r.FromCache = true
		return r
	}

	kind, msg := classify(err)
	return models.Fail[[]models.Story](kind, msg)
}

func (s *storyService) Detail(ctx context.Context, id string) models.Result[models.Story] {
	token := s.session.Token(ctx)

	story, err := s.client.GetStory(ctx, id, token)
	if err == nil {
		if uerr := s.storyRepo.Upsert(ctx, *story); uerr != nil {
			s.log.Warn(ctx, "stories cache write failed", "id", id, "error", uerr)
		}
		return models.OK(*story)
	}

	if s.offline(err) {
		cached, cerr := s.storyRepo.GetByID(ctx, id)
		switch {
		case cerr == nil:
			r := models.OKNotice(*cached, msgServingCached)
			r.FromCache = true
			return r
		case errors.Is(cerr, common.ErrNotFound):
			return models.Fail[models.Story](models.ErrorKindNetwork, msgOfflineEmpty)
		default:
			s.log.Error(ctx, "stories cache read failed", "id", id, "error", cerr)
			kind, msg := classify(cerr)
			return models.Fail[models.Story](kind, msg)
		}
	}

	kind, msg := classify(err)
	return models.Fail[models.Story](kind, msg)
}

func (s *storyService) Add(ctx context.Context, draft models.StoryDraft) models.Result[models.Story] {
	return s.submit(ctx, draft, false)
}

func (s *storyService) AddGuest(ctx context.Context, draft models.StoryDraft) models.Result[models.Story] {
	return s.submit(ctx, draft, true)
}

// submit posts the draft and, when the device is confirmed offline, queues
// it instead. A network failure while the monitor still reports online is a
// plain failure: queueing on a transient server-side hiccup would duplicate
// the story as soon as the user retries.
func (s *storyService) submit(ctx context.Context, draft models.StoryDraft, guest bool) models.Result[models.Story] {
	var err error
	if guest {
		err = s.client.AddStoryGuest(ctx, draft)
	} else {
		err = s.client.AddStory(ctx, draft, s.session.Token(ctx))
	}
	if err == nil {
		return models.OKNotice(models.Story{}, "Your story has been shared.")
	}

	if s.offline(err) {
		sub := models.NewPendingSubmission(draft, guest)
		if perr := s.pendingRepo.Add(ctx, sub); perr != nil {
			s.log.Error(ctx, "pending queue write failed", "error", perr)
			kind, msg := classify(perr)
			return models.Fail[models.Story](kind, msg)
		}
		s.log.Info(ctx, "submission queued for sync", "id", sub.ID, "guest", guest)
		r := models.OKNotice(sub.Story(), msgQueued)
		r.Pending = true
		return r
	}

	kind, msg := classify(err)
	return models.Fail[models.Story](kind, msg)
}

func (s *storyService) PendingCount(ctx context.Context) int {
	n, err := s.pendingRepo.Count(ctx)
	if err != nil {
		return 0
	}
	return n
}

// offline reports whether err is a transport failure that happened while
// the connectivity monitor also says offline. Both conditions are required
// before any cache fallback or queueing kicks in.
func (s *storyService) offline(err error) bool {
	return errors.Is(err, common.ErrNetwork) && !s.monitor.Online()
}

// refreshCache writes a fetched page back into the local store. Page 1
// replaces the whole partition; persistence trouble is logged and the
// fresh network payload is still returned to the caller.
func (s *storyService) refreshCache(ctx context.Context, page int, list []models.Story) {
	if page <= 1 {
		if err := s.storyRepo.Clear(ctx); err != nil {
			s.log.Warn(ctx, "stories cache clear failed", "error", err)
			return
		}
	}
	if err := s.storyRepo.UpsertAll(ctx, list); err != nil {
		s.log.Warn(ctx, "stories cache write failed", "error", err)
	}
}
