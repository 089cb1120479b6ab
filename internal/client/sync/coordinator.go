// Package sync drains the pending-submission queue back through the remote
// API once connectivity returns.
package sync

import (
	"context"
	"time"

	"storyshare/internal/client/api"
	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/offline"
	"storyshare/internal/client/repositories/pending"
	"storyshare/internal/client/session"
	"storyshare/internal/logging"
	"storyshare/internal/netx"
)

// LastSyncKey is the offline-data key recording when the queue last
// drained completely.
const LastSyncKey = "last_sync_at"

// Coordinator replays queued submissions. Replay is strictly sequential in
// insertion order: one in-flight request at a time preserves relative
// submission order and avoids burst load after a long offline stretch.
type Coordinator struct {
	client      api.Client
	pendingRepo pending.Repository
	offlineRepo offline.Repository
	session     *session.Manager
	monitor     *netx.Monitor
	log         logging.Logger
}

func NewCoordinator(client api.Client, pendingRepo pending.Repository,
	offlineRepo offline.Repository, sess *session.Manager,
	monitor *netx.Monitor, log logging.Logger) *Coordinator {
	return &Coordinator{
		client:      client,
		pendingRepo: pendingRepo,
		offlineRepo: offlineRepo,
		session:     sess,
		monitor:     monitor,
		log:         log,
	}
}

// Run replays the whole queue once. It is a no-op while offline. Each
// record is removed only after the server accepted it; a record that fails
// to replay is logged and skipped so the rest of the queue still drains.
// A replay that succeeds remotely but fails to delete locally will repeat
// on the next run; delivery is at-least-once.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.monitor.Online() {
		return nil
	}

	queue, err := c.pendingRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		return nil
	}

	c.log.Info(ctx, "sync started", "queued", len(queue))

	var replayed int
	for _, sub := range queue {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := c.replay(ctx, sub); err != nil {
			c.log.Warn(ctx, "replay failed, record kept", "id", sub.ID, "error", err)
			continue
		}
		if err := c.pendingRepo.Remove(ctx, sub.ID); err != nil {
			c.log.Warn(ctx, "replayed record not removed, will repeat", "id", sub.ID, "error", err)
			continue
		}
		replayed++
	}

	c.log.Info(ctx, "sync finished", "replayed", replayed, "kept", len(queue)-replayed)

	if replayed == len(queue) {
		stamp := []byte(time.Now().UTC().Format(time.RFC3339))
		if err := c.offlineRepo.SaveData(ctx, LastSyncKey, stamp); err != nil {
			c.log.Warn(ctx, "last sync time not recorded", "error", err)
		}
	}
	return nil
}

// LastSync returns when the queue last drained completely, or the zero
// time when no sync has completed yet.
func (c *Coordinator) LastSync(ctx context.Context) time.Time {
	data, err := c.offlineRepo.GetData(ctx, LastSyncKey)
	if err != nil || len(data) == 0 {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Coordinator) replay(ctx context.Context, sub models.PendingSubmission) error {
	draft, err := sub.Draft()
	if err != nil {
		return err
	}
	if sub.IsGuest {
		return c.client.AddStoryGuest(ctx, draft)
	}
	// The token is read freshly per record: the session may have changed
	// since the submission was queued.
	return c.client.AddStory(ctx, draft, c.session.Token(ctx))
}

// Watch consumes connectivity transitions and runs a sync on every
// offline-to-online edge. It returns when the channel closes or ctx ends.
func (c *Coordinator) Watch(ctx context.Context, events <-chan netx.Transition) {
	for {
		select {
		case t, ok := <-events:
			if !ok {
				return
			}
			if !t.Online {
				continue
			}
			if err := c.Run(ctx); err != nil {
				c.log.Error(ctx, "sync run failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
