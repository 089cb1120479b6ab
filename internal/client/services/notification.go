package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"

	"storyshare/internal/client/api"
	"storyshare/internal/client/models"
	"storyshare/internal/client/repositories/metadata"
	"storyshare/internal/client/session"
)

// subscriptionKey is the metadata key the push subscription lives under.
const subscriptionKey = "push_subscription"

// NotificationService manages the push subscription lifecycle. There is no
// offline fallback here: subscribing is meaningless without the server.
type NotificationService interface {
	// Subscribe registers a push subscription, generating and persisting
	// one when none exists yet.
	Subscribe(ctx context.Context) models.Result[api.PushSubscription]

	// Unsubscribe removes the persisted subscription on the server and
	// locally.
	Unsubscribe(ctx context.Context) models.Result[models.None]

	// Test asks the server for a test push.
	Test(ctx context.Context) models.Result[models.None]

	// Subscribed reports whether a subscription is persisted locally.
	Subscribed(ctx context.Context) bool
}

type notificationService struct {
	client   api.Client
	session  *session.Manager
	metaRepo metadata.Repository
}

func NewNotificationService(client api.Client, sess *session.Manager, metaRepo metadata.Repository) NotificationService {
	return &notificationService{client: client, session: sess, metaRepo: metaRepo}
}

func (n *notificationService) Subscribe(ctx context.Context) models.Result[api.PushSubscription] {
	if sub, ok := n.stored(ctx); ok {
		return models.OKNotice(sub, "Already subscribed to notifications.")
	}

	sub := newSubscription()
	token := n.session.Token(ctx)
	if err := n.client.Subscribe(ctx, sub, token); err != nil {
		kind, msg := classify(err)
		return models.Fail[api.PushSubscription](kind, msg)
	}

	raw, err := json.Marshal(sub)
	if err == nil {
		err = n.metaRepo.Set(ctx, subscriptionKey, raw)
	}
	if err != nil {
		// The server now holds a subscription we cannot recall later.
		return models.Fail[api.PushSubscription](models.ErrorKindStorage, msgStorage)
	}
	return models.OKNotice(sub, "Subscribed to notifications.")
}

func (n *notificationService) Unsubscribe(ctx context.Context) models.Result[models.None] {
	sub, ok := n.stored(ctx)
	if !ok {
		return models.OKNotice(models.None{}, "Not subscribed.")
	}

	token := n.session.Token(ctx)
	if err := n.client.Unsubscribe(ctx, sub.Endpoint, token); err != nil {
		kind, msg := classify(err)
		return models.Fail[models.None](kind, msg)
	}
	if err := n.metaRepo.Delete(ctx, subscriptionKey); err != nil {
		return models.Fail[models.None](models.ErrorKindStorage, msgStorage)
	}
	return models.OKNotice(models.None{}, "Unsubscribed from notifications.")
}

func (n *notificationService) Test(ctx context.Context) models.Result[models.None] {
	if err := n.client.TestNotification(ctx, n.session.Token(ctx)); err != nil {
		kind, msg := classify(err)
		return models.Fail[models.None](kind, msg)
	}
	return models.OKNotice(models.None{}, "Test notification requested.")
}

func (n *notificationService) Subscribed(ctx context.Context) bool {
	_, ok := n.stored(ctx)
	return ok
}

func (n *notificationService) stored(ctx context.Context) (api.PushSubscription, bool) {
	raw, err := n.metaRepo.Get(ctx, subscriptionKey)
	if err != nil || len(raw) == 0 {
		return api.PushSubscription{}, false
	}
	var sub api.PushSubscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return api.PushSubscription{}, false
	}
	return sub, true
}

// newSubscription builds a subscription record in the shape the server
// expects from a browser push manager: a unique endpoint plus the p256dh
// and auth keys.
func newSubscription() api.PushSubscription {
	return api.PushSubscription{
		Endpoint: "https://fcm.googleapis.com/fcm/send/" + uuid.NewString(),
		Keys: map[string]string{
			"p256dh": randomKey(65),
			"auth":   randomKey(16),
		},
	}
}

func randomKey(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
