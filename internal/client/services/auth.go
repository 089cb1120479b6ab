package services

import (
	"context"

	"storyshare/internal/client/api"
	"storyshare/internal/client/models"
	"storyshare/internal/client/session"
)

// AuthService defines the authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session record.
//   - Register: create a new account on the server.
//   - Logout: drop the local session record.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) models.Result[models.SessionAuth]
	Register(ctx context.Context, name, email, password string) models.Result[models.None]
	Logout(ctx context.Context) error
}

type authService struct {
	client  api.Client
	session *session.Manager
}

// NewAuthService constructs an AuthService bound to the given API client
// and session manager.
func NewAuthService(client api.Client, sess *session.Manager) AuthService {
	return &authService{client: client, session: sess}
}

// Login authenticates and, on success, persists the session record so the
// route guard sees the user as signed in. A session that cannot be
// persisted is a failure: the credentials were accepted but the client
// would forget them on the next route change.
func (a *authService) Login(ctx context.Context, email, password string) models.Result[models.SessionAuth] {
	auth, err := a.client.Login(ctx, email, password)
	if err != nil {
		kind, msg := classify(err)
		return models.Fail[models.SessionAuth](kind, msg)
	}
	if err := a.session.Set(ctx, auth); err != nil {
		return models.Fail[models.SessionAuth](models.ErrorKindStorage, msgStorage)
	}
	return models.OK(auth)
}

func (a *authService) Register(ctx context.Context, name, email, password string) models.Result[models.None] {
	if err := a.client.Register(ctx, name, email, password); err != nil {
		kind, msg := classify(err)
		return models.Fail[models.None](kind, msg)
	}
	return models.OKNotice(models.None{}, "Account created. You can sign in now.")
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}
