package cli

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"storyshare/internal/client/api"
	"storyshare/internal/client/cacheworker"
	"storyshare/internal/client/client"
	"storyshare/internal/client/config"
	"storyshare/internal/client/services"
	"storyshare/internal/client/session"
	clientsync "storyshare/internal/client/sync"
	"storyshare/internal/filex"
	"storyshare/internal/logging"
	"storyshare/internal/netx"

	_ "modernc.org/sqlite"
)

// shellAssets is the app-shell precache list, relative to the origin.
var shellAssets = []string{
	"/",
	"/index.html",
	"/app.bundle.js",
	"/app.css",
	"/favicon.png",
	"/app.webmanifest",
}

// App owns every wired component of the client and drives the REPL.
type App struct {
	config *config.Config
	log    logging.Logger

	repos      *client.Repositories
	session    *session.Manager
	monitor    *netx.Monitor
	watcher    *netx.Watcher
	worker     *cacheworker.Worker
	httpClient *http.Client

	authService     services.AuthService
	storyService    services.StoryService
	bookmarkService services.BookmarkService
	notifService    services.NotificationService
	coordinator     *clientsync.Coordinator

	reader *bufio.Reader

	// route currently shown, in hash form, e.g. "#/home".
	currentHash string
}

// NewApp wires the full client: SQLite record store, caching transport,
// HTTP API client, session manager, gateway services and sync coordinator.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dbPath := c.DatabasePath
	if filepath.Dir(dbPath) == "." {
		dir, err := filex.EnsureSubdDir("data")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	repos, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	shellURLs := make([]string, 0, len(shellAssets))
	for _, p := range shellAssets {
		shellURLs = append(shellURLs, c.Origin+p)
	}

	worker := cacheworker.NewWorker(http.DefaultTransport, cacheworker.Config{
		APIPrefix:       c.BaseURL,
		Origin:          c.Origin,
		ShellPaths:      shellURLs,
		Assets:          repos.Offline,
		ImageMaxEntries: c.ImageCacheEntries,
		ImageMaxAge:     c.ImageCacheMaxAge,
		APITimeout:      c.APITimeout,
	}, log)

	httpClient := &http.Client{Transport: worker}
	apiClient := api.NewHTTPClient(c.BaseURL, httpClient)

	sess := session.NewManager(repos.Metadata)
	monitor := netx.NewMonitor(apiClient.Ping(ctx) == nil)
	watcher := netx.NewWatcher(monitor, apiClient, c.OnlineCheckInterval, log)

	app := &App{
		config:     c,
		log:        log,
		repos:      repos,
		session:    sess,
		monitor:    monitor,
		watcher:    watcher,
		worker:     worker,
		httpClient: httpClient,

		authService:     services.NewAuthService(apiClient, sess),
		storyService:    services.NewStoryService(apiClient, repos.Stories, repos.Pending, sess, monitor, log, c.PageSize),
		bookmarkService: services.NewBookmarkService(repos.Bookmarks),
		notifService:    services.NewNotificationService(apiClient, sess, repos.Metadata),
		coordinator:     clientsync.NewCoordinator(apiClient, repos.Pending, repos.Offline, sess, monitor, log),

		reader: bufio.NewReader(os.Stdin),
	}
	return app, nil
}

// Run starts the connectivity watcher and the sync trigger, then blocks in
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.repos.Close()

	// A cold start at the root route drops any stale session, the way the
	// web client clears auth data when opened at "/".
	_ = a.session.ClearAtRoot(ctx, a.currentHash)

	go a.watcher.Run(ctx)
	go a.coordinator.Watch(ctx, a.watcher.Events())
	go a.worker.PrecacheShell(ctx)

	a.Root(ctx)
}

func (a *App) isSignedIn(ctx context.Context) bool {
	return a.session.SignedIn(ctx)
}
