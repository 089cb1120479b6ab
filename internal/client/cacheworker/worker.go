// Package cacheworker applies one caching strategy per request class, the
// way the service worker of the original web client does: cache-first for
// the app shell and images, network-first with a bounded timeout for API
// calls, pass-through with best-effort caching for everything else. It is
// wired in as an http.RoundTripper so every client request flows through it.
package cacheworker

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"storyshare/internal/logging"
)

// Defaults match the original worker configuration.
const (
	DefaultImageMaxEntries = 60
	DefaultImageMaxAge     = 90 * 24 * time.Hour
	DefaultAPIMaxAge       = 24 * time.Hour
	DefaultAPITimeout      = 10 * time.Second
)

// placeholderSVG is served for image requests that fail while offline.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300"><rect width="100%" height="100%" fill="#e5e7eb"/><text x="50%" y="50%" fill="#6b7280" font-family="sans-serif" font-size="16" text-anchor="middle">Image unavailable offline</text></svg>`

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".svg": true, ".ico": true,
}

// AssetSource looks up resources saved for offline use, keyed by URL. The
// offline assets partition of the local store implements it.
type AssetSource interface {
	GetAsset(ctx context.Context, url string) ([]byte, error)
}

// Config tunes the worker. Zero values fall back to the defaults above.
type Config struct {
	// APIPrefix classifies API calls, e.g. "https://story-api.example/v1".
	APIPrefix string
	// Origin is the app's own origin; only same-origin responses are
	// cached on the pass-through path.
	Origin string
	// ShellPaths are the precached app-shell URLs.
	ShellPaths []string
	// Assets, when set, backs failed image fetches with resources saved
	// in the local store before the placeholder kicks in.
	Assets AssetSource

	ImageMaxEntries int
	ImageMaxAge     time.Duration
	APIMaxAge       time.Duration
	APITimeout      time.Duration
}

func (c *Config) applyDefaults() {
	if c.ImageMaxEntries <= 0 {
		c.ImageMaxEntries = DefaultImageMaxEntries
	}
	if c.ImageMaxAge <= 0 {
		c.ImageMaxAge = DefaultImageMaxAge
	}
	if c.APIMaxAge <= 0 {
		c.APIMaxAge = DefaultAPIMaxAge
	}
	if c.APITimeout <= 0 {
		c.APITimeout = DefaultAPITimeout
	}
}

// Worker is the caching round tripper.
type Worker struct {
	base http.RoundTripper
	cfg  Config
	log  logging.Logger

	shell  map[string]bool
	static *cache.Cache // app shell + pass-through runtime cache
	api    *cache.Cache
	images *imageCache
}

func NewWorker(base http.RoundTripper, cfg Config, log logging.Logger) *Worker {
	if base == nil {
		base = http.DefaultTransport
	}
	cfg.applyDefaults()

	shell := make(map[string]bool, len(cfg.ShellPaths))
	for _, p := range cfg.ShellPaths {
		shell[p] = true
	}

	return &Worker{
		base:   base,
		cfg:    cfg,
		log:    log,
		shell:  shell,
		static: cache.New(cache.NoExpiration, 0),
		api:    cache.New(cfg.APIMaxAge, time.Hour),
		images: newImageCache(cfg.ImageMaxEntries, cfg.ImageMaxAge),
	}
}

// requestClass is the strategy selector.
type requestClass int

const (
	classOther requestClass = iota
	classShell
	classImage
	classAPI
)

func (w *Worker) classify(req *http.Request) requestClass {
	url := req.URL.String()
	if w.cfg.APIPrefix != "" && strings.HasPrefix(url, w.cfg.APIPrefix) {
		return classAPI
	}
	if isImageRequest(req) {
		return classImage
	}
	if w.shell[url] || w.shell[req.URL.Path] {
		return classShell
	}
	return classOther
}

func isImageRequest(req *http.Request) bool {
	if strings.HasPrefix(req.Header.Get("Accept"), "image/") {
		return true
	}
	return imageExtensions[strings.ToLower(path.Ext(req.URL.Path))]
}

func isNavigation(req *http.Request) bool {
	return req.Method == http.MethodGet && strings.Contains(req.Header.Get("Accept"), "text/html")
}

func isNoStore(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Cache-Control")), "no-store")
}

// RoundTrip dispatches the request to the strategy of its class. Only GETs
// are cache-eligible; everything else passes straight through. A request
// carrying "Cache-Control: no-store" bypasses every cache in both
// directions: it is never answered from cache and its response is never
// stored. The connectivity probe depends on this — a probe answered from
// cache would report a dead network as reachable.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || isNoStore(req) {
		return w.base.RoundTrip(req)
	}

	switch w.classify(req) {
	case classShell:
		return w.cacheFirst(req, w.static, cache.NoExpiration)
	case classImage:
		return w.imageCacheFirst(req)
	case classAPI:
		return w.networkFirst(req)
	default:
		return w.passThrough(req)
	}
}

// cacheFirst serves from the given cache and only reaches for the network
// on a miss. Navigation requests that fail on a miss fall back to the
// cached app shell.
func (w *Worker) cacheFirst(req *http.Request, store *cache.Cache, ttl time.Duration) (*http.Response, error) {
	key := req.URL.String()
	if entry, ok := store.Get(key); ok {
		return entry.(cachedResponse).response(req), nil
	}

	resp, body, err := w.fetch(req)
	if err != nil {
		if isNavigation(req) {
			if shell, ok := w.cachedShell(); ok {
				return shell.response(req), nil
			}
		}
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		store.Set(key, newCachedResponse(resp, body), ttl)
	}
	return resp, nil
}

func (w *Worker) imageCacheFirst(req *http.Request) (*http.Response, error) {
	key := req.URL.String()
	if entry, ok := w.images.get(key); ok {
		return entry.response(req), nil
	}

	resp, body, err := w.fetch(req)
	if err != nil {
		if saved, ok := w.savedAsset(req); ok {
			return saved.response(req), nil
		}
		return placeholderResponse(req), nil
	}
	if resp.StatusCode == http.StatusOK {
		w.images.put(key, newCachedResponse(resp, body))
	}
	return resp, nil
}

// networkFirst tries the network under a bounded timeout and falls back to
// the last cached payload. Only 200 responses are cached; an error envelope
// must never be replayed later as a fresh answer.
func (w *Worker) networkFirst(req *http.Request) (*http.Response, error) {
	key := req.URL.String()

	ctx, cancel := context.WithTimeout(req.Context(), w.cfg.APITimeout)
	resp, body, err := w.fetch(req.WithContext(ctx))
	if err != nil {
		cancel()
		if entry, ok := w.api.Get(key); ok {
			w.log.Info(req.Context(), "serving cached api response", "url", key)
			return entry.(cachedResponse).response(req), nil
		}
		return nil, err
	}
	cancel()

	if resp.StatusCode == http.StatusOK {
		w.api.Set(key, newCachedResponse(resp, body), cache.DefaultExpiration)
	}
	return resp, nil
}

// passThrough forwards to the network and opportunistically caches
// successful same-origin responses so they survive going offline.
func (w *Worker) passThrough(req *http.Request) (*http.Response, error) {
	resp, body, err := w.fetch(req)
	if err != nil {
		key := req.URL.String()
		if entry, ok := w.static.Get(key); ok {
			return entry.(cachedResponse).response(req), nil
		}
		if isNavigation(req) {
			if shell, ok := w.cachedShell(); ok {
				return shell.response(req), nil
			}
		}
		return nil, err
	}

	if resp.StatusCode == http.StatusOK && w.sameOrigin(req) {
		w.static.Set(req.URL.String(), newCachedResponse(resp, body), cache.NoExpiration)
	}
	return resp, nil
}

func (w *Worker) sameOrigin(req *http.Request) bool {
	if w.cfg.Origin == "" {
		return false
	}
	return strings.HasPrefix(req.URL.String(), w.cfg.Origin)
}

// cachedShell returns any precached shell document usable as a navigation
// fallback.
func (w *Worker) cachedShell() (cachedResponse, bool) {
	for _, p := range w.cfg.ShellPaths {
		if entry, ok := w.static.Get(p); ok {
			return entry.(cachedResponse), true
		}
	}
	return cachedResponse{}, false
}

// PrecacheShell fetches and stores the configured shell URLs.
func (w *Worker) PrecacheShell(ctx context.Context) {
	w.Precache(ctx, w.cfg.ShellPaths)
}

// Precache fetches and stores every shell URL. Individual failures are
// logged and skipped; install must not depend on every asset being
// reachable.
func (w *Worker) Precache(ctx context.Context, urls []string) {
	for _, u := range urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			w.log.Warn(ctx, "precache skipped", "url", u, "error", err)
			continue
		}
		resp, body, err := w.fetch(req)
		if err != nil || resp.StatusCode != http.StatusOK {
			w.log.Warn(ctx, "precache failed", "url", u, "error", err)
			continue
		}
		w.static.Set(u, newCachedResponse(resp, body), cache.NoExpiration)
		w.shell[u] = true
		w.shell[req.URL.Path] = true
	}
}

// fetch runs the request on the base transport and drains the body so the
// payload can both be cached and handed back to the caller.
func (w *Worker) fetch(req *http.Request) (*http.Response, []byte, error) {
	resp, err := w.base.RoundTrip(req)
	if err != nil {
		return nil, nil, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, body, nil
}

// cachedResponse is the stored form of a response: status, headers, payload.
type cachedResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

func newCachedResponse(resp *http.Response, body []byte) cachedResponse {
	return cachedResponse{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}
}

// response materializes the entry as a servable http.Response.
func (c cachedResponse) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode:    c.Status,
		Status:        http.StatusText(c.Status),
		Header:        c.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(c.Body)),
		ContentLength: int64(len(c.Body)),
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
	}
}

// savedAsset consults the offline assets partition for a stored copy of
// the requested resource, e.g. a bookmarked story's photo.
func (w *Worker) savedAsset(req *http.Request) (cachedResponse, bool) {
	if w.cfg.Assets == nil {
		return cachedResponse{}, false
	}
	data, err := w.cfg.Assets.GetAsset(req.Context(), req.URL.String())
	if err != nil || len(data) == 0 {
		return cachedResponse{}, false
	}
	header := make(http.Header)
	header.Set("Content-Type", http.DetectContentType(data))
	return cachedResponse{Status: http.StatusOK, Header: header, Body: data}, true
}

func placeholderResponse(req *http.Request) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "image/svg+xml")
	return (cachedResponse{Status: http.StatusOK, Header: header, Body: []byte(placeholderSVG)}).response(req)
}

// imageCache is an entry-capped TTL cache. Eviction is by insertion order,
// not by access time.
type imageCache struct {
	mu    sync.Mutex
	store *cache.Cache
	order []string
	max   int
}

func newImageCache(maxEntries int, maxAge time.Duration) *imageCache {
	return &imageCache{
		store: cache.New(maxAge, time.Hour),
		max:   maxEntries,
	}
}

func (c *imageCache) get(key string) (cachedResponse, bool) {
	entry, ok := c.store.Get(key)
	if !ok {
		return cachedResponse{}, false
	}
	return entry.(cachedResponse), true
}

func (c *imageCache) put(key string, entry cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop order slots whose entries already expired.
	live := c.order[:0]
	for _, k := range c.order {
		if k == key {
			continue
		}
		if _, ok := c.store.Get(k); ok {
			live = append(live, k)
		}
	}
	c.order = live

	for len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.store.Delete(oldest)
	}

	c.store.Set(key, entry, cache.DefaultExpiration)
	c.order = append(c.order, key)
}

func (c *imageCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
