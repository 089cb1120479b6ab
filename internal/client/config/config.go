package config

import "time"

// Config holds runtime settings for the storyshare CLI.
//
// Fields:
//   - BaseURL: root URL of the remote story API.
//   - Origin: the app's own origin, used by the cache worker to decide
//     which pass-through responses are cacheable.
//   - DatabasePath: SQLite file backing the local record store.
//   - PageSize: stories fetched per list page.
//   - OnlineCheckInterval: how often the client probes API reachability.
//   - APITimeout: bound on a network-first API fetch in the cache worker.
//   - ImageCacheEntries / ImageCacheMaxAge: image cache cap and expiry.
//
// Units: intervals and timeouts are time.Duration values.
type Config struct {
	BaseURL             string
	Origin              string
	DatabasePath        string
	PageSize            int
	OnlineCheckInterval time.Duration
	APITimeout          time.Duration
	ImageCacheEntries   int
	ImageCacheMaxAge    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://story-api.dicoding.dev/v1"
	c.Origin = "https://storyshare.local"
	c.DatabasePath = "storyshare.db"
	c.PageSize = 10
	c.OnlineCheckInterval = 3 * time.Second
	c.APITimeout = 10 * time.Second
	c.ImageCacheEntries = 60
	c.ImageCacheMaxAge = 90 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
