package config

import (
	"encoding/json"
	"os"
	"time"

	"storyshare/internal/flagx"
	"storyshare/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL             string         `json:"base_url"`
	Origin              string         `json:"origin"`
	DatabasePath        string         `json:"database_path"`
	PageSize            int            `json:"page_size"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	APITimeout          timex.Duration `json:"api_timeout"`
	ImageCacheEntries   int            `json:"image_cache_entries"`
	ImageCacheMaxAge    timex.Duration `json:"image_cache_max_age"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; zero values keep the
//     defaults already in place.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.Origin != "" {
		cfg.Origin = jc.Origin
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.APITimeout.Duration > 0 {
		cfg.APITimeout = time.Duration(jc.APITimeout.Duration)
	}
	if jc.ImageCacheEntries > 0 {
		cfg.ImageCacheEntries = jc.ImageCacheEntries
	}
	if jc.ImageCacheMaxAge.Duration > 0 {
		cfg.ImageCacheMaxAge = time.Duration(jc.ImageCacheMaxAge.Duration)
	}
}
