// Package config loads runtime configuration for the storyshare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the story API
//	-d string   path of the local SQLite database
//	-p int      stories per list page
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://story-api.dicoding.dev/v1",
//	  "database_path": "storyshare.db",
//	  "page_size": 10,
//	  "online_check_interval": "3s",
//	  "api_timeout": "10s",
//	  "image_cache_entries": 60,
//	  "image_cache_max_age": "2160h"
//	}
//
// Primary API
//
//   - type Config                     — holds the runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
