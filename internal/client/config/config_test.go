package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://story-api.dicoding.dev/v1", c.BaseURL)
	assert.Equal(t, "storyshare.db", c.DatabasePath)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.APITimeout)
	assert.Equal(t, 60, c.ImageCacheEntries)
	assert.Equal(t, 90*24*time.Hour, c.ImageCacheMaxAge)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://story-api.dicoding.dev/v1", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}
