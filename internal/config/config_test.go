package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "packs", cfg.Packs.Dir)
	assert.Equal(t, 4, cfg.Packs.Concurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Packs.Debounce)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, "en", cfg.Browser.Locale)
	assert.Equal(t, 100, cfg.Browser.ResultLimit)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("COMPENDIUM_TRANSPORT", "http")
	t.Setenv("COMPENDIUM_ADDR", "127.0.0.1:9000")
	t.Setenv("COMPENDIUM_GM", "false")
	t.Setenv("COMPENDIUM_CAMPAIGN_TYPE", "kingmaker")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.False(t, cfg.Browser.GM)
	assert.Equal(t, "kingmaker", cfg.Browser.CampaignType)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("COMPENDIUM_LOG_LEVEL", "verbose")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("COMPENDIUM_LOG_LEVEL", "info")
	t.Setenv("COMPENDIUM_PACK_CONCURRENCY", "0")
	_, err = Load()
	assert.Error(t, err)
}
