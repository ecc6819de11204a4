package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvector/key-vector/internal/config"
	"github.com/keyvector/key-vector/internal/database"
)

func resetFlags() {
	webhost, webport, webssl = "", 0, false
	webcertFile, webkeyFile, statsDB = "", "", ""
	debug, pprofAddr = false, ""
}

func TestApplyFlagsDefaults(t *testing.T) {
	resetFlags()
	cfg := config.NewDefaultConfig()
	applyFlags(cfg)
	assert.Equal(t, config.DefaultListenPort, cfg.Web.ListenPort)
	assert.False(t, cfg.Web.SSL)
	assert.NoError(t, cfg.Validate())
}

func TestApplyFlagsSSL(t *testing.T) {
	resetFlags()
	defer resetFlags()
	webssl = true
	webcertFile, webkeyFile = "cert.pem", "key.pem"
	cfg := config.NewDefaultConfig()
	applyFlags(cfg)
	assert.Equal(t, config.DefaultSSLPort, cfg.Web.ListenPort)
	assert.True(t, cfg.Web.SSL)
	assert.NoError(t, cfg.Validate())

	webport = 8443
	applyFlags(cfg)
	assert.Equal(t, 8443, cfg.Web.ListenPort)
}

func TestOpenStats(t *testing.T) {
	resetFlags()
	defer resetFlags()
	cfg := config.NewDefaultConfig()

	stats, err := openStats(cfg)
	require.NoError(t, err)
	assert.IsType(t, &database.MemStats{}, stats)
	require.NoError(t, stats.Close())

	cfg.Database.StatsDB = filepath.Join(t.TempDir(), "stats.sq3")
	stats, err = openStats(cfg)
	require.NoError(t, err)
	defer stats.Close()
	assert.IsType(t, &database.StatsDB{}, stats)
	require.NoError(t, stats.Record(context.Background(), database.BucketWord))
}
