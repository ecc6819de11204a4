package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NotNil(t, cfg.Web)
	assert.Equal(t, DefaultListenPort, cfg.Web.ListenPort)
	assert.False(t, cfg.Web.SSL)
	assert.Equal(t, DefaultMorseUnit, cfg.Morse.Unit)
	assert.Equal(t, DefaultToneHz, cfg.Morse.ToneHz)
	assert.Empty(t, cfg.Database.StatsDB)
	assert.NoError(t, cfg.Validate())
}

func TestWebConfigAddr(t *testing.T) {
	w := &WebConfig{ListenHost: "127.0.0.1", ListenPort: 8080}
	assert.Equal(t, "127.0.0.1:8080", w.Addr())

	w.ListenHost = ""
	assert.Equal(t, ":8080", w.Addr())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *MainConfig)
		wantErr bool
	}{
		{"defaults", func(c *MainConfig) {}, false},
		{"port zero", func(c *MainConfig) { c.Web.ListenPort = 0 }, true},
		{"port too high", func(c *MainConfig) { c.Web.ListenPort = 70000 }, true},
		{"ssl without cert", func(c *MainConfig) { c.Web.SSL = true }, true},
		{"ssl with cert", func(c *MainConfig) {
			c.Web.SSL = true
			c.Web.CertFile = "cert.pem"
			c.Web.KeyFile = "key.pem"
		}, false},
		{"zero unit", func(c *MainConfig) { c.Morse.Unit = 0 }, true},
		{"zero tone", func(c *MainConfig) { c.Morse.ToneHz = 0 }, true},
		{"no web", func(c *MainConfig) { c.Web = nil }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
