// Package config provides configuration management for key-vector.
package config

import (
	"fmt"
	"log"
	"sync"
	"time"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default web settings (5000 is the port the practice page has always used)
	DefaultListenHost = ""
	DefaultListenPort = 5000
	DefaultSSLPort    = 5443

	// Graceful shutdown budget for in-flight requests
	DefaultShutdownTimeout = 10 * time.Second

	// Morse playback defaults used by the practice page
	DefaultMorseUnit = 100 * time.Millisecond
	DefaultToneHz    = 600
)

// MainConfig holds the main configuration for key-vector
type MainConfig struct {
	// Mutex for thread-safe access
	mux sync.Mutex `json:"-"`

	// Web interface settings
	Web *WebConfig `json:"web"`

	// Stats database settings
	Database DatabaseConfig `json:"database"`

	// Morse playback settings
	Morse MorseConfig `json:"morse"`

	// Address for the pprof listener, empty disables profiling
	PprofAddr string `json:"pprof_addr"`

	AppVersion string `json:"app_version"` // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenHost      string        `json:"listen_host"`
	ListenPort      int           `json:"listen_port"`
	SSL             bool          `json:"ssl"`
	CertFile        string        `json:"cert_file,omitempty"`
	KeyFile         string        `json:"key_file,omitempty"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Debug           bool          `json:"debug"` // Enable gin debug mode and verbose logging
}

// DatabaseConfig holds stats database configuration
type DatabaseConfig struct {
	StatsDB string `json:"stats_db"` // Path to SQLite stats database, empty keeps stats in memory
}

// MorseConfig holds the playback parameters reported to clients
type MorseConfig struct {
	Unit   time.Duration `json:"unit"`
	ToneHz int           `json:"tone_hz"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	maincfg := &MainConfig{
		AppVersion: AppVersion, // Set application version
		Web: &WebConfig{
			ListenHost:      DefaultListenHost,
			ListenPort:      DefaultListenPort,
			SSL:             false,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Morse: MorseConfig{
			Unit:   DefaultMorseUnit,
			ToneHz: DefaultToneHz,
		},
	}

	maincfg.mux.Lock()
	log.Printf("MainConfig initialized (version: %s)", maincfg.AppVersion)
	maincfg.mux.Unlock()
	return maincfg
}

// Addr returns the host:port the web server listens on
func (w *WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.ListenHost, w.ListenPort)
}

// Validate checks the web configuration for obvious mistakes
func (w *WebConfig) Validate() error {
	if w.ListenPort < 1 || w.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", w.ListenPort)
	}
	if w.SSL && (w.CertFile == "" || w.KeyFile == "") {
		return fmt.Errorf("SSL enabled but cert_file or key_file not specified")
	}
	return nil
}

// Validate checks the morse playback settings
func (m *MorseConfig) Validate() error {
	if m.Unit <= 0 {
		return fmt.Errorf("invalid morse unit: %s", m.Unit)
	}
	if m.ToneHz <= 0 {
		return fmt.Errorf("invalid tone frequency: %d", m.ToneHz)
	}
	return nil
}

// Validate checks every section of the main configuration
func (c *MainConfig) Validate() error {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.Web == nil {
		return fmt.Errorf("missing web configuration")
	}
	if err := c.Web.Validate(); err != nil {
		return fmt.Errorf("web: %w", err)
	}
	if err := c.Morse.Validate(); err != nil {
		return fmt.Errorf("morse: %w", err)
	}
	return nil
}
