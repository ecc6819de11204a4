// Morse practice web server for key-vector
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/keyvector/key-vector/internal/config"
	"github.com/keyvector/key-vector/internal/database"
	"github.com/keyvector/key-vector/internal/web"
)

var (
	// command-line flags
	webhost     string
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	statsDB     string
	debug       bool
	pprofAddr   string
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&webhost, "webhost", config.DefaultListenHost, "Web server listen address (default: all interfaces)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 5000 (no ssl) or 5443 (webssl))")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&statsDB, "statsdb", "", "SQLite file for practice stats (default: keep stats in memory)")
	flag.BoolVar(&debug, "debug", false, "Enable gin debug mode")
	flag.StringVar(&pprofAddr, "pprof", "", "Serve pprof on this address, e.g. 127.0.0.1:51111 (default: off)")
	flag.Parse()

	mainConfig := config.NewDefaultConfig()
	log.Printf("Starting key-vector: Web Server (version: %s)", appVersion)

	applyFlags(mainConfig)
	if err := mainConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}
	log.Printf("[WEB]: Using WEB configuration: %#v", mainConfig.Web)

	if mainConfig.PprofAddr != "" {
		profiler := prof.NewProf()
		go profiler.PprofWeb(mainConfig.PprofAddr)
		log.Printf("[WEB]: pprof listening on %s", mainConfig.PprofAddr)
	}

	stats, err := openStats(mainConfig)
	if err != nil {
		log.Fatalf("[WEB]: Failed to initialize stats database: %v", err)
	}

	server := web.NewServer(mainConfig.Web, mainConfig.Morse, stats)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	protocol := "http"
	if mainConfig.Web.SSL {
		protocol = "https"
	}
	log.Printf("[WEB]: Starting key-vector web server on %s://localhost:%d", protocol, mainConfig.Web.ListenPort)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started successfully. Press Ctrl+C to gracefully shutdown...")

	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mainConfig.Web.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error stopping web server: %v", err)
	}

	if err := stats.Close(); err != nil {
		log.Printf("[WEB]: Error closing stats store: %v", err)
	} else {
		log.Printf("[WEB]: Stats store closed successfully")
	}

	log.Printf("[WEB]: Graceful shutdown completed")
} // end main

// applyFlags overrides config defaults with command-line flags if provided
func applyFlags(mainConfig *config.MainConfig) {
	webConfig := mainConfig.Web
	webConfig.ListenHost = webhost
	if webssl {
		webConfig.SSL = true
		webConfig.ListenPort = config.DefaultSSLPort
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	} else {
		log.Printf("[WEB]: No port flag provided, using default: %d", webConfig.ListenPort)
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
		log.Printf("[WEB]: SSL cert file set: %s", webConfig.CertFile)
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
		log.Printf("[WEB]: SSL key file set: %s", webConfig.KeyFile)
	}
	webConfig.Debug = debug
	mainConfig.Database.StatsDB = statsDB
	mainConfig.PprofAddr = pprofAddr
}

// openStats returns the SQLite store when a path is configured, else in-memory counters
func openStats(mainConfig *config.MainConfig) (database.Recorder, error) {
	if mainConfig.Database.StatsDB == "" {
		log.Printf("[WEB]: No stats database configured, keeping stats in memory")
		return database.NewMemStats(), nil
	}
	return database.OpenStatsDB(context.Background(), database.DefaultDBConfig(mainConfig.Database.StatsDB))
}
