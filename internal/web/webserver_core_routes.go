package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/keyvector/key-vector/internal/config"
	"github.com/keyvector/key-vector/internal/database"
	"github.com/keyvector/key-vector/internal/phrase"
)

// WebServer represents the web server
type WebServer struct {
	Router   *gin.Engine
	Config   *config.WebConfig
	Morse    config.MorseConfig
	Stats    database.Recorder
	Selector *phrase.Selector

	mux       sync.Mutex
	srv       *http.Server
	startTime time.Time // Track server start time for uptime calculations
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig, morsecfg config.MorseConfig, stats database.Recorder) *WebServer {
	switch {
	case webconfig.Debug:
		gin.SetMode(gin.DebugMode)
	case gin.Mode() != gin.TestMode:
		// Set Gin to release mode for production
		gin.SetMode(gin.ReleaseMode)
	}

	if stats == nil {
		stats = database.NewMemStats()
	}

	router := gin.New()

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		log.Printf("[WEB]: Warning: failed to set trusted proxies: %v", err)
	}

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	server := &WebServer{
		Router:    router,
		Config:    webconfig,
		Morse:     morsecfg,
		Stats:     stats,
		Selector:  phrase.NewSelector(),
		startTime: time.Now(),
	}

	router.Use(gin.Recovery())
	router.Use(server.ApacheLogFormat())
	router.Use(secure.New(secureConfig))
	router.Use(server.ReverseProxyMiddleware())

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.GET("/static/*filepath", EmbeddedStaticHandler("/static"))
	s.Router.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	s.Router.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})
	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	s.Router.GET("/", EmbeddedFileHandler("static/index.html"))

	s.Router.GET("/get_word/:mode", s.getWord)
	s.Router.GET("/get_morse/:mode", s.getMorse)

	api := s.Router.Group("/api/v1")
	{
		api.GET("/stats", s.getStats)
		api.GET("/stats/", s.getStats)
		api.GET("/words", s.listWords)
	}
}

// Start starts the web server with SSL support if configured.
// It blocks until the server stops and returns http.ErrServerClosed after Shutdown.
func (s *WebServer) Start() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	addr := s.Config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called
func (s *WebServer) Serve(ln net.Listener) error {
	s.mux.Lock()
	if s.srv != nil {
		s.mux.Unlock()
		return errors.New("web server already running")
	}
	s.srv = &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	srv := s.srv
	s.startTime = time.Now() // Set the start time for uptime calculations
	s.mux.Unlock()

	if s.Config.SSL {
		log.Printf("[WEB]: Starting HTTPS server on %s", ln.Addr())
		return srv.ServeTLS(ln, s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", ln.Addr())
	return srv.Serve(ln)
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx expires
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	srv := s.srv
	s.mux.Unlock()
	if srv == nil {
		return nil
	}
	log.Printf("[WEB]: Shutting down web server...")
	return srv.Shutdown(ctx)
}

// Uptime returns how long the server has been running
func (s *WebServer) Uptime() time.Duration {
	s.mux.Lock()
	defer s.mux.Unlock()
	return time.Since(s.startTime)
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = strings.TrimSpace(strings.Split(host, ",")[0])
		}

		c.Next()
	}
}

// ApacheLogFormat logs each request in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
