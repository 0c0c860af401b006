// Package api exposes the audit engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/MJE43/rtp-audit/internal/audit"
	"github.com/MJE43/rtp-audit/internal/catalog"
	"github.com/MJE43/rtp-audit/internal/config"
	"github.com/MJE43/rtp-audit/internal/scenario"
	"github.com/MJE43/rtp-audit/internal/store"
)

// Auditor runs audits over a catalog and scenario registry.
type Auditor interface {
	RunAudit(ctx context.Context, plays int) (*audit.Report, error)
	Catalog() *catalog.Catalog
	Registry() *scenario.Registry
}

// Options are the transport settings of a Server.
type Options struct {
	DefaultPlays   int
	MaxPlays       int
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORS           config.CORSConfig
	RateLimit      config.RateLimitConfig
}

// OptionsFromConfig extracts the server options from cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		DefaultPlays:   cfg.Audit.DefaultPlays,
		MaxPlays:       cfg.Audit.MaxPlays,
		CacheTTL:       cfg.Cache.TTL,
		RequestTimeout: cfg.Server.RequestTimeout,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		CORS:           cfg.CORS,
		RateLimit:      cfg.RateLimit,
	}
}

// Server handles HTTP requests
type Server struct {
	auditor      Auditor
	cache        store.Cache
	opts         Options
	errorHandler *ErrorHandler
	logger       *zap.Logger
	metrics      *Metrics
	limiter      *RateLimiter
	flight       singleflight.Group
	httpServer   *http.Server
	startTime    time.Time
}

// NewServer creates a new API server. A nil cache disables response caching
// and a nil logger discards logs.
func NewServer(auditor Auditor, cache store.Cache, opts Options, logger *zap.Logger) *Server {
	if cache == nil {
		cache = store.NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultPlays <= 0 {
		opts.DefaultPlays = 10_000
	}
	if opts.MaxPlays <= 0 {
		opts.MaxPlays = config.MaxPlays
	}

	s := &Server{
		auditor:      auditor,
		cache:        cache,
		opts:         opts,
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		metrics:      NewMetrics(),
		limiter:      NewRateLimiter(opts.RateLimit.RPS, opts.RateLimit.Burst, opts.RateLimit.TTL),
		startTime:    time.Now(),
	}

	logger.Info("api server initialised",
		zap.Int("games", auditor.Catalog().Len()),
		zap.Int("default_plays", opts.DefaultPlays),
		zap.Duration("cache_ttl", opts.CacheTTL),
		zap.Bool("rate_limited", s.limiter != nil),
	)
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.RequestLoggingMiddleware)
	r.Use(s.metrics.Middleware)
	r.Use(s.errorHandler.RecoveryHandler)
	if s.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))
	}
	r.Use(corsHandler(s.opts.CORS.AllowedOrigins, s.opts.CORS.FallbackOrigin, s.opts.CORS.MaxAge))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler.HandleError(w, r, http.StatusNotFound, ErrTypeNotFound, "Not found")
	})
	r.MethodNotAllowed(s.handleMethodNotAllowed)
	r.Options("/*", handleOptions)

	// Health and monitoring endpoints
	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)
		r.Options("/*", handleOptions)
		r.Get("/version", s.handleVersion)
		r.Get("/audit/games", s.handleListGames)
		r.Get("/audit/edge-cases", s.handleEdgeCases)
	})

	return r
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, OPTIONS")
	s.errorHandler.HandleAuditError(w, r, http.StatusMethodNotAllowed, ErrTypeMethodNotAllowed, AuditError{Error: "Method not allowed"}, nil)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}

// handleOptions answers OPTIONS requests that are not CORS preflights.
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Start binds addr and serves in a goroutine. It returns once the socket is
// bound, reporting the bound address.
func (s *Server) Start(addr string) (net.Addr, error) {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
