// Package api serves the inference HTTP API and the embedded web UI.
package api

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tphakala/venomid/frontend"
	mw "github.com/tphakala/venomid/internal/api/middleware"
	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability"
)

// Server wires the Echo instance to an Inferer.
type Server struct {
	echo      *echo.Echo
	settings  *conf.WebServerSettings
	service   Inferer
	metrics   *observability.Metrics
	frontend  fs.FS
	version   string
	startTime time.Time
	log       logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics enables the HTTP metrics middleware and, when serveEndpoint
// is true, GET /metrics on the API listener.
func WithMetrics(m *observability.Metrics, serveEndpoint bool) Option {
	return func(s *Server) {
		s.metrics = m
		if serveEndpoint && m != nil {
			s.echo.GET("/metrics", echo.WrapHandler(m.Handler()))
		}
	}
}

// WithFrontend overrides the UI filesystem.
func WithFrontend(fsys fs.FS) Option {
	return func(s *Server) {
		s.frontend = fsys
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithLogger replaces the module logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New builds a Server. The UI comes from settings.FrontendDir when set,
// otherwise from the embedded build.
func New(settings *conf.WebServerSettings, service Inferer, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		settings:  settings,
		service:   service,
		frontend:  frontend.DistFS,
		version:   "dev",
		startTime: time.Now(),
		log:       getLogger(),
	}
	if settings.FrontendDir != "" {
		s.frontend = os.DirFS(settings.FrontendDir)
	}
	for _, opt := range opts {
		opt(s)
	}

	e.HTTPErrorHandler = s.httpErrorHandler
	s.configureMiddleware()
	s.initRoutes()
	return s
}

// configureMiddleware installs the middleware chain. Order matters:
// request IDs must exist before logging, and metrics wrap everything
// below recovery so panics are counted as 500s.
func (s *Server) configureMiddleware() {
	security := mw.DefaultSecurityConfig()
	if len(s.settings.AllowedOrigins) > 0 {
		security.AllowedOrigins = s.settings.AllowedOrigins
	}

	s.echo.Use(mw.NewRequestID())
	if s.metrics != nil {
		s.echo.Use(mw.NewHTTPMetrics(s.metrics.HTTP))
	}
	s.echo.Use(echomw.Recover())
	s.echo.Use(mw.NewRequestLogger(s.log, nil))
	s.echo.Use(mw.NewCORS(security))
	s.echo.Use(mw.NewSecureHeaders(security))
	if s.settings.BodyLimit != "" {
		s.echo.Use(mw.NewBodyLimit(s.settings.BodyLimit))
	}
	s.echo.Use(mw.NewGzip())
	s.echo.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Skipper:    isAPIPath,
		Root:       ".",
		Index:      "index.html",
		HTML5:      true,
		Filesystem: http.FS(s.frontend),
	}))
}

func (s *Server) initRoutes() {
	api := s.echo.Group("/api")
	api.POST("/infer", s.handleInfer)
	api.OPTIONS("/infer", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	s.echo.GET("/health", s.handleHealth)
}

// isAPIPath keeps the SPA fallback away from API, health and metrics
// routes so their 404s stay JSON.
func isAPIPath(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/api/") || p == "/api" || p == "/health" || p == "/metrics"
}

// Handler exposes the Echo instance as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.settings.ListenAddress())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. It shuts down gracefully when ctx
// is cancelled, waiting at most settings.ShutdownTimeout for in-flight
// requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.echo,
		ReadTimeout:       s.settings.ReadTimeout,
		ReadHeaderTimeout: s.settings.ReadTimeout,
		WriteTimeout:      s.settings.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server started", logger.String("address", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.settings.ShutdownTimeout
	if timeout <= 0 {
		timeout = conf.DefaultShutdownTimeout
	}
	s.log.Info("stopping HTTP server", logger.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("HTTP server shutdown error", logger.Error(err))
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
