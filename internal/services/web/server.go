// Package web hosts the tour site HTTP server.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/balitours/internal/platform/timeouts"
	"github.com/louisbranch/balitours/internal/services/web/app"
	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/modules"
	"github.com/louisbranch/balitours/internal/services/web/platform/httpx"
	"github.com/louisbranch/balitours/internal/services/web/platform/observability"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	"github.com/louisbranch/balitours/internal/services/web/static"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr     string
	Dependencies module.Dependencies
	// Modules overrides the default module set.
	Modules []module.Module
	Logger  *log.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *log.Logger
}

// NewHandler composes modules, static assets, and request middleware.
func NewHandler(config Config) (http.Handler, error) {
	mods := config.Modules
	if mods == nil {
		mods = modules.Default()
	}
	composed, err := app.Compose(app.ComposeInput{
		Dependencies: config.Dependencies,
		Modules:      mods,
	})
	if err != nil {
		return nil, fmt.Errorf("compose web modules: %w", err)
	}

	root := http.NewServeMux()
	root.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	root.Handle(routepath.Root, composed)

	return httpx.Chain(root,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.Tracing(),
		observability.RequestLogger(config.Logger),
	), nil
}

// NewServer builds a web server ready to listen on config.HTTPAddr.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the listener immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		s.logger.Printf("close http server: %v", err)
	}
}
