// Package server serves the preview pages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/floatplane/mitsuqtt-preview/internal/config"
	"github.com/floatplane/mitsuqtt-preview/internal/metrics"
	"github.com/floatplane/mitsuqtt-preview/internal/routes"
	"github.com/floatplane/mitsuqtt-preview/internal/templates"
)

// NotFoundBody is written with every 404.
const NotFoundBody = "not found"

// Server answers every request by resolving its path through a route table.
type Server struct {
	cfg      *config.Config
	table    *routes.Table
	renderer *templates.Renderer
	logger   *slog.Logger
	metrics  *metrics.ServeMetrics
	hub      *reloadHub
}

// New creates a Server. The renderer's store also provides the stylesheet.
func New(cfg *config.Config, table *routes.Table, renderer *templates.Renderer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		table:    table,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics.NewServeMetrics(),
		hub:      newReloadHub(),
	}
}

// Metrics returns the server's request counters.
func (s *Server) Metrics() *metrics.ServeMetrics {
	return s.metrics
}

// Handler returns the HTTP handler. Only the URL path is inspected: the
// method and query string never affect routing.
func (s *Server) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(s.serve)
	if s.cfg.Gzip {
		// pages are small; compress regardless of size
		wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(0))
		if err != nil {
			s.logger.Warn("gzip disabled", "error", err)
			return h
		}
		h = wrap(h)
	}
	return h
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if s.cfg.LiveReload && path == liveReloadPath {
		s.hub.handleSSE(w, r)
		return
	}

	action := s.table.Resolve(path)
	switch action.Kind {
	case routes.KindStatic:
		s.serveStatic(w, r, action.File)
	case routes.KindRender:
		s.serveRender(w, action.View, action.Context)
	default:
		s.metrics.RecordNotFound()
		s.logger.Debug("no route", "method", r.Method, "path", path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(NotFoundBody))
	}
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, file string) {
	data, err := s.renderer.Store().Static(file)
	if err != nil {
		s.fail(w, "read static file", err, "file", file)
		return
	}
	s.metrics.RecordStatic()

	etag := contentETag(data)
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) serveRender(w http.ResponseWriter, view string, ctx templates.Context) {
	start := time.Now()
	body, err := s.renderer.Render(view, ctx)
	if err != nil {
		s.fail(w, "render failed", err, "view", view)
		return
	}
	s.metrics.RecordRender(time.Since(start))

	if s.cfg.LiveReload {
		body = injectReloadScript(body)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error, attrs ...any) {
	s.metrics.RecordFailure()
	s.logger.Error(msg, append(attrs, "error", err)...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully:
// no new connections are accepted, in-flight requests finish and ln is
// released. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var watcher *templateWatcher
	if s.cfg.LiveReload {
		w, err := startWatcher(s.cfg.FrontendDir, s.cfg.DebounceDuration, s.hub.broadcast, s.logger)
		if err != nil {
			s.logger.Warn("live reload disabled", "dir", s.cfg.FrontendDir, "error", err)
		} else {
			watcher = w
		}
	}
	stopWatcher := func() {
		if watcher != nil {
			watcher.Close()
			watcher = nil
		}
	}
	defer stopWatcher()

	httpServer := &http.Server{Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	s.logger.Info("serving preview", "url", "http://"+ln.Addr().String(), "frontend", s.cfg.FrontendDir,
		"routes", s.table.Len(), "liveReload", s.cfg.LiveReload)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	// no reload may be broadcast once the hub is closed
	stopWatcher()
	s.hub.close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	s.logger.Info("server stopped", "summary", s.metrics.Snapshot().String())
	return nil
}
