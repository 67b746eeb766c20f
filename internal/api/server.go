// Package api serves the driver contract over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapmeta/internal/api/notifier"
	"github.com/leapstack-labs/leapmeta/internal/tabledef"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// Server is the HTTP API server.
type Server struct {
	registry      *driver.Registry
	logger        *slog.Logger
	port          int
	defsDir       string
	defaultSchema string
	watch         bool
	maxConns      int
	notifier      *notifier.Notifier

	mu     sync.RWMutex
	tables map[string]*core.Table
}

// Config holds configuration for the API server.
type Config struct {
	Registry *driver.Registry
	Logger   *slog.Logger
	Port     int

	// DefsDir is the table definition file or directory served under
	// /api/tables. Empty disables table definitions.
	DefsDir       string
	DefaultSchema string
	Watch         bool

	// MaxConnections caps concurrent connections. Zero means no limit.
	MaxConnections int
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		registry:      cfg.Registry,
		logger:        logger,
		port:          cfg.Port,
		defsDir:       cfg.DefsDir,
		defaultSchema: cfg.DefaultSchema,
		watch:         cfg.Watch,
		maxConns:      cfg.MaxConnections,
		notifier:      notifier.New(),
		tables:        make(map[string]*core.Table),
	}
}

// Handler returns the router with middleware and all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
	)
	s.routes(r)
	return r
}

// Serve loads table definitions and starts the server. It blocks until ctx
// is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	if s.defsDir != "" {
		if err := s.LoadTables(); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}
	s.logger.Info("starting API server", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.defsDir != "" {
		eg.Go(func() error {
			return tabledef.Watch(egctx, s.defsDir, s.defaultSchema, s.logger, s.reloaded)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the notifier that receives reload events.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// LoadTables reads the table definitions from disk and replaces the
// served set.
func (s *Server) LoadTables() error {
	tables, err := tabledef.Load(s.defsDir, s.defaultSchema)
	if err != nil {
		return fmt.Errorf("failed to load table definitions: %w", err)
	}
	s.SetTables(tables)
	return nil
}

// SetTables replaces the served table definitions.
func (s *Server) SetTables(tables []*core.Table) {
	byName := make(map[string]*core.Table, len(tables))
	for _, t := range tables {
		byName[t.QualifiedName()] = t
	}

	s.mu.Lock()
	s.tables = byName
	s.mu.Unlock()
}

// Tables returns the served table definitions sorted by qualified name.
func (s *Server) Tables() []*core.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QualifiedName() < out[j].QualifiedName()
	})
	return out
}

func (s *Server) table(ref string) (*core.Table, bool) {
	schema, name := core.SplitQualifiedName(ref, s.defaultSchema)
	key := (&core.Table{Schema: schema, Name: name}).QualifiedName()

	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[key]
	return t, ok
}

// reloaded keeps the last good definitions when a reload fails.
func (s *Server) reloaded(tables []*core.Table, err error) {
	if err != nil {
		s.logger.Error("table definition reload failed", "error", err)
		s.notifier.Broadcast(notifier.Event{Tables: len(s.Tables()), Error: err.Error()})
		return
	}
	s.SetTables(tables)
	s.logger.Debug("table definitions reloaded", "tables", len(tables))
	s.notifier.Broadcast(notifier.Event{Tables: len(tables)})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
