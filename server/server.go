// Package server exposes the knowledge-graph engine over HTTP and
// WebSocket. It owns everything the core does not: JSON encoding, parameter
// validation, limit clamping, wall-clock budgets, and live refresh
// broadcasts when the underlying data changes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/astraldata/biograph/config"
	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/graph"
	"github.com/astraldata/biograph/osdr"
)

// Server serves graph queries and pushes rebuild notifications to
// WebSocket clients.
type Server struct {
	cfg    config.ServerConfig
	engine *Engine
	finder *graph.PathFinder
	store  *osdr.Store
	logger *zap.SugaredLogger

	httpServer *http.Server

	mu      sync.RWMutex
	clients map[*Client]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a server wired to the given engine and store.
func New(cfg config.ServerConfig, pathsCfg config.PathsConfig, engine *Engine, store *osdr.Store, logger *zap.SugaredLogger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:     cfg,
		engine:  engine,
		finder:  graph.NewPathFinder(pathsCfg.MaxExplored, logger),
		store:   store,
		logger:  logger.Named("server"),
		clients: make(map[*Client]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/graph", s.HandleGraph)
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/paths", s.HandlePaths)
	mux.HandleFunc("GET /api/clusters", s.HandleClusters)
	mux.HandleFunc("GET /ws", s.HandleWebSocket)
	mux.HandleFunc("GET /healthz", s.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.withRequestLogging(mux)
}

// Run starts the HTTP server and the data-directory watcher, blocking until
// the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Rebuild and broadcast when the fetch pipeline refreshes the data dir
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.store.Watch(s.ctx, s.broadcastGraphRefresh); err != nil {
			s.logger.Warnw("Data watcher stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("Server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.cancel()
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops the listener, disconnects clients, and waits for
// background goroutines.
func (s *Server) Shutdown() error {
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(shutdownCtx)
	}

	s.mu.Lock()
	for client := range s.clients {
		client.close()
	}
	s.clients = make(map[*Client]struct{})
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Infow("Server stopped")
	return err
}
