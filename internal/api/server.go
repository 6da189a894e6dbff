// Package api exposes the trajectory engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ohitsming/guapital-sub001/internal/cache"
	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/config"
	"github.com/ohitsming/guapital-sub001/internal/store"
	"github.com/sirupsen/logrus"
)

// SnapshotStore is the persistence the snapshot endpoints need
type SnapshotStore interface {
	UpsertSnapshot(ctx context.Context, rec store.Record) (store.Record, error)
	ListSnapshots(ctx context.Context, userID string, from, to time.Time) ([]store.Record, error)
	Ping(ctx context.Context) error
}

// Options configures a Server. Store and Cache are optional.
type Options struct {
	Engine *calculation.CalculationEngine
	Store  SnapshotStore
	Cache  cache.Cache
	Logger logrus.FieldLogger
	// RateLimit is requests per minute per client; zero disables limiting
	RateLimit int
}

// Server routes API requests to the engine
type Server struct {
	engine  *calculation.CalculationEngine
	store   SnapshotStore
	cache   cache.Cache
	logger  logrus.FieldLogger
	parser  *config.InputParser
	limiter *RateLimiter
	router  *mux.Router
	now     func() time.Time
}

// NewServer builds the router. Call Close to stop the rate limiter.
func NewServer(opts Options) *Server {
	s := &Server{
		engine: opts.Engine,
		store:  opts.Store,
		cache:  opts.Cache,
		logger: opts.Logger,
		parser: config.NewInputParser(),
		now:    time.Now,
	}
	if s.engine == nil {
		s.engine = calculation.NewCalculationEngine()
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		s.logger = l
	}
	if opts.RateLimit > 0 {
		s.limiter = NewRateLimiter(opts.RateLimit, time.Minute)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(s.logger))
	r.HandleFunc("/healthz", s.health).Methods("GET")

	// v1 routes live on the root router so a method mismatch reaches
	// MethodNotAllowedHandler; a subrouter would report it as not found
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if s.limiter != nil {
		mw := RateLimitMiddleware(s.limiter)
		limit = func(h http.HandlerFunc) http.Handler { return mw(h) }
	}
	r.Handle("/v1/trajectory", limit(s.trajectory)).Methods("POST")
	r.Handle("/v1/projection", limit(s.projection)).Methods("POST")
	r.Handle("/v1/fire", limit(s.fire)).Methods("POST")
	r.Handle("/v1/scenarios", limit(s.scenarios)).Methods("POST")
	r.Handle("/v1/milestones", limit(s.milestones)).Methods("POST")
	r.Handle("/v1/amortization", limit(s.amortization)).Methods("POST")
	r.Handle("/v1/simulate", limit(s.simulate)).Methods("POST")
	r.Handle("/v1/snapshots", limit(s.saveSnapshot)).Methods("PUT")
	r.Handle("/v1/snapshots/{userID}", limit(s.listSnapshots)).Methods("GET")

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Infof("API listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server exited")
	return nil
}
