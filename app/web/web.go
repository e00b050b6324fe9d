// Package web implements the status API server running next to a download or queue command
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/yourtube/app/history"
	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/stream"
)

//go:generate moq -out mocks/session_provider.go -pkg mocks -skip-ensure -fmt goimports . SessionProvider
//go:generate moq -out mocks/queue_provider.go -pkg mocks -skip-ensure -fmt goimports . QueueProvider
//go:generate moq -out mocks/history_provider.go -pkg mocks -skip-ensure -fmt goimports . HistoryProvider

// SessionProvider gives the state of the tracked job stream
type SessionProvider interface {
	Session() (stream.SessionInfo, bool)
}

// QueueProvider gives access to the polled download queue
type QueueProvider interface {
	Items() []queue.Item
	Active() []string
	RefreshAll(ctx context.Context) ([]queue.Item, error)
	Poll(ctx context.Context, id string) (queue.Item, error)
}

// HistoryProvider reads recorded outcomes
type HistoryProvider interface {
	Streams(ctx context.Context, limit int) ([]history.StreamRecord, error)
	QueueItems(ctx context.Context, limit int) ([]history.QueueRecord, error)
}

// Server represents the status API server
type Server struct {
	sessions     SessionProvider
	queue        QueueProvider
	history      HistoryProvider
	version      string
	hostname     string
	passwordHash string // bcrypt hash for basic auth
	limiter      *limiter.Limiter
	startedAt    time.Time
}

// Config holds server configuration. Providers are optional, endpoints of a missing provider respond with 404.
type Config struct {
	Sessions     SessionProvider
	Queue        QueueProvider
	History      HistoryProvider
	Version      string
	Hostname     string  // hostname reported by the status endpoint
	PasswordHash string  // bcrypt hash for basic auth (empty to disable)
	RateLimit    float64 // max requests per second per client, 10 by default
}

// New creates a new status server
func New(cfg Config) *Server {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	lmt := tollbooth.NewLimiter(cfg.RateLimit, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	return &Server{
		sessions:     cfg.Sessions,
		queue:        cfg.Queue,
		history:      cfg.History,
		version:      cfg.Version,
		hostname:     cfg.Hostname,
		passwordHash: cfg.PasswordHash,
		limiter:      lmt,
		startedAt:    time.Now(),
	}
}

// Run starts the server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting status server on %s", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(100),
		rest.AppInfo("yourtube", "umputun", s.version),
		rest.Ping,
		rest.SizeLimit(16*1024),
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
		tollbooth.HTTPMiddleware(s.limiter),
	)

	if s.passwordHash != "" {
		log.Printf("[INFO] authentication enabled for status api")
		router.Use(s.authMiddleware)
	}

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /status", s.handleStatus)
		api.HandleFunc("GET /session", s.handleSession)
		api.HandleFunc("GET /queue", s.handleQueue)
		api.HandleFunc("POST /queue/refresh", s.handleQueueRefresh)
		api.HandleFunc("POST /queue/{id}/poll", s.handleQueuePoll)
		api.HandleFunc("GET /history", s.handleHistory)
	})

	return router
}

// shortVersion extracts a short version string from full version
// for version like "v1.7.0-abc1234-20241225", returns "v1.7.0"
func shortVersion(fullVer string) string {
	if fullVer == "" || fullVer == "unknown" {
		return fullVer
	}
	if idx := strings.Index(fullVer, "-"); idx > 0 {
		return fullVer[:idx]
	}
	return fullVer
}
