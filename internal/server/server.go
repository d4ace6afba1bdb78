package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/live"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/services"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/cache"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
	"github.com/FACorreiaa/go-sportsmeet/internal/routes"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	router  http.Handler
	backend *backend.Client
	caches  *cache.CacheManager
	catalog *services.CatalogService
	hub     *live.Hub
	feed    *live.Feed

	stopFeed context.CancelFunc
	feedDone chan struct{}
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		backend: backend.New(cfg.Backend, logger.Named("backend")),
		caches:  cache.NewCacheManager(logger.Named("cache")),
		hub:     live.NewHub(logger.Named("live")),
	}
	s.catalog = services.NewCatalogService(s.backend, s.caches, logger.Named("catalog"))

	s.feed = live.NewFeed(cfg.Backend.LiveURL, s.hub, logger.Named("feed"))
	// scores and fixtures in the cached schedule go stale with every event
	s.feed.OnEvent(func(live.Event) { s.caches.Schedule.Clear() })

	logger.Info("Backend configured",
		zap.String("base_url", cfg.Backend.BaseURL),
		zap.String("live_url", cfg.Backend.LiveURL),
		zap.Duration("timeout", cfg.Backend.Timeout))
	return s, nil
}

// Dependencies is what the routes need from the server.
func (s *Server) Dependencies() routes.Dependencies {
	return routes.Dependencies{
		Config:  s.cfg,
		Logger:  s.logger,
		Backend: s.backend,
		Catalog: s.catalog,
		Hub:     s.hub,
	}
}

// StartLiveFeed relays backend live events in the background until
// StopLiveFeed is called.
func (s *Server) StartLiveFeed() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopFeed = cancel
	s.feedDone = make(chan struct{})
	go func() {
		defer close(s.feedDone)
		if err := s.feed.Run(ctx); err != nil {
			s.logger.Error("Live feed stopped", zap.Error(err))
		}
	}()
}

// StopLiveFeed cancels the feed and waits for it to exit.
func (s *Server) StopLiveFeed() {
	if s.stopFeed == nil {
		return
	}
	s.stopFeed()
	<-s.feedDone
	s.logger.Info("Live feed stopped")
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.cfg.ServerPort,
		Handler:           s.router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

func (s *Server) GetConfig() *config.Config {
	return s.cfg
}

// Close disconnects live clients with a close frame. Hijacked websocket
// connections are invisible to http.Server.Shutdown.
func (s *Server) Close() {
	s.hub.Close()
}
