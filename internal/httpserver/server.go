// Package httpserver exposes a small read-only HTTP API on localhost so
// scripts can check that the dashboard is alive and read its click count.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

// DefaultAddr is used when NewServer receives an empty address.
const DefaultAddr = "127.0.0.1:3000"

// AccountStore is the narrow store contract required by the HTTP API.
type AccountStore interface {
	UserCount(ctx context.Context) (int64, error)
	SchemaVersion(ctx context.Context) (int, error)
}

// Server provides the local HTTP API.
type Server struct {
	addr      string
	store     AccountStore
	clicks    model.ClickCounter
	log       zerolog.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, store AccountStore, clicks model.ClickCounter, log zerolog.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		clicks: clicks,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/clicks", s.handleClicks)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	s.log.Info().Str("addr", listener.Addr().String()).Msg("local api listening")

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("local api stopped")
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := s.store.UserCount(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("health: count users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}
	schema, err := s.store.SchemaVersion(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("health: schema version")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
		"clicks": s.clicks.Value(),
		"users":  users,
		"schema": schema,
	})
}

func (s *Server) handleClicks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clicks": s.clicks.Value()})
}
