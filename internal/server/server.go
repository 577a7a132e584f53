// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the discovery core over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zagdt/e-library-backend-sub001/internal/discovery"
	"github.com/zagdt/e-library-backend-sub001/internal/searchlog"
	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// Server wires the aggregator and registry behind the HTTP boundary.
type Server struct {
	cfg        types.ServerConfig
	log        *zap.Logger
	aggregator *discovery.Aggregator
	registry   *discovery.Registry
	audit      *searchlog.Store
	httpServer *http.Server
}

// New builds the server. audit may be nil to disable search logging.
func New(cfg types.ServerConfig, agg *discovery.Aggregator, reg *discovery.Registry, audit *searchlog.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		cfg:        cfg,
		log:        log,
		aggregator: agg,
		registry:   reg,
		audit:      audit,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	router.GET("/health", s.handleHealth)
	router.GET("/discovery/search", s.handleSearch)
	router.GET("/discovery/sources", s.handleSources)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: router,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return <-errCh
}

// requestLogger logs one line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
