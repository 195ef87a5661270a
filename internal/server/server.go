package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	healthTimeout   = 2 * time.Second
	headerTimeout   = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// HealthChecker reports whether the dataset source behind the server can be read.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server exposes the sift HTTP surface on a gin engine.
type Server struct {
	Engine  *gin.Engine
	Addr    string
	checker HealthChecker
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Detail string `json:"detail,omitempty"`
}

// New builds a server listening on addr. mode "debug" enables gin's debug
// output; anything else runs in release mode. checker may be nil.
func New(addr, mode string, checker HealthChecker) *Server {
	if mode == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Engine:  gin.Default(),
		Addr:    addr,
		checker: checker,
	}
	s.Engine.GET("/health", s.health)
	return s
}

func (s *Server) health(c *gin.Context) {
	if s.checker == nil {
		c.JSON(http.StatusOK, Health{Status: "ok", Source: "none"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()
	if err := s.checker.Ping(ctx); err != nil {
		slog.Warn("Dataset source did not answer health check", "error", err)
		c.JSON(http.StatusServiceUnavailable, Health{
			Status: "degraded",
			Source: "unreadable",
			Detail: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, Health{Status: "ok", Source: "readable"})
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: headerTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		slog.Info("Draining sift API", "address", s.Addr)
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			slog.Error("Sift API did not drain in time", "error", err)
		}
	}()

	slog.Info("Sift API listening", "address", s.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
