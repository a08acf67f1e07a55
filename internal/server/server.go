package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/mindweave/internal/logger"
	"github.com/alexanderramin/mindweave/internal/metrics"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the HTTP layer needs. Metrics and Now are
// optional.
type Deps struct {
	Plans   service.PlanService
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	Version string
	Now     func() time.Time
}

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

// New builds the router with request IDs, access logs, request metrics and
// panic recovery.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(metrics.GinMiddleware(deps.Metrics))

	h := &handler{plans: deps.Plans, logger: deps.Logger, version: deps.Version, now: deps.Now}

	api := r.Group("/api")
	api.GET("/health", h.health)
	api.POST("/planner", h.planner)
	api.POST("/plans", h.savePlan)
	api.GET("/plans", h.listPlans)
	api.GET("/plans/:id", h.getPlan)
	api.DELETE("/plans/:id", h.deletePlan)

	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	return &Server{router: r, logger: deps.Logger}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
