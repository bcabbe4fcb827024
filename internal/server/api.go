package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zappabad/pamsview/internal/config"
	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/scene"
)

// Layout:
// - api.go: Server, routes and lifecycle (this file)
// - handler.go: HTTP handlers
// - middleware.go: middleware
// - stream.go: per-connection frame stream
// - page.go: embedded viewer page

const (
	ServiceName         = "pamsserve"
	ServiceVersion      = "1.0.0"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// Server serves datasets and streams frames over websockets.
type Server struct {
	cfg      config.ServerConfig
	refresh  time.Duration
	frameCfg scene.FrameConfig
	store    *dataset.Store
	scene    *scene.Scene
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates a server. Each stream samples frames with frameCfg.
// A nil logger uses slog.Default().
func NewServer(cfg *config.Config, frameCfg scene.FrameConfig, store *dataset.Store, sc *scene.Scene, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg.Server,
		refresh:  cfg.Playback.RefreshInterval,
		frameCfg: frameCfg,
		store:    store,
		scene:    sc,
		logger:   logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// SetupRoutes configures all routes.
func (s *Server) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(s.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(s.cfg.AllowedOrigins))

	router.GET("/", s.Index)
	router.GET("/health", s.HealthCheck)
	router.GET("/datasets", s.ListDatasets)
	router.GET("/ws", s.Stream)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.SetupRoutes(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || allowedOrigin(s.cfg.AllowedOrigins, origin) != ""
}
