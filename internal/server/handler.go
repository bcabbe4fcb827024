package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/internal/session"
)

// DatasetInfo describes one dataset in GET /datasets.
type DatasetInfo struct {
	ID       dataset.ID     `json:"id"`
	Name     string         `json:"name"`
	Markets  []string       `json:"markets"`
	Duration int            `json:"duration"`
	Bounds   dataset.Bounds `json:"bounds"`
	Default  bool           `json:"default"`
}

// Index handles GET / with the viewer page.
func (s *Server) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

// HealthCheck handles GET /health requests
func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
		"datasets":  s.store.Len(),
	})
}

// ListDatasets handles GET /datasets requests
func (s *Server) ListDatasets(c *gin.Context) {
	out := make([]DatasetInfo, 0, s.store.Len())
	for _, id := range s.store.IDs() {
		d, err := s.store.Get(id)
		if err != nil {
			s.handleError(c, err, http.StatusInternalServerError, "Internal server error")
			return
		}
		markets := make([]string, d.Channels())
		for ch := range markets {
			markets[ch] = d.MarketName(ch)
		}
		out = append(out, DatasetInfo{
			ID:       d.ID,
			Name:     d.Name,
			Markets:  markets,
			Duration: d.Duration,
			Bounds:   d.Bounds,
			Default:  d.ID == s.store.Fallback(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Stream handles GET /ws: it upgrades the connection and streams frames for a
// fresh session until the client disconnects.
func (s *Server) Stream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed",
			slog.String("request_id", c.GetString(RequestIDContextKey)),
			slog.String("error", err.Error()))
		return
	}

	sess := session.New(s.store, nil, s.logger)
	logger := s.logger.With("session", sess.ID(), "request_id", c.GetString(RequestIDContextKey))
	builder := scene.NewBuilder(s.scene, s.frameCfg, logger)

	logger.Info("stream opened", "client_ip", c.ClientIP())
	st := newStream(StreamConfig{Refresh: s.refresh}, conn, sess, builder, logger)
	if err := st.run(c.Request.Context()); err != nil {
		logger.Warn("stream ended with error", "error", err)
		return
	}
	logger.Info("stream closed", "dropped_keys", st.DroppedKeys())
}

// handleError logs the error and sends appropriate HTTP response
func (s *Server) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID := c.GetString(RequestIDContextKey)
	if requestID == "" {
		requestID = "unknown"
	}

	s.logger.Error("API error",
		slog.String("request_id", requestID),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
		slog.Int("status_code", statusCode),
	)

	c.JSON(statusCode, gin.H{
		"error":      userMessage,
		"request_id": requestID,
	})
}
