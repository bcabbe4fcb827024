package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/internal/session"
)

// StreamConfig tunes one websocket frame stream.
type StreamConfig struct {
	Refresh      time.Duration // frame interval
	WriteTimeout time.Duration
	KeyBuffer    int // inbound key queue; keys beyond it are dropped
}

func (c StreamConfig) withDefaults() StreamConfig {
	if c.Refresh <= 0 {
		c.Refresh = 100 * time.Millisecond
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	if c.KeyBuffer <= 0 {
		c.KeyBuffer = 16
	}
	return c
}

// keyMessage is what clients send: {"key":"p"}.
type keyMessage struct {
	Key string `json:"key"`
}

// frameMessage is what the server sends on every refresh.
type frameMessage struct {
	Session string      `json:"session"`
	Info    bool        `json:"info"`
	Frame   scene.Frame `json:"frame"`
}

// stream owns one connection's session. Only the write loop touches the
// session and builder; the read loop hands keys over through keys.
type stream struct {
	cfg     StreamConfig
	conn    *websocket.Conn
	sess    *session.Session
	builder *scene.Builder
	keys    chan string
	logger  *slog.Logger

	droppedKeys atomic.Int64
}

func newStream(cfg StreamConfig, conn *websocket.Conn, sess *session.Session, builder *scene.Builder, logger *slog.Logger) *stream {
	cfg = cfg.withDefaults()
	return &stream{
		cfg:     cfg,
		conn:    conn,
		sess:    sess,
		builder: builder,
		keys:    make(chan string, cfg.KeyBuffer),
		logger:  logger,
	}
}

// DroppedKeys returns how many keys were discarded because the queue was full.
func (s *stream) DroppedKeys() int64 { return s.droppedKeys.Load() }

// run streams frames until ctx is done, the client goes away or a write fails.
func (s *stream) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		s.readLoop(ctx)
	}()

	err := s.writeLoop(ctx)
	cancel()

	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.conn.Close()
	wg.Wait()
	return err
}

func (s *stream) readLoop(ctx context.Context) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				s.logger.Debug("websocket read failed", "error", err)
			}
			return
		}

		var msg keyMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("ignoring malformed client message", "error", err)
			continue
		}

		select {
		case s.keys <- msg.Key:
		case <-ctx.Done():
			return
		default:
			s.droppedKeys.Add(1)
		}
	}
}

func (s *stream) writeLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Refresh)
	defer ticker.Stop()

	if err := s.push(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-s.keys:
			cmd := s.sess.HandleKey(key)
			if cmd == session.CmdNone {
				continue
			}
			s.logger.Debug("key handled", "key", key, "command", cmd)
			if err := s.push(); err != nil {
				return err
			}
		case <-ticker.C:
			if err := s.push(); err != nil {
				return err
			}
		}
	}
}

// push builds and writes one frame. A frame that cannot be built is skipped;
// only write failures end the stream.
func (s *stream) push() error {
	frame, err := s.builder.Build(s.sess)
	if err != nil {
		s.logger.Error("frame build failed", "error", err)
		return nil
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteJSON(frameMessage{
		Session: s.sess.ID(),
		Info:    s.sess.Info(),
		Frame:   frame,
	}); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	}
	return nil
}
