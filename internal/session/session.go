// Package session holds the playback state of one viewer.
package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/playback"
)

// Command is the effect a key had on the session.
type Command int

const (
	CmdNone Command = iota
	CmdSelect
	CmdTogglePause
	CmdRestart
	CmdToggleInfo
)

func (c Command) String() string {
	switch c {
	case CmdSelect:
		return "select"
	case CmdTogglePause:
		return "toggle-pause"
	case CmdRestart:
		return "restart"
	case CmdToggleInfo:
		return "toggle-info"
	default:
		return "none"
	}
}

// Session is one viewer's playback state: the selected dataset, the clock and
// the info overlay flag. It is not safe for concurrent use.
type Session struct {
	id      string
	store   *dataset.Store
	clock   *playback.Clock
	current *dataset.Dataset
	info    bool
	logger  *slog.Logger
}

// New creates a session showing the store's default dataset. A nil clock
// starts a fresh one; a nil logger uses slog.Default().
func New(store *dataset.Store, clock *playback.Clock, logger *slog.Logger) *Session {
	if clock == nil {
		clock = playback.NewClock(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		id:    uuid.NewString(),
		store: store,
		clock: clock,
	}
	s.logger = logger.With("session", s.id)
	s.current, _ = store.Resolve(store.Fallback())
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Dataset returns the selected dataset.
func (s *Session) Dataset() *dataset.Dataset {
	return s.current
}

// Elapsed returns the playback time.
func (s *Session) Elapsed() time.Duration {
	return s.clock.Time()
}

// Running reports whether playback is advancing.
func (s *Session) Running() bool {
	return s.clock.Running()
}

// Info reports whether the info overlay is shown.
func (s *Session) Info() bool {
	return s.info
}

// Select switches to dataset id and restarts playback. Unknown ids select the
// default dataset.
func (s *Session) Select(id dataset.ID) {
	d, ok := s.store.Resolve(id)
	if !ok {
		s.logger.Warn("unknown dataset, using default", "requested", id, "default", d.ID)
	}
	s.current = d
	s.clock.Restart()
	s.logger.Info("dataset selected", "dataset", d.ID, "name", d.Name)
}

// HandleKey applies a key press and returns what it did. Unrecognised keys
// are ignored.
func (s *Session) HandleKey(key string) Command {
	switch key {
	case "1":
		s.Select(1)
		return CmdSelect
	case "2":
		s.Select(2)
		return CmdSelect
	case "p":
		s.clock.Toggle()
		return CmdTogglePause
	case "r":
		s.clock.Restart()
		return CmdRestart
	case "i":
		s.info = !s.info
		return CmdToggleInfo
	default:
		return CmdNone
	}
}
