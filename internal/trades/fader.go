package trades

import "time"

// DefaultTTL is how long a trade line stays visible after it is drawn.
const DefaultTTL = 300 * time.Millisecond

type fading struct {
	line  Line
	until time.Time
}

// Fader keeps lines visible for a fixed time after they are added.
// Lines expire in insertion order, so the live set is a queue.
type Fader struct {
	ttl   time.Duration
	lines []fading
}

// NewFader creates a fader. A non-positive ttl uses DefaultTTL.
func NewFader(ttl time.Duration) *Fader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Fader{ttl: ttl}
}

// TTL returns the visibility duration.
func (f *Fader) TTL() time.Duration {
	return f.ttl
}

// Add makes lines visible from now until now+TTL.
func (f *Fader) Add(now time.Time, lines ...Line) {
	until := now.Add(f.ttl)
	for _, l := range lines {
		f.lines = append(f.lines, fading{line: l, until: until})
	}
}

// Visible drops expired lines and returns a copy of the rest, oldest first.
func (f *Fader) Visible(now time.Time) []Line {
	drop := 0
	for drop < len(f.lines) && !now.Before(f.lines[drop].until) {
		drop++
	}
	if drop > 0 {
		f.lines = append(f.lines[:0], f.lines[drop:]...)
	}

	out := make([]Line, len(f.lines))
	for i, fl := range f.lines {
		out[i] = fl.line
	}
	return out
}

// Len returns the number of lines not yet pruned.
func (f *Fader) Len() int {
	return len(f.lines)
}

// Reset hides every line.
func (f *Fader) Reset() {
	f.lines = f.lines[:0]
}
