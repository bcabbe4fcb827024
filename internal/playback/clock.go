// Package playback tracks elapsed playback time and maps it onto simulation
// ticks.
package playback

import (
	"math"
	"time"
)

// Clock tracks elapsed playback time. It starts running at zero.
// Time only advances while running; pausing freezes it and resuming
// continues from the frozen value.
type Clock struct {
	now     func() time.Time
	start   time.Time
	base    time.Duration
	running bool
}

// NewClock creates a running clock. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now:     now,
		start:   now(),
		running: true,
	}
}

// Time returns the elapsed playback time.
func (c *Clock) Time() time.Duration {
	if !c.running {
		return c.base
	}
	return c.base + c.now().Sub(c.start)
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool {
	return c.running
}

// Pause freezes the clock. No-op when already paused.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	c.base = c.Time()
	c.running = false
}

// Resume continues counting from the paused value. No-op when running.
func (c *Clock) Resume() {
	if c.running {
		return
	}
	c.start = c.now()
	c.running = true
}

// Toggle pauses a running clock and resumes a paused one.
func (c *Clock) Toggle() {
	if c.running {
		c.Pause()
	} else {
		c.Resume()
	}
}

// Restart resets the elapsed time to zero and starts running.
func (c *Clock) Restart() {
	c.base = 0
	c.start = c.now()
	c.running = true
}

// Tick maps elapsed time to a simulation tick: round(seconds*rate) mod duration.
// The result is always in [0, duration); 0 when duration is not positive.
func Tick(elapsed time.Duration, rate float64, duration int) int {
	if duration <= 0 {
		return 0
	}
	t := int64(math.Round(elapsed.Seconds()*rate)) % int64(duration)
	if t < 0 {
		t += int64(duration)
	}
	return int(t)
}
