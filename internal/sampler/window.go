// Package sampler cuts fixed-length windows out of a price series.
//
// A window always has exactly the requested number of slots. Before enough
// history exists the window is left-padded with gaps, so a chart can draw a
// constant-length series and treat gaps as breaks in the line.
package sampler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zappabad/pamsview/internal/dataset"
)

var (
	ErrWindowSize = errors.New("window size must be positive")
	ErrTickRange  = errors.New("tick outside series")
)

// Value is one chart slot: a reading or a gap.
type Value struct {
	V  float64
	OK bool
}

// Gap is the no-value marker.
var Gap = Value{}

// Some wraps a reading.
func Some(v float64) Value {
	return Value{V: v, OK: true}
}

// MarshalJSON encodes a gap as null and a reading as a number.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.V, 'g', -1, 64), nil
}

// UnmarshalJSON decodes null as a gap.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Gap
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	*v = Some(f)
	return nil
}

// Window returns the last size samples ending at tick (inclusive), oldest
// first. Slots before the start of the series are nil.
func Window(tick, size int, series dataset.Series) ([]dataset.Sample, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrWindowSize, size)
	}
	if tick < 0 || tick >= len(series) {
		return nil, fmt.Errorf("%w: tick %d, length %d", ErrTickRange, tick, len(series))
	}

	out := make([]dataset.Sample, size)
	first := tick - size + 1
	for i := range out {
		if src := first + i; src >= 0 {
			out[i] = series[src]
		}
	}
	return out, nil
}

// Channel projects one channel out of a window. Nil samples and samples too
// short to hold ch become gaps.
func Channel(window []dataset.Sample, ch int) []Value {
	out := make([]Value, len(window))
	for i, s := range window {
		if ch >= 0 && ch < len(s) {
			out[i] = Some(s[ch])
		}
	}
	return out
}

// Channels projects every channel of a window; the result is indexed [channel][slot].
func Channels(window []dataset.Sample, arity int) [][]Value {
	out := make([][]Value, arity)
	for ch := range out {
		out[ch] = Channel(window, ch)
	}
	return out
}

// Labels returns x-axis labels for the slots of Window(tick, size, ...).
// Labels are tick numbers zero-padded to three digits; padded slots read "000".
func Labels(tick, size int) []string {
	if size <= 0 {
		return nil
	}
	out := make([]string, size)
	first := tick - size + 1
	for i := range out {
		n := max(0, first+i)
		out[i] = fmt.Sprintf("%03d", n)
	}
	return out
}
