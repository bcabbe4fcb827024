// Package dataset loads precomputed simulation runs and serves them by id.
package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries   = errors.New("dataset has no samples")
	ErrArity         = errors.New("sample arity mismatch")
	ErrDuration      = errors.New("duration does not match price series")
	ErrPriceShape    = errors.New("price matrix matches neither tick-major nor market-major layout")
	ErrUnknownFormat = errors.New("unknown dataset format")
)

// ID identifies a dataset in the store.
type ID int

// Sample holds one reading per channel (market) for a single tick.
type Sample []float64

// Series is an ordered sequence of samples indexed by simulation tick.
type Series []Sample

// Arity returns the channel count of the series, 0 when empty.
func (s Series) Arity() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Side is the direction of a trade event.
type Side int

const (
	SideBuy  Side = 0
	SideSell Side = 1
)

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// TradeEvent records that an agent transacted at a market on some tick.
// AgentID is flat: group*agentsPerGroup + index within the group.
type TradeEvent struct {
	AgentID  int  `json:"agent_id"`
	MarketID int  `json:"market_id"`
	Side     Side `json:"side"`
}

// Bounds are the display bounds of the price axis.
type Bounds struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

// Dataset is one loaded simulation run. Read-only after loading.
type Dataset struct {
	ID       ID
	Name     string
	Markets  []string
	Duration int
	Bounds   Bounds
	Prices   Series
	// Trades[tick] lists the trade events of that tick.
	Trades [][]TradeEvent
}

// TradesAt returns the trade events of a tick; nil when the tick has none.
func (d *Dataset) TradesAt(tick int) []TradeEvent {
	if tick < 0 || tick >= len(d.Trades) {
		return nil
	}
	return d.Trades[tick]
}

// Channels returns the number of price channels.
func (d *Dataset) Channels() int {
	return d.Prices.Arity()
}

// MarketName returns the display name of channel ch.
func (d *Dataset) MarketName(ch int) string {
	if ch >= 0 && ch < len(d.Markets) && d.Markets[ch] != "" {
		return d.Markets[ch]
	}
	return fmt.Sprintf("Market %02d", ch+1)
}

// Validate checks the structural invariants every consumer relies on.
func (d *Dataset) Validate() error {
	if len(d.Prices) == 0 {
		return ErrEmptySeries
	}
	if d.Duration != len(d.Prices) {
		return fmt.Errorf("%w: duration %d, %d samples", ErrDuration, d.Duration, len(d.Prices))
	}
	arity := d.Prices.Arity()
	for tick, s := range d.Prices {
		if len(s) != arity {
			return fmt.Errorf("%w: tick %d has %d channels, want %d", ErrArity, tick, len(s), arity)
		}
	}
	return nil
}

// computeBounds fills zero bounds from the price series.
func (d *Dataset) computeBounds() {
	if d.Bounds.MinPrice != 0 || d.Bounds.MaxPrice != 0 {
		return
	}
	first := true
	for _, s := range d.Prices {
		for _, v := range s {
			if first {
				d.Bounds.MinPrice, d.Bounds.MaxPrice = v, v
				first = false
				continue
			}
			if v < d.Bounds.MinPrice {
				d.Bounds.MinPrice = v
			}
			if v > d.Bounds.MaxPrice {
				d.Bounds.MaxPrice = v
			}
		}
	}
}
