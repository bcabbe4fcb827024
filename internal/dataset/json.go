package dataset

import (
	"encoding/json"
	"fmt"
	"io"
)

// fileConfig mirrors the "config" object written by the PAMS exporter.
type fileConfig struct {
	Markets  []string `json:"markets"`
	Duration int      `json:"duration"`
	MinPrice float64  `json:"minPrice"`
	MaxPrice float64  `json:"maxPrice"`
}

// fileFormat is the on-disk JSON layout.
// trades[tick][market][side] lists (group, agent) pairs; side 0 is buy, 1 is sell.
type fileFormat struct {
	Duration int            `json:"duration"`
	Config   fileConfig     `json:"config"`
	Prices   [][]float64    `json:"prices"`
	Trades   [][][][][2]int `json:"trades"`
}

// DecodeJSON reads a dataset from its JSON representation.
func DecodeJSON(r io.Reader, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	var f fileFormat
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode dataset json: %w", err)
	}

	duration := f.Duration
	if duration == 0 {
		duration = f.Config.Duration
	}

	prices, err := orientPrices(f.Prices, duration)
	if err != nil {
		return nil, err
	}
	if duration == 0 {
		duration = len(prices)
	}

	d := &Dataset{
		ID:       opts.ID,
		Name:     opts.Name,
		Markets:  f.Config.Markets,
		Duration: duration,
		Bounds:   Bounds{MinPrice: f.Config.MinPrice, MaxPrice: f.Config.MaxPrice},
		Prices:   prices,
		Trades:   flattenTrades(f.Trades, opts.AgentsPerGroup),
	}
	d.computeBounds()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// orientPrices returns the matrix in tick-major order. The exporter writes it
// market-major (prices[market][tick]); viewers written against it expect
// prices[tick][market]. Either is accepted.
func orientPrices(m [][]float64, duration int) (Series, error) {
	if len(m) == 0 {
		return nil, ErrEmptySeries
	}
	if duration == 0 || len(m) == duration {
		out := make(Series, len(m))
		for i, row := range m {
			out[i] = Sample(row)
		}
		return out, nil
	}
	if len(m[0]) != duration {
		return nil, fmt.Errorf("%w: %dx%d matrix, duration %d", ErrPriceShape, len(m), len(m[0]), duration)
	}

	out := make(Series, duration)
	for tick := range out {
		out[tick] = make(Sample, len(m))
	}
	for ch, row := range m {
		if len(row) != duration {
			return nil, fmt.Errorf("%w: market %d has %d ticks, want %d", ErrArity, ch, len(row), duration)
		}
		for tick, v := range row {
			out[tick][ch] = v
		}
	}
	return out, nil
}

// flattenTrades turns the per-tick pair lists into events. A pair outside the
// group layout keeps its slot with InvalidAgent so it is reported downstream.
func flattenTrades(raw [][][][][2]int, perGroup int) [][]TradeEvent {
	out := make([][]TradeEvent, len(raw))
	for tick, markets := range raw {
		var events []TradeEvent
		for mid, sides := range markets {
			for side, pairs := range sides {
				for _, p := range pairs {
					events = append(events, TradeEvent{
						AgentID:  FlatAgentID(p[0], p[1], perGroup),
						MarketID: mid,
						Side:     Side(side),
					})
				}
			}
		}
		out[tick] = events
	}
	return out
}
