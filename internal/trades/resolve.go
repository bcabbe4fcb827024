// Package trades turns trade events into line geometry between an agent and
// the market it traded at.
package trades

import (
	"errors"
	"fmt"

	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/orbit"
)

var (
	ErrGroupSize   = errors.New("agents per group must be positive")
	ErrAgentID     = errors.New("negative agent id")
	ErrGroupRange  = errors.New("group out of range")
	ErrAgentRange  = errors.New("agent out of range")
	ErrMarketRange = errors.New("market out of range")
)

// Line is a transient trade line from an agent to the market it traded at.
type Line struct {
	From     orbit.Vec3   `json:"from"`
	To       orbit.Vec3   `json:"to"`
	Side     dataset.Side `json:"side"`
	AgentID  int          `json:"agent_id"`
	MarketID int          `json:"market_id"`
}

// Resolver turns trade events into line geometry.
type Resolver struct {
	// PerGroup is the fixed group size used to split flat agent ids.
	PerGroup int
}

// Locate splits a flat agent id into (group, index within group).
func (r Resolver) Locate(agentID int) (group, local int, err error) {
	if r.PerGroup <= 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrGroupSize, r.PerGroup)
	}
	if agentID < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrAgentID, agentID)
	}
	return agentID / r.PerGroup, agentID % r.PerGroup, nil
}

// Resolve returns the line for ev given the current agent positions of every
// group and the current market positions. Any id outside those bounds is an
// error; no geometry is produced for it.
func (r Resolver) Resolve(ev dataset.TradeEvent, groups [][]orbit.Vec3, markets []orbit.Vec3) (Line, error) {
	group, local, err := r.Locate(ev.AgentID)
	if err != nil {
		return Line{}, err
	}
	if group >= len(groups) {
		return Line{}, fmt.Errorf("%w: agent %d maps to group %d of %d", ErrGroupRange, ev.AgentID, group, len(groups))
	}
	if local >= len(groups[group]) {
		return Line{}, fmt.Errorf("%w: agent %d maps to index %d of group %d (%d agents)", ErrAgentRange, ev.AgentID, local, group, len(groups[group]))
	}
	if ev.MarketID < 0 || ev.MarketID >= len(markets) {
		return Line{}, fmt.Errorf("%w: market %d of %d", ErrMarketRange, ev.MarketID, len(markets))
	}

	return Line{
		From:     groups[group][local],
		To:       markets[ev.MarketID],
		Side:     ev.Side,
		AgentID:  ev.AgentID,
		MarketID: ev.MarketID,
	}, nil
}

// Result is the outcome of resolving one event.
type Result struct {
	Event dataset.TradeEvent
	Line  Line
	Err   error
}

// ResolveAll resolves every event independently; a bad event never affects the others.
func (r Resolver) ResolveAll(events []dataset.TradeEvent, groups [][]orbit.Vec3, markets []orbit.Vec3) []Result {
	out := make([]Result, len(events))
	for i, ev := range events {
		line, err := r.Resolve(ev, groups, markets)
		out[i] = Result{Event: ev, Line: line, Err: err}
	}
	return out
}
