package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tickMajorJSON = `{
  "duration": 3,
  "config": {"markets": ["SpotMarket-1", "SpotMarket-2"], "minPrice": 280, "maxPrice": 320},
  "prices": [[300, 301], [299, 302], [298, 303]],
  "trades": [
    [[[[0, 1]], []], [[], [[1, 250]]]],
    [[[], []], [[], []]],
    [[[[3, 499]], [[2, 0]]], [[], []]]
  ]
}`

// Market-major prices and the duration inside config, as the exporter writes them.
const marketMajorJSON = `{
  "config": {"markets": ["A", "B"], "duration": 4},
  "prices": [[1, 2, 3, 4], [10, 20, 30, 40]],
  "trades": []
}`

func TestDecodeJSONTickMajor(t *testing.T) {
	d, err := DecodeJSON(strings.NewReader(tickMajorJSON), Options{ID: 1, Name: "one"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Duration != 3 {
		t.Errorf("expected duration 3, got %d", d.Duration)
	}
	if d.Channels() != 2 {
		t.Errorf("expected 2 channels, got %d", d.Channels())
	}
	if d.Prices[1][1] != 302 {
		t.Errorf("expected prices[1][1] = 302, got %v", d.Prices[1][1])
	}
	if d.Bounds.MinPrice != 280 || d.Bounds.MaxPrice != 320 {
		t.Errorf("unexpected bounds %+v", d.Bounds)
	}
	if d.MarketName(0) != "SpotMarket-1" {
		t.Errorf("expected market name SpotMarket-1, got %q", d.MarketName(0))
	}
	if d.MarketName(5) != "Market 06" {
		t.Errorf("expected generated name Market 06, got %q", d.MarketName(5))
	}

	tick0 := d.TradesAt(0)
	if len(tick0) != 2 {
		t.Fatalf("expected 2 trades at tick 0, got %d", len(tick0))
	}
	if tick0[0] != (TradeEvent{AgentID: 1, MarketID: 0, Side: SideBuy}) {
		t.Errorf("unexpected first trade %+v", tick0[0])
	}
	if tick0[1] != (TradeEvent{AgentID: 750, MarketID: 1, Side: SideSell}) {
		t.Errorf("unexpected second trade %+v", tick0[1])
	}

	tick2 := d.TradesAt(2)
	if len(tick2) != 2 || tick2[0].AgentID != 1999 || tick2[1].AgentID != 1000 {
		t.Errorf("unexpected tick 2 trades %+v", tick2)
	}

	if d.TradesAt(1) != nil {
		t.Errorf("expected no trades at tick 1, got %+v", d.TradesAt(1))
	}
	if d.TradesAt(99) != nil {
		t.Error("expected nil for tick past the trade list")
	}
}

// Pairs whose agent index does not fit the group must not alias another agent.
const outOfRangePairsJSON = `{
  "duration": 1,
  "prices": [[100]],
  "trades": [
    [[[[0, 600], [0, -1], [-1, 3], [1, 2]], []]]
  ]
}`

func TestDecodeJSONMarksOutOfRangePairs(t *testing.T) {
	d, err := DecodeJSON(strings.NewReader(outOfRangePairsJSON), Options{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := d.TradesAt(0)
	if len(events) != 4 {
		t.Fatalf("expected every pair to keep its slot, got %d events", len(events))
	}
	for i, ev := range events[:3] {
		if ev.AgentID != InvalidAgent {
			t.Errorf("event %d: expected InvalidAgent, got %d", i, ev.AgentID)
		}
	}
	if events[3].AgentID != 502 {
		t.Errorf("expected agent 502, got %d", events[3].AgentID)
	}
}

func TestFlatAgentID(t *testing.T) {
	tests := []struct {
		group, agent, perGroup int
		want                   int
	}{
		{0, 0, 500, 0},
		{3, 499, 500, 1999},
		{0, 500, 500, InvalidAgent},
		{0, 600, 500, InvalidAgent},
		{1, -1, 500, InvalidAgent},
		{-1, 3, 500, InvalidAgent},
		{1, 1, 0, InvalidAgent},
	}
	for _, tt := range tests {
		if got := FlatAgentID(tt.group, tt.agent, tt.perGroup); got != tt.want {
			t.Errorf("FlatAgentID(%d, %d, %d): expected %d, got %d", tt.group, tt.agent, tt.perGroup, tt.want, got)
		}
	}
}

func TestParquetMarksOutOfRangePairs(t *testing.T) {
	src, err := DecodeJSON(strings.NewReader(outOfRangePairsJSON), Options{ID: 1})
	if err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(t.TempDir(), "bad")
	if err := WriteParquet(src, base, DefaultAgentsPerGroup); err != nil {
		t.Fatal(err)
	}

	d, err := LoadFile(base+".prices.parquet", Options{ID: 1})
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	events := d.TradesAt(0)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].AgentID != InvalidAgent || events[3].AgentID != 502 {
		t.Errorf("unexpected events after round trip: %+v", events)
	}
}

func TestDecodeJSONTransposesMarketMajor(t *testing.T) {
	d, err := DecodeJSON(strings.NewReader(marketMajorJSON), Options{ID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.Prices) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(d.Prices))
	}
	want := Sample{3, 30}
	got := d.Prices[2]
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v at tick 2, got %v", want, got)
	}
	if d.Bounds.MinPrice != 1 || d.Bounds.MaxPrice != 40 {
		t.Errorf("expected computed bounds 1..40, got %+v", d.Bounds)
	}
	if d.Name != "Dataset 2" {
		t.Errorf("expected default name, got %q", d.Name)
	}
}

func TestDecodeJSONRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty prices", `{"duration": 2, "prices": []}`, ErrEmptySeries},
		{"shape mismatch", `{"duration": 5, "prices": [[1, 2], [3, 4]]}`, ErrPriceShape},
		{"ragged samples", `{"duration": 2, "prices": [[1, 2], [3]]}`, ErrArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.doc), Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFileUnknownExtension(t *testing.T) {
	_, err := LoadFile("prices.csv", Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pams1.json")
	if err := os.WriteFile(path, []byte(tickMajorJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadFile(path, Options{ID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 7 {
		t.Errorf("expected id 7, got %d", d.ID)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	src, err := DecodeJSON(strings.NewReader(tickMajorJSON), Options{ID: 1})
	if err != nil {
		t.Fatal(err)
	}

	base := filepath.Join(t.TempDir(), "pams1")
	if err := WriteParquet(src, base, DefaultAgentsPerGroup); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	d, err := LoadFile(base+".prices.parquet", Options{ID: 1})
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}

	if d.Duration != src.Duration || d.Channels() != src.Channels() {
		t.Fatalf("expected %dx%d, got %dx%d", src.Duration, src.Channels(), d.Duration, d.Channels())
	}
	for tick := range src.Prices {
		for ch := range src.Prices[tick] {
			if d.Prices[tick][ch] != src.Prices[tick][ch] {
				t.Errorf("price[%d][%d]: expected %v, got %v", tick, ch, src.Prices[tick][ch], d.Prices[tick][ch])
			}
		}
	}
	if len(d.TradesAt(0)) != 2 || len(d.TradesAt(2)) != 2 {
		t.Errorf("unexpected trades after round trip: %+v", d.Trades)
	}
	if d.TradesAt(0)[1].AgentID != 750 {
		t.Errorf("expected agent 750, got %d", d.TradesAt(0)[1].AgentID)
	}
	// Bounds come from the data when the file carries none.
	if d.Bounds.MinPrice != 298 || d.Bounds.MaxPrice != 303 {
		t.Errorf("unexpected bounds %+v", d.Bounds)
	}
}

func TestParquetWithoutTrades(t *testing.T) {
	src, err := DecodeJSON(strings.NewReader(marketMajorJSON), Options{ID: 1})
	if err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(t.TempDir(), "bare")
	if err := WriteParquet(src, base, 0); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(base + ".trades.parquet"); err != nil {
		t.Fatal(err)
	}

	d, err := ReadParquet(base+".prices.parquet", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration != 4 {
		t.Errorf("expected duration 4, got %d", d.Duration)
	}
}

func TestTradesPath(t *testing.T) {
	if got := TradesPath("data/run.prices.parquet"); got != "data/run.trades.parquet" {
		t.Errorf("unexpected trades path %q", got)
	}
	if got := TradesPath("data/run.parquet"); got != "data/run.trades.parquet" {
		t.Errorf("unexpected trades path %q", got)
	}
}

func TestStoreResolveFallsBack(t *testing.T) {
	one := &Dataset{ID: 1, Name: "one"}
	two := &Dataset{ID: 2, Name: "two"}
	s, err := NewStore(1, two, one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, ok := s.Resolve(2)
	if !ok || d != two {
		t.Errorf("expected dataset two, got %v (found=%v)", d.Name, ok)
	}

	d, ok = s.Resolve(42)
	if ok {
		t.Error("expected unknown id to report not found")
	}
	if d != one {
		t.Errorf("expected fallback dataset one, got %v", d.Name)
	}

	if _, err := s.Get(42); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("expected ErrUnknownDataset, got %v", err)
	}

	ids := s.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("expected sorted ids [1 2], got %v", ids)
	}
}

func TestNewStoreErrors(t *testing.T) {
	if _, err := NewStore(3, &Dataset{ID: 1}); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("expected ErrUnknownDataset for missing fallback, got %v", err)
	}
	if _, err := NewStore(1, &Dataset{ID: 1}, &Dataset{ID: 1}); !errors.Is(err, ErrDuplicateDataset) {
		t.Errorf("expected ErrDuplicateDataset, got %v", err)
	}
	if _, err := NewStore(1, &Dataset{ID: 1}, nil); !errors.Is(err, ErrNilDataset) {
		t.Errorf("expected ErrNilDataset, got %v", err)
	}
}
