package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// PriceRow is one (tick, market) price reading in the parquet layout.
type PriceRow struct {
	Tick   int64   `parquet:"tick"`
	Market int32   `parquet:"market"`
	Price  float64 `parquet:"price"`
}

// TradeRow is one trade event in the parquet layout.
type TradeRow struct {
	Tick   int64 `parquet:"tick"`
	Market int32 `parquet:"market"`
	IsBuy  bool  `parquet:"is_buy"`
	Group  int32 `parquet:"group"`
	Agent  int32 `parquet:"agent"`
}

// TradesPath returns the trades file that accompanies a parquet price file.
func TradesPath(pricesPath string) string {
	base := strings.TrimSuffix(pricesPath, ".parquet")
	base = strings.TrimSuffix(base, ".prices")
	return base + ".trades.parquet"
}

// ReadParquet loads a dataset from a parquet price file and its optional trades file.
func ReadParquet(pricesPath string, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	rows, err := parquet.ReadFile[PriceRow](pricesPath)
	if err != nil {
		return nil, fmt.Errorf("read price rows: %w", err)
	}
	prices, err := pricesFromRows(rows)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		ID:       opts.ID,
		Name:     opts.Name,
		Duration: len(prices),
		Prices:   prices,
		Trades:   make([][]TradeEvent, len(prices)),
	}

	tradesPath := TradesPath(pricesPath)
	if _, err := os.Stat(tradesPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat trades file: %w", err)
		}
	} else {
		tradeRows, err := parquet.ReadFile[TradeRow](tradesPath)
		if err != nil {
			return nil, fmt.Errorf("read trade rows: %w", err)
		}
		for _, r := range tradeRows {
			if r.Tick < 0 || int(r.Tick) >= len(d.Trades) {
				continue
			}
			side := SideSell
			if r.IsBuy {
				side = SideBuy
			}
			d.Trades[r.Tick] = append(d.Trades[r.Tick], TradeEvent{
				AgentID:  FlatAgentID(int(r.Group), int(r.Agent), opts.AgentsPerGroup),
				MarketID: int(r.Market),
				Side:     side,
			})
		}
	}

	d.computeBounds()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func pricesFromRows(rows []PriceRow) (Series, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySeries
	}
	var ticks, markets int
	for _, r := range rows {
		if r.Tick < 0 || r.Market < 0 {
			return nil, fmt.Errorf("%w: negative index in row %+v", ErrPriceShape, r)
		}
		ticks = max(ticks, int(r.Tick)+1)
		markets = max(markets, int(r.Market)+1)
	}
	if len(rows) != ticks*markets {
		return nil, fmt.Errorf("%w: %d rows for %d ticks x %d markets", ErrPriceShape, len(rows), ticks, markets)
	}

	out := make(Series, ticks)
	for i := range out {
		out[i] = make(Sample, markets)
	}
	for _, r := range rows {
		out[r.Tick][r.Market] = r.Price
	}
	return out, nil
}

// WriteParquet writes d as "<base>.prices.parquet" and "<base>.trades.parquet".
func WriteParquet(d *Dataset, base string, agentsPerGroup int) error {
	if agentsPerGroup <= 0 {
		agentsPerGroup = DefaultAgentsPerGroup
	}

	prices := make([]PriceRow, 0, len(d.Prices)*d.Channels())
	for tick, s := range d.Prices {
		for ch, v := range s {
			prices = append(prices, PriceRow{Tick: int64(tick), Market: int32(ch), Price: v})
		}
	}

	var trades []TradeRow
	for tick, events := range d.Trades {
		for _, ev := range events {
			trades = append(trades, TradeRow{
				Tick:   int64(tick),
				Market: int32(ev.MarketID),
				IsBuy:  ev.Side == SideBuy,
				Group:  int32(ev.AgentID / agentsPerGroup),
				Agent:  int32(ev.AgentID % agentsPerGroup),
			})
		}
	}
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Tick < trades[j].Tick })

	pricesPath := base + ".prices.parquet"
	if err := parquet.WriteFile(pricesPath, prices); err != nil {
		return fmt.Errorf("write price rows: %w", err)
	}
	if err := parquet.WriteFile(TradesPath(pricesPath), trades); err != nil {
		os.Remove(pricesPath)
		return fmt.Errorf("write trade rows: %w", err)
	}
	return nil
}
