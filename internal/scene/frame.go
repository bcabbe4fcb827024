package scene

import (
	"errors"
	"log/slog"
	"time"

	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/orbit"
	"github.com/zappabad/pamsview/internal/playback"
	"github.com/zappabad/pamsview/internal/sampler"
	"github.com/zappabad/pamsview/internal/trades"
)

var ErrNoDataset = errors.New("no dataset selected")

// Source is the playback state a frame is sampled from.
type Source interface {
	Dataset() *dataset.Dataset
	Elapsed() time.Duration
	Running() bool
}

// MarketFrame is one market body at frame time. Spin is the angle in radians
// about Axis and Rotation is the same spin as a matrix.
type MarketFrame struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	Position orbit.Vec3 `json:"position"`
	Axis     orbit.Vec3 `json:"axis"`
	Spin     float64    `json:"spin"`
	Rotation orbit.Mat3 `json:"rotation"`
}

// CameraFrame is the camera at frame time.
type CameraFrame struct {
	Eye orbit.Vec3 `json:"eye"`
	FOV float64    `json:"fov"`
}

// Frame is everything needed to draw one refresh of the view.
type Frame struct {
	DatasetID   dataset.ID        `json:"dataset_id"`
	DatasetName string            `json:"dataset_name"`
	Tick        int               `json:"tick"`
	Elapsed     float64           `json:"elapsed"`
	Running     bool              `json:"running"`
	Bounds      dataset.Bounds    `json:"bounds"`
	Labels      []string          `json:"labels"`
	SeriesNames []string          `json:"series_names"`
	Series      [][]sampler.Value `json:"series"`
	Markets     []MarketFrame     `json:"markets"`
	GroupNames  []string          `json:"group_names"`
	Groups      [][]orbit.Vec3    `json:"groups"`
	Lines       []trades.Line     `json:"lines"`
	Camera      CameraFrame       `json:"camera"`
	// Skipped counts trade events of the tick that could not be drawn.
	Skipped int `json:"skipped"`
}

// Builder samples frames for one viewer. Trade lines of a tick are added the
// first time that tick is built and then fade on the wall clock.
type Builder struct {
	scene    *Scene
	cfg      FrameConfig
	resolver trades.Resolver
	fader    *trades.Fader
	logger   *slog.Logger
	now      func() time.Time

	primed      bool
	lastID      dataset.ID
	lastTick    int
	lastSkipped int
}

// NewBuilder creates a frame builder over s. Zero config fields take their
// defaults; a nil logger uses slog.Default().
func NewBuilder(s *Scene, cfg FrameConfig, logger *slog.Logger) *Builder {
	def := DefaultFrameConfig()
	if cfg.Rate <= 0 {
		cfg.Rate = def.Rate
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.LineTTL <= 0 {
		cfg.LineTTL = def.LineTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		scene:    s,
		cfg:      cfg,
		resolver: trades.Resolver{PerGroup: s.AgentsPerGroup()},
		fader:    trades.NewFader(cfg.LineTTL),
		logger:   logger,
		now:      time.Now,
	}
}

// Build computes the frame for the current state of src.
func (b *Builder) Build(src Source) (Frame, error) {
	d := src.Dataset()
	if d == nil {
		return Frame{}, ErrNoDataset
	}

	elapsed := src.Elapsed()
	t := elapsed.Seconds()
	tick := playback.Tick(elapsed, b.cfg.Rate, d.Duration)

	window, err := sampler.Window(tick, b.cfg.Window, d.Prices)
	if err != nil {
		return Frame{}, err
	}

	f := Frame{
		DatasetID:   d.ID,
		DatasetName: d.Name,
		Tick:        tick,
		Elapsed:     t,
		Running:     src.Running(),
		Bounds:      d.Bounds,
		Labels:      sampler.Labels(tick, b.cfg.Window),
		Series:      sampler.Channels(window, d.Channels()),
		Groups:      b.scene.AgentPositions(t),
	}
	for ch := 0; ch < d.Channels(); ch++ {
		f.SeriesNames = append(f.SeriesNames, d.MarketName(ch))
	}

	positions := b.scene.MarketPositions()
	for i, m := range b.scene.Markets() {
		f.Markets = append(f.Markets, MarketFrame{
			Name:     m.Name,
			Label:    m.Label,
			Position: positions[i],
			Axis:     m.axis,
			Spin:     b.scene.cfg.MarketOmega * t,
			Rotation: b.scene.MarketSpin(i, t),
		})
	}
	for _, g := range b.scene.Groups() {
		f.GroupNames = append(f.GroupNames, g.Name())
	}

	view := b.scene.Camera().At(t)
	f.Camera = CameraFrame{Eye: view.Eye, FOV: b.scene.Camera().FOV}

	if b.primed && d.ID != b.lastID {
		b.fader.Reset()
	}
	if !b.cfg.HideTradeLines && (!b.primed || d.ID != b.lastID || tick != b.lastTick) {
		b.lastSkipped = b.addLines(d, tick, f.Groups, positions)
	}
	b.primed, b.lastID, b.lastTick = true, d.ID, tick

	f.Lines = b.fader.Visible(b.now())
	f.Skipped = b.lastSkipped
	return f, nil
}

// addLines resolves the trades of tick and hands the drawable ones to the
// fader. It returns the number of skipped events.
func (b *Builder) addLines(d *dataset.Dataset, tick int, groups [][]orbit.Vec3, markets []orbit.Vec3) int {
	events := d.TradesAt(tick)
	if len(events) == 0 {
		return 0
	}

	now := b.now()
	skipped := 0
	for _, res := range b.resolver.ResolveAll(events, groups, markets) {
		if res.Err != nil {
			skipped++
			b.logger.Warn("skipping trade line",
				"dataset", d.ID,
				"tick", tick,
				"agent", res.Event.AgentID,
				"market", res.Event.MarketID,
				"error", res.Err)
			continue
		}
		b.fader.Add(now, res.Line)
	}
	return skipped
}
