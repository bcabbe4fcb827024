package panels

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/orbit"
	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/internal/trades"
	"github.com/zappabad/pamsview/tui/styles"
)

// cell kinds, in drawing priority order
const (
	cellEmpty = iota
	cellAgent
	cellLine
	cellMarket
)

type cell struct {
	kind  int
	index int // group index for agents, side for lines
	depth float64
	r     rune
}

// SwarmPanel renders the agent swarm through the orbiting camera.
type SwarmPanel struct {
	camera  orbit.Camera
	elapsed float64
	markets []scene.MarketFrame
	groups  [][]orbit.Vec3
	lines   []trades.Line

	focused bool
	width   int
	height  int
}

// NewSwarmPanel creates a swarm panel viewed through camera.
func NewSwarmPanel(camera orbit.Camera) *SwarmPanel {
	return &SwarmPanel{camera: camera}
}

// Init initializes the panel.
func (p *SwarmPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *SwarmPanel) Update(msg tea.Msg) (*SwarmPanel, tea.Cmd) {
	return p, nil
}

// SetFrame takes the positions to draw from a frame.
func (p *SwarmPanel) SetFrame(f scene.Frame) {
	p.elapsed = f.Elapsed
	p.markets = f.Markets
	p.groups = f.Groups
	p.lines = f.Lines
}

// View renders the panel.
func (p *SwarmPanel) View() string {
	gridWidth := p.width - 4
	gridHeight := p.height - 4
	if gridWidth < 1 || gridHeight < 1 {
		return ""
	}

	grid := p.rasterize(gridWidth, gridHeight)

	var content strings.Builder
	for row := range grid {
		for _, c := range grid[row] {
			content.WriteString(renderCell(c))
		}
		if row < len(grid)-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("🪐 Agents - %d trades", len(p.lines)), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// rasterize projects everything onto a width x height grid, nearest first
// within a kind and higher kinds over lower ones.
func (p *SwarmPanel) rasterize(width, height int) [][]cell {
	grid := make([][]cell, height)
	for row := range grid {
		grid[row] = make([]cell, width)
	}
	view := p.camera.At(p.elapsed)

	plot := func(col, row int, c cell) {
		if row < 0 || row >= height || col < 0 || col >= width {
			return
		}
		cur := grid[row][col]
		if c.kind > cur.kind || (c.kind == cur.kind && c.depth < cur.depth) {
			grid[row][col] = c
		}
	}

	for g, agents := range p.groups {
		for _, pos := range agents {
			col, row, depth, ok := view.Project(pos, width, height)
			if !ok {
				continue
			}
			plot(col, row, cell{kind: cellAgent, index: g, depth: depth, r: '·'})
		}
	}

	for _, l := range p.lines {
		c0, r0, d0, ok0 := view.Project(l.From, width, height)
		c1, r1, d1, ok1 := view.Project(l.To, width, height)
		if !ok0 || !ok1 {
			continue
		}
		depth := math.Min(d0, d1)
		for _, pt := range Line(c0, r0, c1, r1) {
			plot(pt[0], pt[1], cell{kind: cellLine, index: int(l.Side), depth: depth, r: '*'})
		}
	}

	for _, m := range p.markets {
		col, row, depth, ok := view.Project(m.Position, width, height)
		if !ok {
			continue
		}
		plot(col, row, cell{kind: cellMarket, depth: depth, r: '●'})
	}

	return grid
}

func renderCell(c cell) string {
	switch c.kind {
	case cellAgent:
		return styles.GroupStyle(c.index).Render(string(c.r))
	case cellLine:
		if dataset.Side(c.index) == dataset.SideBuy {
			return styles.BuyLineStyle.Render(string(c.r))
		}
		return styles.SellLineStyle.Render(string(c.r))
	case cellMarket:
		return styles.MarketStyle.Render(string(c.r))
	default:
		return " "
	}
}

// Line returns the grid cells from (x0, y0) to (x1, y1) inclusive.
func Line(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	var out [][2]int
	err := dx + dy
	for {
		out = append(out, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SetFocus sets the focus state of the panel.
func (p *SwarmPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *SwarmPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
