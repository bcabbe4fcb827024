package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/sampler"
	"github.com/zappabad/pamsview/tui/styles"
)

// ChartPanel draws the windowed price series as a line chart.
type ChartPanel struct {
	title  string
	labels []string
	names  []string
	series [][]sampler.Value
	bounds dataset.Bounds

	focused bool
	width   int
	height  int

	// Price axis decimals
	decimals int32
}

// NewChartPanel creates a new chart panel.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{
		decimals: 2,
	}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	return p, nil
}

// SetData replaces the plotted window.
func (p *ChartPanel) SetData(title string, labels, names []string, series [][]sampler.Value, bounds dataset.Bounds) {
	p.title = title
	p.labels = labels
	p.names = names
	p.series = series
	p.bounds = bounds
}

// View renders the panel.
func (p *ChartPanel) View() string {
	var content strings.Builder

	chartWidth := p.width - 4
	chartHeight := p.height - 5
	if chartHeight < 5 {
		chartHeight = 5
	}

	if len(p.series) == 0 {
		content.WriteString(styles.MutedStyle.Render("No data yet..."))
	} else {
		content.WriteString(p.renderLegend())
		content.WriteString("\n")
		content.WriteString(p.renderChart(chartWidth, chartHeight))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📈 %s", p.titleOrDefault()), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) titleOrDefault() string {
	if p.title == "" {
		return "Prices"
	}
	return p.title
}

func (p *ChartPanel) renderLegend() string {
	parts := make([]string, 0, len(p.names))
	for ch, name := range p.names {
		parts = append(parts, styles.SeriesStyle(ch).Render("━ "+name))
	}
	return strings.Join(parts, "  ")
}

// renderChart plots every series on a shared price axis. Each column shows
// the latest slot of the window that falls into it; gaps leave the column empty.
func (p *ChartPanel) renderChart(width, height int) string {
	// Reserve space: 9 chars for price axis, 1 for separator
	plotWidth := width - 10
	if plotWidth < 10 {
		plotWidth = 10
	}

	minPrice, maxPrice := p.bounds.MinPrice, p.bounds.MaxPrice
	if maxPrice <= minPrice {
		minPrice, maxPrice = p.observedRange()
	}

	// Reserve 2 rows for the tick axis
	plotHeight := height - 2
	if plotHeight < 3 {
		plotHeight = 3
	}

	grid := make([][]int, plotHeight)
	for row := range grid {
		grid[row] = make([]int, plotWidth)
		for col := range grid[row] {
			grid[row][col] = -1
		}
	}
	for ch, s := range p.series {
		for col := 0; col < plotWidth; col++ {
			v, ok := sampleColumn(s, col, plotWidth)
			if !ok {
				continue
			}
			grid[priceToRow(v, minPrice, maxPrice, plotHeight)][col] = ch
		}
	}

	var result strings.Builder

	for row := 0; row < plotHeight; row++ {
		price := rowToPrice(row, minPrice, maxPrice, plotHeight)
		result.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%8s │", styles.FormatPrice(price, p.decimals))))
		for _, ch := range grid[row] {
			if ch < 0 {
				result.WriteString(" ")
				continue
			}
			result.WriteString(styles.SeriesStyle(ch).Render("•"))
		}
		result.WriteString("\n")
	}

	// Bottom border
	result.WriteString(styles.ChartAxisStyle.Render("─────────┴" + strings.Repeat("─", plotWidth)))
	result.WriteString("\n")

	// Tick axis: first, middle and last label
	result.WriteString(styles.ChartAxisStyle.Render("          "))
	result.WriteString(styles.ChartLabelStyle.Render(tickAxis(p.labels, plotWidth)))

	return result.String()
}

// observedRange returns the min and max of the plotted values.
func (p *ChartPanel) observedRange() (float64, float64) {
	first := true
	var lo, hi float64
	for _, s := range p.series {
		for _, v := range s {
			if !v.OK {
				continue
			}
			if first {
				lo, hi, first = v.V, v.V, false
				continue
			}
			lo = min(lo, v.V)
			hi = max(hi, v.V)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// sampleColumn maps column col of width columns onto series s.
func sampleColumn(s []sampler.Value, col, width int) (float64, bool) {
	if len(s) == 0 || width <= 0 {
		return 0, false
	}
	idx := (col+1)*len(s)/width - 1
	if idx < 0 {
		return 0, false
	}
	v := s[idx]
	return v.V, v.OK
}

func priceToRow(price, minPrice, maxPrice float64, height int) int {
	if maxPrice == minPrice {
		return height / 2
	}
	ratio := (maxPrice - price) / (maxPrice - minPrice)
	y := int(ratio*float64(height-1) + 0.5)
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return y
}

func rowToPrice(y int, minPrice, maxPrice float64, height int) float64 {
	if height <= 1 {
		return minPrice
	}
	ratio := float64(y) / float64(height-1)
	return maxPrice - ratio*(maxPrice-minPrice)
}

// tickAxis lays out the first, middle and last labels across width columns.
func tickAxis(labels []string, width int) string {
	if len(labels) == 0 || width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	put := func(col int, s string) {
		for i, r := range s {
			if col+i >= 0 && col+i < width {
				line[col+i] = r
			}
		}
	}
	last := labels[len(labels)-1]
	put(0, labels[0])
	put(width/2-len(last)/2, labels[len(labels)/2])
	put(width-len(last), last)
	return string(line)
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
