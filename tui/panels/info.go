package panels

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/tui/styles"
)

// InfoPanel is the toggleable overlay describing the current frame.
type InfoPanel struct {
	frame    scene.Frame
	width    int
	height   int
	decimals int32
}

// NewInfoPanel creates an info panel.
func NewInfoPanel() *InfoPanel {
	return &InfoPanel{decimals: 2}
}

// Init initializes the panel.
func (p *InfoPanel) Init() tea.Cmd {
	return nil
}

// SetFrame sets the described frame.
func (p *InfoPanel) SetFrame(f scene.Frame) {
	p.frame = f
}

// View renders the panel.
func (p *InfoPanel) View() string {
	f := p.frame
	var content strings.Builder

	state := styles.RunningStyle.Render("▶ running")
	if !f.Running {
		state = styles.PausedStyle.Render("⏸ paused")
	}

	elapsed := time.Duration(f.Elapsed * float64(time.Second)).Truncate(100 * time.Millisecond)
	fmt.Fprintf(&content, "%s %s\n", styles.HeaderStyle.Render("Dataset"), f.DatasetName)
	fmt.Fprintf(&content, "%s %03d   %s %s   %s\n",
		styles.HeaderStyle.Render("Tick"), f.Tick,
		styles.HeaderStyle.Render("Time"), elapsed,
		state)

	for ch, name := range f.SeriesNames {
		last := "-"
		if s := f.Series[ch]; len(s) > 0 && s[len(s)-1].OK {
			last = styles.FormatPrice(s[len(s)-1].V, p.decimals)
		}
		fmt.Fprintf(&content, "%s %s\n", styles.SeriesStyle(ch).Render(fmt.Sprintf("%-14s", name)), styles.PriceStyle.Render(last))
	}

	if len(f.GroupNames) > 0 {
		names := make([]string, len(f.GroupNames))
		for g, name := range f.GroupNames {
			names[g] = styles.GroupStyle(g).Render(name)
		}
		fmt.Fprintf(&content, "%s %s\n", styles.HeaderStyle.Render("Groups"), strings.Join(names, " "))
	}

	fmt.Fprintf(&content, "%s %d   %s %d",
		styles.HeaderStyle.Render("Trade lines"), len(f.Lines),
		styles.HeaderStyle.Render("Skipped"), f.Skipped)

	title := styles.RenderTitle("ℹ Info", false)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.PanelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetSize sets the panel dimensions.
func (p *InfoPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
