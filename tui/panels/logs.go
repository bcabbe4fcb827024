package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/pamsview/tui/styles"
)

// LogPanel shows the most recent log lines. The newest line is selected
// until the user scrolls back.
type LogPanel struct {
	lines         []string
	selectedIndex int
	scrollOffset  int
	follow        bool
	focused       bool
	width         int
	height        int
	maxItems      int
}

// NewLogPanel creates a log panel keeping at most maxItems lines.
func NewLogPanel(maxItems int) *LogPanel {
	if maxItems <= 0 {
		maxItems = 200
	}
	return &LogPanel{
		maxItems: maxItems,
		follow:   true,
	}
}

// Init initializes the panel.
func (p *LogPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *LogPanel) Update(msg tea.Msg) (*LogPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
				p.follow = false
				if p.selectedIndex < p.scrollOffset {
					p.scrollOffset = p.selectedIndex
				}
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.lines)-1 {
				p.selectedIndex++
				p.keepVisible()
			}
			p.follow = p.selectedIndex == len(p.lines)-1
		case key.Matches(msg, key.NewBinding(key.WithKeys("end", "G"))):
			p.follow = true
			p.selectLast()
		}
	}
	return p, nil
}

func (p *LogPanel) visibleItems() int {
	n := p.height - 4
	if n < 1 {
		n = 1
	}
	return n
}

func (p *LogPanel) keepVisible() {
	visible := p.visibleItems()
	if p.selectedIndex >= p.scrollOffset+visible {
		p.scrollOffset = p.selectedIndex - visible + 1
	}
	if p.selectedIndex < p.scrollOffset {
		p.scrollOffset = p.selectedIndex
	}
}

func (p *LogPanel) selectLast() {
	p.selectedIndex = max(0, len(p.lines)-1)
	p.keepVisible()
}

// View renders the panel.
func (p *LogPanel) View() string {
	var content strings.Builder

	if len(p.lines) == 0 {
		content.WriteString(styles.MutedStyle.Render("No log output"))
	} else {
		start := p.scrollOffset
		end := min(start+p.visibleItems(), len(p.lines))

		for i := start; i < end; i++ {
			line := p.lines[i]
			if limit := p.width - 6; limit > 3 && len(line) > limit {
				line = line[:limit-3] + "..."
			}
			line = logLineStyle(p.lines[i]).Render(line)

			if i == p.selectedIndex && p.focused {
				line = styles.SelectedRowStyle.Render(line)
			}

			content.WriteString(line)
			if i < end-1 {
				content.WriteString("\n")
			}
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📜 Log (%d)", len(p.lines)), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func logLineStyle(line string) lipgloss.Style {
	switch {
	case strings.Contains(line, "level=ERROR"):
		return styles.LogErrorStyle
	case strings.Contains(line, "level=WARN"):
		return styles.LogWarnStyle
	default:
		return styles.RowStyle
	}
}

// Add appends a log line, dropping the oldest beyond maxItems.
func (p *LogPanel) Add(line string) {
	p.lines = append(p.lines, line)
	if over := len(p.lines) - p.maxItems; over > 0 {
		p.lines = p.lines[over:]
		p.selectedIndex = max(0, p.selectedIndex-over)
		p.scrollOffset = max(0, p.scrollOffset-over)
	}
	if p.follow {
		p.selectLast()
	}
}

// Lines returns the retained log lines, oldest first.
func (p *LogPanel) Lines() []string {
	return p.lines
}

// SetFocus sets the focus state of the panel.
func (p *LogPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *LogPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.follow {
		p.selectLast()
	}
}

// LogLineMsg carries one log line to the TUI.
type LogLineMsg struct {
	Line string
}
