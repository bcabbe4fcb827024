package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/pamsview/internal/orbit"
	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/internal/session"
	"github.com/zappabad/pamsview/tui/panels"
	"github.com/zappabad/pamsview/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusChart PanelFocus = 0
	FocusSwarm PanelFocus = 1
	FocusLog   PanelFocus = 2

	panelCount = 3
)

// Config tunes the TUI.
type Config struct {
	Refresh  time.Duration // frame interval
	LogLines int           // log panel capacity
}

// DefaultConfig returns a 100ms refresh and a 200 line log.
func DefaultConfig() Config {
	return Config{
		Refresh:  100 * time.Millisecond,
		LogLines: 200,
	}
}

// Model is the main TUI application model.
type Model struct {
	cfg Config

	sess    *session.Session
	builder *scene.Builder
	logs    <-chan string
	logger  *slog.Logger

	// Last successfully built frame
	frame scene.Frame

	// Panels
	chartPanel *panels.ChartPanel
	swarmPanel *panels.SwarmPanel
	logPanel   *panels.LogPanel
	infoPanel  *panels.InfoPanel

	keys keyMap
	help help.Model

	// Focus management
	focusedPanel PanelFocus

	// Window dimensions
	width  int
	height int

	// Status
	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model. logs may be nil; zero config fields take
// their defaults.
func NewModel(sess *session.Session, builder *scene.Builder, camera orbit.Camera, logs <-chan string, cfg Config, logger *slog.Logger) *Model {
	def := DefaultConfig()
	if cfg.Refresh <= 0 {
		cfg.Refresh = def.Refresh
	}
	if cfg.LogLines <= 0 {
		cfg.LogLines = def.LogLines
	}
	if logger == nil {
		logger = slog.Default()
	}

	h := help.New()
	h.Styles.ShortKey = styles.StatusBarKeyStyle
	h.Styles.ShortDesc = styles.StatusBarDescStyle
	h.Styles.FullKey = styles.StatusBarKeyStyle
	h.Styles.FullDesc = styles.StatusBarDescStyle

	m := &Model{
		cfg:          cfg,
		sess:         sess,
		builder:      builder,
		logs:         logs,
		logger:       logger,
		chartPanel:   panels.NewChartPanel(),
		swarmPanel:   panels.NewSwarmPanel(camera),
		logPanel:     panels.NewLogPanel(cfg.LogLines),
		infoPanel:    panels.NewInfoPanel(),
		keys:         defaultKeyMap(),
		help:         h,
		focusedPanel: FocusChart,
	}
	m.rebuild()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.chartPanel.Init(),
		m.swarmPanel.Init(),
		m.logPanel.Init(),
		m.infoPanel.Init(),
		m.listenLogs(),
		m.tickRefresh(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		// Cycle focus with tab
		case "tab":
			m.focusedPanel = (m.focusedPanel + 1) % panelCount

		// Reverse cycle focus with shift+tab
		case "shift+tab":
			m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount

		default:
			if key.Matches(msg, m.keys.Help) {
				m.help.ShowAll = !m.help.ShowAll
				break
			}
			if cmd := m.sess.HandleKey(msg.String()); cmd != session.CmdNone {
				m.statusMsg = m.describe(cmd)
				m.rebuild()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case panels.LogLineMsg:
		m.logPanel.Add(msg.Line)
		cmds = append(cmds, m.listenLogs())

	case tickMsg:
		m.rebuild()
		cmds = append(cmds, m.tickRefresh())
	}

	// Update focused panel
	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	case FocusSwarm:
		m.swarmPanel, cmd = m.swarmPanel.Update(msg)
	case FocusLog:
		m.logPanel, cmd = m.logPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// rebuild samples a new frame and hands it to the panels. On failure the
// previous frame stays on screen.
func (m *Model) rebuild() {
	f, err := m.builder.Build(m.sess)
	if err != nil {
		m.logger.Error("frame build failed", "error", err)
		return
	}
	m.frame = f

	m.chartPanel.SetData(
		fmt.Sprintf("%s - tick %03d", f.DatasetName, f.Tick),
		f.Labels, f.SeriesNames, f.Series, f.Bounds,
	)
	m.swarmPanel.SetFrame(f)
	m.infoPanel.SetFrame(f)
}

func (m *Model) describe(cmd session.Command) string {
	switch cmd {
	case session.CmdSelect:
		return "Showing " + m.sess.Dataset().Name
	case session.CmdTogglePause:
		if m.sess.Running() {
			return "Resumed"
		}
		return "Paused"
	case session.CmdRestart:
		return "Restarted"
	case session.CmdToggleInfo:
		if m.sess.Info() {
			return "Info on"
		}
		return "Info off"
	default:
		return ""
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Update focus states
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.swarmPanel.SetFocus(m.focusedPanel == FocusSwarm)
	m.logPanel.SetFocus(m.focusedPanel == FocusLog)

	// Layout:
	// ┌───────────────────────────┬─────────────────┐
	// │          Chart            │     Agents      │
	// ├───────────────────────────┴──────┬──────────┤
	// │               Log                │  (Info)  │
	// └──────────────────────────────────┴──────────┘

	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth

	topHeight := (m.height - 1) * 2 / 3
	bottomHeight := m.height - topHeight - 1

	m.chartPanel.SetSize(leftWidth, topHeight)
	m.swarmPanel.SetSize(rightWidth, topHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.chartPanel.View(),
		m.swarmPanel.View(),
	)

	var bottomRow string
	if m.sess.Info() {
		infoWidth := m.width / 3
		m.logPanel.SetSize(m.width-infoWidth, bottomHeight)
		m.infoPanel.SetSize(infoWidth, bottomHeight)
		bottomRow = lipgloss.JoinHorizontal(lipgloss.Top,
			m.logPanel.View(),
			m.infoPanel.View(),
		)
	} else {
		m.logPanel.SetSize(m.width, bottomHeight)
		bottomRow = m.logPanel.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	state := styles.RunningStyle.Render("▶")
	if !m.sess.Running() {
		state = styles.PausedStyle.Render("⏸")
	}

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(state + " " + m.help.View(m.keys) + status)
}

// Frame returns the last frame shown.
func (m *Model) Frame() scene.Frame {
	return m.frame
}

func (m *Model) listenLogs() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-m.logs
		if !ok {
			return nil
		}
		return panels.LogLineMsg{Line: line}
	}
}

// tickMsg is sent periodically to refresh the frame.
type tickMsg struct{}

func (m *Model) tickRefresh() tea.Cmd {
	return tea.Tick(m.cfg.Refresh, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}
