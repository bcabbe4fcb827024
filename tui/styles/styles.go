package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7C3AED") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	AccentColor    = lipgloss.Color("#F59E0B") // Amber

	// Trade line colors
	BuyColor  = lipgloss.Color("#FF0000") // Red
	SellColor = lipgloss.Color("#428AF5") // Blue

	// Background colors
	BackgroundColor  = lipgloss.Color("#1F2937")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// SeriesColors colors chart series by channel.
var SeriesColors = []lipgloss.Color{
	lipgloss.Color("#4FC3F7"),
	lipgloss.Color("#FFB74D"),
	lipgloss.Color("#81C784"),
	lipgloss.Color("#E57373"),
}

// GroupColors colors agent groups by index.
var GroupColors = []lipgloss.Color{
	lipgloss.Color("#38BDF8"),
	lipgloss.Color("#FBBF24"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#C084FC"),
}

// Panel styles
var (
	// Base panel style
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Focused panel style
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	// Panel title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	// Header row style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Text styles
var (
	PriceStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	RunningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	PausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// Log level styles
	LogWarnStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	LogErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BuyColor)
)

// Scene styles
var (
	MarketStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	BuyLineStyle = lipgloss.NewStyle().
			Foreground(BuyColor)

	SellLineStyle = lipgloss.NewStyle().
			Foreground(SellColor)
)

// Chart styles
var (
	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// Helper function to render a title bar for a panel
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// SeriesStyle returns the style of chart channel ch.
func SeriesStyle(ch int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeriesColors[ch%len(SeriesColors)])
}

// GroupStyle returns the style of agent group g.
func GroupStyle(g int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GroupColors[g%len(GroupColors)])
}

// FormatPrice formats a price with a fixed number of decimals.
func FormatPrice(price float64, decimals int32) string {
	return decimal.NewFromFloat(price).StringFixed(decimals)
}
