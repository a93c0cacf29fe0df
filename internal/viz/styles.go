package viz

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	AxisLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusDone = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))
)

// heatRamp maps a normalized value in [0,1] to a terminal color, cold blue
// through hot yellow-white.
func heatRamp(t float64) lipgloss.Color {
	switch {
	case t < 0.2:
		return lipgloss.Color("#20308a")
	case t < 0.4:
		return lipgloss.Color("#4a5fd0")
	case t < 0.6:
		return lipgloss.Color("#b05fa0")
	case t < 0.8:
		return lipgloss.Color("#e08a40")
	default:
		return lipgloss.Color("#f8e860")
	}
}
