package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var shades = []rune(" ░▒▓█")

// Heatmap renders a space-time grid (rows = time slices, columns = spatial
// samples) as shaded cells, downsampled to at most width x height. Values
// are normalized over the whole grid so slices share one scale.
func Heatmap(grid [][]float64, width, height int, colored bool) string {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return Subtle.Render("(empty grid)")
	}

	lo, hi := grid[0][0], grid[0][0]
	for _, row := range grid {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	rows := len(grid)
	cols := len(grid[0])
	stepR := (rows + height - 1) / height
	if stepR < 1 {
		stepR = 1
	}
	stepC := (cols + width - 1) / width
	if stepC < 1 {
		stepC = 1
	}

	var b strings.Builder
	for r := 0; r < rows; r += stepR {
		for c := 0; c < cols && c < len(grid[r]); c += stepC {
			t := (grid[r][c] - lo) / span
			idx := int(t * float64(len(shades)-1))
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			cell := string(shades[idx])
			if colored {
				cell = lipgloss.NewStyle().Foreground(heatRamp(t)).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
