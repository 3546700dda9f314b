package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phmalek/hoomd-blue/internal/force"
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func titleStyle() lipgloss.Style { return fg(CurrentTheme.Secondary).Bold(true) }
func mutedStyle() lipgloss.Style { return fg(CurrentTheme.Muted) }
func labelStyle() lipgloss.Style { return fg(CurrentTheme.Text) }
func errorStyle() lipgloss.Style { return fg(CurrentTheme.Error) }

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Padding(0, 1)
}

// StateStyle colors a force state: green when configured, amber while
// partial, red when destroyed.
func StateStyle(s force.State) lipgloss.Style {
	switch s {
	case force.Configured:
		return fg(CurrentTheme.Success).Bold(true)
	case force.PartiallyConfigured:
		return fg(CurrentTheme.Warning).Bold(true)
	case force.Destroyed:
		return fg(CurrentTheme.Error).Bold(true)
	default:
		return mutedStyle()
	}
}

// ProgressBar renders percent in [0, 1] as a bar of the given width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent >= 1:
		return fg(CurrentTheme.Success).Render(bar)
	case percent > 0.4:
		return fg(CurrentTheme.Warning).Render(bar)
	default:
		return fg(CurrentTheme.Error).Render(bar)
	}
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteRune(chars[idx])
	}
	return fg(CurrentTheme.Secondary).Render(result.String())
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return mutedStyle().Render(left + " ◆ " + right)
}
