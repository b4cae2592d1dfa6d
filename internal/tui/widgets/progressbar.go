// ABOUTME: Progress bar widgets for stat cards and the step indicator
// ABOUTME: Compact filled/empty bars with a caller-chosen color

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EmptyBarColor is the color of the unfilled part of a bar
var EmptyBarColor = lipgloss.Color("#374151")

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	filled := int(clampPercent(percent) / 100.0 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(EmptyBarColor).Render(strings.Repeat("░", width-filled))
}

// StepBar renders progress through total steps as a thin line
func StepBar(step, total, width int, color lipgloss.Color) string {
	if width <= 0 || total <= 0 {
		return ""
	}
	step = max(0, min(step, total))

	filled := step * width / total
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(EmptyBarColor).Render(strings.Repeat("─", width-filled))
}

// Percent returns part as a percentage of whole, 0 when whole is 0
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
