// ABOUTME: Compact stat card widget for dashboard displays
// ABOUTME: Renders an icon title in the top border with a value and caption below

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
)

// CardConfig holds configuration for a stat card
type CardConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultCardConfig returns sensible defaults
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width:       24,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#2563EB"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

func (c CardConfig) innerWidth() int {
	if c.Width <= 0 {
		return DefaultCardConfig().Width - 4
	}
	return max(1, c.Width-4)
}

// card assembles the bordered box around pre-rendered body lines
func card(icon icons.Icon, title string, body []string, config CardConfig) string {
	innerWidth := config.innerWidth()
	config.Width = innerWidth + 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth-1)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	// ┌─ + space + title + space + fill + ┐ spans Width
	fill := max(0, config.Width-5-lipgloss.Width(titleStr))
	lines := []string{
		borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) + borderStyle.Render(" "+strings.Repeat("─", fill)+"┐"),
	}
	for _, b := range body {
		pad := max(0, innerWidth-lipgloss.Width(b))
		lines = append(lines, borderStyle.Render("│  ")+b+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}
	lines = append(lines, borderStyle.Render("└"+strings.Repeat("─", config.Width-2)+"┘"))

	return strings.Join(lines, "\n")
}

// StatCard renders a value with a caption
func StatCard(icon icons.Icon, title, value, caption string, config CardConfig) string {
	innerWidth := config.innerWidth()
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	return card(icon, title, []string{
		valueStyle.Render(truncate(value, innerWidth)),
		captionStyle.Render(truncate(caption, innerWidth)),
	}, config)
}

// CountCard renders a simple count with a caption
func CountCard(icon icons.Icon, title string, count int, caption string, config CardConfig) string {
	return StatCard(icon, title, fmt.Sprintf("%d", count), caption, config)
}

// StatCardWithBar renders a percentage with a bar underneath
func StatCardWithBar(icon icons.Icon, title string, percent float64, caption string, color lipgloss.Color, config CardConfig) string {
	innerWidth := config.innerWidth()
	percentStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%.0f%%", percent))
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	return card(icon, title, []string{
		percentStr,
		CompactProgressBar(percent, innerWidth, color),
		captionStyle.Render(truncate(caption, innerWidth)),
	}, config)
}

// StatCardWithSparkline renders a value followed by a trend sparkline
func StatCardWithSparkline(icon icons.Icon, title, value string, series []float64, caption string, config CardConfig) string {
	innerWidth := config.innerWidth()
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	sparkWidth := min(8, max(0, innerWidth-lipgloss.Width(value)-2))
	line := valueStyle.Render(value)
	if spark := Sparkline(series, sparkWidth, config.TitleColor); spark != "" {
		line += "  " + spark
	}

	return card(icon, title, []string{
		line,
		captionStyle.Render(truncate(caption, innerWidth)),
	}, config)
}

// truncate shortens a string to maxLen display cells with ellipsis if needed
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:min(len(runes), maxLen)])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Truncate exports truncate for table cells and detail panes
func Truncate(s string, maxLen int) string {
	return truncate(s, maxLen)
}

// Money renders an amount in dollars
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
