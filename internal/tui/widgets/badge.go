// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps booking and payment statuses to colored badges and icons

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#8B5CF6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// BookingLevel maps a booking status to a badge level
func BookingLevel(status string) StatusLevel {
	switch {
	case strings.EqualFold(status, models.StatusConfirmed):
		return StatusOK
	case strings.EqualFold(status, models.StatusPending):
		return StatusWarning
	case strings.EqualFold(status, models.StatusCancelled):
		return StatusCritical
	case strings.EqualFold(status, models.StatusCompleted):
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// PaymentLevel maps a payment status to a badge level
func PaymentLevel(status string) StatusLevel {
	switch {
	case strings.EqualFold(status, models.PaymentPaid):
		return StatusOK
	case strings.EqualFold(status, models.PaymentPending):
		return StatusWarning
	case strings.EqualFold(status, models.PaymentRefunded):
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// StatusBadge renders a booking status as a badge
func StatusBadge(status string) string {
	if status == "" {
		return Badge("--", StatusNeutral)
	}
	return Badge(status, BookingLevel(status))
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := colors(level)
	style := lipgloss.NewStyle().Foreground(bg)

	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := colors(level)
	textStyle := lipgloss.NewStyle().Foreground(bg)
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}

// RatingStars renders a 0-5 rating as filled and empty stars
func RatingStars(rating float64) string {
	full := int(rating + 0.5)
	if full > 5 {
		full = 5
	}
	if full < 0 {
		full = 0
	}
	stars := strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(stars) + fmt.Sprintf(" %.1f", rating)
}
