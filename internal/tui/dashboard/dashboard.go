// ABOUTME: Dashboard component showing booking stats and recent bookings
// ABOUTME: Stat cards across the top, recent bookings with status badges below

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/widgets"
)

// cardsPerRow is the number of stat cards placed side by side on wide terminals
const cardsPerRow = 2

// Dashboard displays the signed-in user's booking overview
type Dashboard struct {
	overview *client.Overview
	width    int
	height   int
}

// New creates a new dashboard. overview may be nil while loading.
func New(overview *client.Overview, width, height int) *Dashboard {
	return &Dashboard{
		overview: overview,
		width:    width,
		height:   height,
	}
}

// Update replaces the overview
func (d *Dashboard) Update(overview *client.Overview) {
	d.overview = overview
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.overview == nil || d.overview.Dashboard == nil {
		return "Loading dashboard..."
	}

	var sb strings.Builder

	title := "Dashboard"
	if name := d.overview.User.DisplayName(); name != "" {
		title = "Welcome back, " + name
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	sb.WriteString(d.renderCards())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Recent bookings"))
	sb.WriteString("\n")
	sb.WriteString(d.renderRecent())

	return lipgloss.NewStyle().
		Width(d.width).
		MaxHeight(max(0, d.height)).
		Render(sb.String())
}

func (d *Dashboard) renderCards() string {
	stats := d.overview.Dashboard.Stats

	config := widgets.DefaultCardConfig()
	perRow := cardsPerRow
	if d.width < 2*config.Width+2 {
		perRow = 1
	}
	if d.width >= 4*config.Width+6 {
		perRow = 4
	}

	cards := []string{
		widgets.CountCard(icons.Hotel, "Bookings", stats.TotalBookings, "all time", config),
		widgets.CountCard(icons.Calendar, "Upcoming", stats.UpcomingStays, "stays ahead", config),
		widgets.StatCardWithBar(icons.Cancel, "Cancelled", widgets.Percent(stats.CancelledBookings, stats.TotalBookings),
			fmt.Sprintf("%d of %d", stats.CancelledBookings, stats.TotalBookings), styles.Danger, config),
		widgets.StatCardWithSparkline(icons.Money, "Spent", widgets.Money(stats.TotalSpent), d.spendSeries(), "recent trend", config),
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// spendSeries returns recent booking prices oldest first
func (d *Dashboard) spendSeries() []float64 {
	recent := d.overview.Dashboard.RecentBookings
	series := make([]float64, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		series = append(series, recent[i].Price)
	}
	return series
}

func (d *Dashboard) renderRecent() string {
	recent := d.overview.Dashboard.RecentBookings
	if len(recent) == 0 {
		return styles.Help.Render("No bookings yet. Search hotels to make your first booking.")
	}

	var sb strings.Builder
	for _, b := range recent {
		sb.WriteString(RecentLine(b))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RecentLine renders one recent booking as a single line
func RecentLine(b models.BookingSummary) string {
	dates := fmt.Sprintf("%s to %s", models.FormatDate(b.CheckIn), models.FormatDate(b.CheckOut))
	return fmt.Sprintf("%s  %s  %s  %s",
		widgets.StatusBadge(b.Status),
		styles.ValueStyle.Render(b.HotelName),
		styles.LabelStyle.Render(dates),
		widgets.Money(b.Price))
}
