// ABOUTME: Dashboard command showing booking stats and recent stays
// ABOUTME: Fetches the dashboard and current user concurrently

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show booking statistics and recent bookings",
	Run:   runCommand(runDashboard),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches the overview and returns exit code
func runDashboard(ctx context.Context, d *deps, w io.Writer) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	ov, err := d.client.DashboardOverview(ctx)
	if err != nil {
		return fail(w, err)
	}

	return d.print(w, ov, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatDashboardHuman(ov))
		return err
	})
}

// formatDashboardHuman formats the overview for human readability
func formatDashboardHuman(ov *client.Overview) string {
	var sb strings.Builder

	if ov.User != nil {
		fmt.Fprintf(&sb, "Welcome back, %s\n\n", ov.User.DisplayName())
	}

	s := ov.Dashboard.Stats
	fmt.Fprintf(&sb, `Total Bookings:  %d
Upcoming Stays:  %d
Cancelled:       %d
Total Spent:     %s
`, s.TotalBookings, s.UpcomingStays, s.CancelledBookings, formatMoney(s.TotalSpent))

	sb.WriteString("\nRecent Bookings:\n")
	if len(ov.Dashboard.RecentBookings) == 0 {
		sb.WriteString("  No bookings yet.")
		return sb.String()
	}

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tHOTEL\tCHECK-IN\tCHECK-OUT\tPRICE\tSTATUS")
	for _, b := range ov.Dashboard.RecentBookings {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.HotelName, models.FormatDate(b.CheckIn), models.FormatDate(b.CheckOut), formatMoney(b.Price), b.Status)
	}
	tw.Flush()

	return strings.TrimRight(sb.String(), "\n")
}

// formatMoney renders an amount as dollars
func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
