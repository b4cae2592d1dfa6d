// ABOUTME: Booking commands: list with filters, show details, and cancel
// ABOUTME: Filtering by status, text, and check-in range happens client-side

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

var (
	bookingStatus string
	bookingSearch string
	bookingFrom   string
	bookingTo     string
	assumeYes     bool
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Manage your bookings",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookings",
	Long: `List your bookings, optionally filtered.

Example:
  hotelbook bookings list --status confirmed --from 2025-06-01 -o json --query "[].id"`,
	Run: runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
		return runBookingsList(ctx, d, w, bookingFilters())
	}),
}

var bookingsShowCmd = &cobra.Command{
	Use:   "show <booking-id>",
	Short: "Show booking details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runBookingShow(ctx, d, w, args[0])
		})(cmd, args)
	},
}

var bookingsCancelCmd = &cobra.Command{
	Use:   "cancel <booking-id>",
	Short: "Cancel a confirmed booking",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runBookingCancel(ctx, d, w, args[0], assumeYes)
		})(cmd, args)
	},
}

func init() {
	f := bookingsListCmd.Flags()
	f.StringVar(&bookingStatus, "status", models.StatusFilterAll, "Status: all, confirmed, pending, cancelled, completed")
	f.StringVar(&bookingSearch, "search", "", "Match hotel name, location, or booking ID")
	f.StringVar(&bookingFrom, "from", "", "Earliest check-in date (YYYY-MM-DD)")
	f.StringVar(&bookingTo, "to", "", "Latest check-in date (YYYY-MM-DD)")

	bookingsCancelCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Cancel without asking for confirmation")

	bookingsCmd.AddCommand(bookingsListCmd, bookingsShowCmd, bookingsCancelCmd)
	rootCmd.AddCommand(bookingsCmd)
}

func bookingFilters() models.BookingFilters {
	f := models.BookingFilters{Status: bookingStatus, SearchQuery: bookingSearch}
	if bookingFrom != "" || bookingTo != "" {
		f.DateRange = &models.DateRange{Start: bookingFrom, End: bookingTo}
	}
	return f
}

// validateBookingFilters rejects unparseable dates so they are not silently ignored
func validateBookingFilters(f models.BookingFilters) error {
	if f.DateRange == nil {
		return nil
	}
	if f.DateRange.Start != "" {
		if _, ok := models.ParseDate(f.DateRange.Start); !ok {
			return fmt.Errorf("invalid --from date %q", f.DateRange.Start)
		}
	}
	if f.DateRange.End != "" {
		if _, ok := models.ParseDate(f.DateRange.End); !ok {
			return fmt.Errorf("invalid --to date %q", f.DateRange.End)
		}
	}
	return nil
}

func runBookingsList(ctx context.Context, d *deps, w io.Writer, filters models.BookingFilters) int {
	if err := validateBookingFilters(filters); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	all, err := d.client.ListBookings(ctx)
	if err != nil {
		return fail(w, err)
	}
	bookings := models.FilterBookings(all, filters)

	return d.print(w, bookings, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatBookingsHuman(bookings, len(all)))
		return err
	})
}

func runBookingShow(ctx context.Context, d *deps, w io.Writer, id string) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	booking, err := d.client.BookingDetails(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	return d.print(w, booking, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatBookingHuman(booking))
		return err
	})
}

// runBookingCancel confirms and cancels a booking. Only confirmed bookings can be cancelled.
func runBookingCancel(ctx context.Context, d *deps, w io.Writer, id string, yes bool) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	booking, err := d.client.BookingDetails(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	if !booking.Cancellable() {
		fmt.Fprintf(w, "Error: booking %s is %s and cannot be cancelled\n", booking.ID, strings.ToLower(booking.Status))
		return exitFailed
	}

	if !yes {
		ok, err := d.prompt.Confirm(fmt.Sprintf("Cancel booking %s at %s?", booking.ID, booking.HotelName))
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		if !ok {
			fmt.Fprintln(w, "Booking kept.")
			return exitOK
		}
	}

	if err := d.client.CancelBooking(ctx, booking.ID); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Booking %s cancelled.\n", booking.ID)
	return exitOK
}

// formatBookingsHuman formats a filtered booking list; total is the unfiltered count
func formatBookingsHuman(bookings []models.Booking, total int) string {
	if len(bookings) == 0 {
		if total == 0 {
			return "No bookings yet."
		}
		return fmt.Sprintf("No bookings match the filters (%d total).", total)
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOTEL\tCHECK-IN\tCHECK-OUT\tGUESTS\tPRICE\tSTATUS")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			b.ID, b.HotelName, models.FormatDate(b.CheckIn), models.FormatDate(b.CheckOut), b.Guests, formatMoney(b.Price), b.Status)
	}
	tw.Flush()
	fmt.Fprintf(&sb, "\n%d of %d booking(s)", len(bookings), total)
	return sb.String()
}

// formatBookingHuman formats one booking's details
func formatBookingHuman(b *models.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking:    %s\n", b.ID)
	fmt.Fprintf(&sb, "Hotel:      %s\n", b.HotelName)
	if b.Location != "" {
		fmt.Fprintf(&sb, "Location:   %s\n", b.Location)
	}
	if b.RoomType != "" {
		fmt.Fprintf(&sb, "Room:       %s\n", b.RoomType)
	}
	fmt.Fprintf(&sb, "Stay:       %s to %s\n", models.FormatDate(b.CheckIn), models.FormatDate(b.CheckOut))
	fmt.Fprintf(&sb, "Guests:     %d\n", b.Guests)
	fmt.Fprintf(&sb, "Price:      %s\n", formatMoney(b.Price))
	fmt.Fprintf(&sb, "Status:     %s\n", b.Status)
	if b.PaymentStatus != "" {
		fmt.Fprintf(&sb, "Payment:    %s\n", b.PaymentStatus)
	}
	if b.BookingDate != "" {
		fmt.Fprintf(&sb, "Booked on:  %s\n", models.FormatDate(b.BookingDate))
	}
	if b.SpecialRequests != "" {
		fmt.Fprintf(&sb, "Requests:   %s\n", b.SpecialRequests)
	}
	return strings.TrimRight(sb.String(), "\n")
}
