// ABOUTME: Hotel commands: search listings, show details, and book a room
// ABOUTME: Search filters are sent to the backend and refined locally

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

var (
	searchFilters models.HotelFilters
	bookRequest   models.BookingRequest
)

var hotelsCmd = &cobra.Command{
	Use:   "hotels",
	Short: "Search and book hotels",
}

var hotelsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search hotels",
	Long: `Search hotels by location, price, rating, guests, and amenities.

Example:
  hotelbook hotels search --location Lisbon --max-price 200 --sort price-low`,
	Run: runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
		return runHotelSearch(ctx, d, w, searchFilters)
	}),
}

var hotelsShowCmd = &cobra.Command{
	Use:   "show <hotel-id>",
	Short: "Show a hotel and its rooms",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runHotelShow(ctx, d, w, args[0])
		})(cmd, args)
	},
}

var hotelsBookCmd = &cobra.Command{
	Use:   "book <hotel-id>",
	Short: "Book a room",
	Long: `Book a room at a hotel. Without --room the first available room that fits
the guest count is used.

Example:
  hotelbook hotels book h-1 --check-in 2025-06-01 --check-out 2025-06-04 --guests 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req := bookRequest
		req.HotelID = args[0]
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runHotelBook(ctx, d, w, req)
		})(cmd, args)
	},
}

func init() {
	f := hotelsSearchCmd.Flags()
	f.StringVar(&searchFilters.Location, "location", "", "City or area")
	f.Float64Var(&searchFilters.MinPrice, "min-price", 0, "Minimum price per night")
	f.Float64Var(&searchFilters.MaxPrice, "max-price", 0, "Maximum price per night")
	f.Float64Var(&searchFilters.Rating, "rating", 0, "Minimum rating")
	f.IntVar(&searchFilters.Guests, "guests", 0, "Number of guests")
	f.StringSliceVar(&searchFilters.Amenities, "amenity", nil, "Required amenity (repeatable)")
	f.StringVar(&searchFilters.SortBy, "sort", "", "Sort order: "+strings.Join(models.SortOrders, ", "))

	b := hotelsBookCmd.Flags()
	b.StringVar(&bookRequest.RoomID, "room", "", "Room ID (default: first available)")
	b.StringVar(&bookRequest.CheckIn, "check-in", "", "Check-in date (YYYY-MM-DD)")
	b.StringVar(&bookRequest.CheckOut, "check-out", "", "Check-out date (YYYY-MM-DD)")
	b.IntVar(&bookRequest.Guests, "guests", 1, "Number of guests")
	b.StringVar(&bookRequest.SpecialRequests, "requests", "", "Special requests for the hotel")

	hotelsCmd.AddCommand(hotelsSearchCmd, hotelsShowCmd, hotelsBookCmd)
	rootCmd.AddCommand(hotelsCmd)
}

// validateFilters rejects filters that cannot match anything
func validateFilters(f models.HotelFilters) error {
	switch {
	case !models.ValidSortOrder(f.SortBy):
		return fmt.Errorf("unknown sort order %q: must be one of %s", f.SortBy, strings.Join(models.SortOrders, ", "))
	case f.MinPrice < 0 || f.MaxPrice < 0:
		return errors.New("prices must not be negative")
	case f.MaxPrice != 0 && f.MinPrice > f.MaxPrice:
		return errors.New("--min-price is greater than --max-price")
	case f.Rating < 0 || f.Rating > 5:
		return errors.New("--rating must be between 0 and 5")
	case f.Guests < 0:
		return errors.New("--guests must not be negative")
	}
	return nil
}

func runHotelSearch(ctx context.Context, d *deps, w io.Writer, filters models.HotelFilters) int {
	if err := validateFilters(filters); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	hotels, err := d.client.SearchHotels(ctx, filters)
	if err != nil {
		return fail(w, err)
	}

	return d.print(w, hotels, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatHotelsHuman(hotels))
		return err
	})
}

func runHotelShow(ctx context.Context, d *deps, w io.Writer, id string) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	hotel, err := d.client.HotelDetails(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	return d.print(w, hotel, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatHotelHuman(hotel))
		return err
	})
}

// validateBooking checks dates and guests before anything is sent
func validateBooking(req models.BookingRequest) error {
	in, okIn := models.ParseDate(req.CheckIn)
	out, okOut := models.ParseDate(req.CheckOut)
	switch {
	case !okIn:
		return errors.New("--check-in must be a date (YYYY-MM-DD)")
	case !okOut:
		return errors.New("--check-out must be a date (YYYY-MM-DD)")
	case !out.After(in):
		return errors.New("--check-out must be after --check-in")
	case req.Guests < 1:
		return errors.New("--guests must be at least 1")
	}
	return nil
}

func runHotelBook(ctx context.Context, d *deps, w io.Writer, req models.BookingRequest) int {
	if err := validateBooking(req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	if req.RoomID == "" {
		hotel, err := d.client.HotelDetails(ctx, req.HotelID)
		if err != nil {
			return fail(w, err)
		}
		rooms := hotel.AvailableRooms(req.Guests)
		if len(rooms) == 0 {
			fmt.Fprintf(w, "Error: no available room at %s fits %d guest(s)\n", hotel.Name, req.Guests)
			return exitFailed
		}
		req.RoomID = rooms[0].ID
	}

	booking, err := d.client.CreateBooking(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	return d.print(w, booking, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Booked %s at %s.\n\n%s\n", booking.ID, booking.HotelName, formatBookingHuman(booking))
		return err
	})
}

// formatHotelsHuman formats search results as a table
func formatHotelsHuman(hotels []models.Hotel) string {
	if len(hotels) == 0 {
		return "No hotels match your search."
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tRATING\tPRICE/NIGHT")
	for _, h := range hotels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f (%d)\t%s\n",
			h.ID, h.Name, h.Location, h.Rating, h.ReviewCount, formatMoney(h.PricePerNight))
	}
	tw.Flush()
	fmt.Fprintf(&sb, "\n%d hotel(s)", len(hotels))
	return sb.String()
}

// formatHotelHuman formats one hotel with its rooms
func formatHotelHuman(h *models.Hotel) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  (%s)\n", h.Name, h.ID)
	fmt.Fprintf(&sb, "Location:   %s\n", h.Location)
	if h.Location.Address != "" {
		fmt.Fprintf(&sb, "Address:    %s\n", h.Location.Address)
	}
	fmt.Fprintf(&sb, "Rating:     %.1f from %d reviews\n", h.Rating, h.ReviewCount)
	fmt.Fprintf(&sb, "From:       %s per night\n", formatMoney(h.PricePerNight))
	if len(h.Amenities) > 0 {
		fmt.Fprintf(&sb, "Amenities:  %s\n", strings.Join(h.Amenities, ", "))
	}
	if h.CancellationPolicy != "" {
		fmt.Fprintf(&sb, "Policy:     %s\n", h.CancellationPolicy)
	}
	if h.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", h.Description)
	}

	if len(h.Rooms) == 0 {
		return strings.TrimRight(sb.String(), "\n")
	}

	sb.WriteString("\nRooms:\n")
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTYPE\tBED\tGUESTS\tPRICE\tAVAILABLE")
	for _, r := range h.Rooms {
		avail := "no"
		if r.Available {
			avail = "yes"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.Type, r.BedType, r.MaxGuests, formatMoney(r.Price), avail)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
