// ABOUTME: Booking records and client-side booking list filtering
// ABOUTME: Filters by status, free-text query, and check-in date range

package models

import (
	"strings"
	"time"
)

// Booking statuses
const (
	StatusConfirmed = "Confirmed"
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// Payment statuses
const (
	PaymentPaid     = "Paid"
	PaymentPending  = "Pending"
	PaymentRefunded = "Refunded"
)

// StatusFilterAll disables status filtering
const StatusFilterAll = "all"

// Booking is a reservation belonging to the signed-in user
type Booking struct {
	ID              string  `json:"id" yaml:"id"`
	HotelID         string  `json:"hotelId" yaml:"hotelId"`
	HotelName       string  `json:"hotelName" yaml:"hotelName"`
	HotelImage      string  `json:"hotelImage,omitempty" yaml:"hotelImage,omitempty"`
	Location        string  `json:"location" yaml:"location"`
	RoomType        string  `json:"roomType" yaml:"roomType"`
	CheckIn         string  `json:"checkIn" yaml:"checkIn"`
	CheckOut        string  `json:"checkOut" yaml:"checkOut"`
	Guests          int     `json:"guests" yaml:"guests"`
	Price           float64 `json:"price" yaml:"price"`
	Status          string  `json:"status" yaml:"status"`
	BookingDate     string  `json:"bookingDate" yaml:"bookingDate"`
	PaymentStatus   string  `json:"paymentStatus" yaml:"paymentStatus"`
	SpecialRequests string  `json:"specialRequests,omitempty" yaml:"specialRequests,omitempty"`
}

// Cancellable reports whether the booking can still be cancelled by the user
func (b *Booking) Cancellable() bool {
	return b.Status == StatusConfirmed
}

// DateRange bounds check-in dates, inclusive on both ends
type DateRange struct {
	Start string
	End   string
}

// BookingFilters narrows a booking list. Zero values mean "not set".
type BookingFilters struct {
	Status      string
	SearchQuery string
	DateRange   *DateRange
}

// BookingRequest is the body of POST /bookings
type BookingRequest struct {
	HotelID         string `json:"hotelId" yaml:"hotelId"`
	RoomID          string `json:"roomId" yaml:"roomId"`
	CheckIn         string `json:"checkIn" yaml:"checkIn"`
	CheckOut        string `json:"checkOut" yaml:"checkOut"`
	Guests          int    `json:"guests" yaml:"guests"`
	SpecialRequests string `json:"specialRequests,omitempty" yaml:"specialRequests,omitempty"`
}

// FilterBookings applies status, search, and date range filters.
// The input slice is not modified.
func FilterBookings(bookings []Booking, f BookingFilters) []Booking {
	status := strings.ToLower(f.Status)
	query := strings.ToLower(f.SearchQuery)

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.DateRange != nil {
		start, hasStart = ParseDate(f.DateRange.Start)
		end, hasEnd = ParseDate(f.DateRange.End)
	}

	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if status != "" && status != StatusFilterAll && strings.ToLower(b.Status) != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(b.HotelName), query) &&
			!strings.Contains(strings.ToLower(b.Location), query) &&
			!strings.Contains(strings.ToLower(b.ID), query) {
			continue
		}
		if hasStart || hasEnd {
			ci, ok := ParseDate(b.CheckIn)
			if !ok || (hasStart && ci.Before(start)) || (hasEnd && ci.After(end)) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
