// ABOUTME: Dashboard, hotel search, and booking operations on the gateway
// ABOUTME: All calls are protected and normalized to the gateway's error type

package client

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

// Default failure messages for booking operations
const (
	MsgDashboardFailed     = "Failed to load dashboard data"
	MsgHotelsFailed        = "Failed to load hotels"
	MsgHotelDetailsFailed  = "Failed to load hotel details"
	MsgCreateBookingFailed = "Failed to create booking"
	MsgBookingsFailed      = "Failed to load bookings"
	MsgBookingFailed       = "Failed to load booking details"
	MsgCancelFailed        = "Failed to cancel booking"
)

// Dashboard calls GET /dashboard. Missing sections default to zero values.
func (c *Client) Dashboard(ctx context.Context) (*models.DashboardData, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/dashboard", nil)
	if err != nil {
		return nil, withDefault(err, MsgDashboardFailed)
	}

	var data models.DashboardData
	if err := resp.Decode(&data); err != nil {
		return nil, err
	}
	if data.RecentBookings == nil {
		data.RecentBookings = []models.BookingSummary{}
	}
	return &data, nil
}

// Overview is the dashboard plus the signed-in user
type Overview struct {
	User      *models.User          `json:"user,omitempty" yaml:"user,omitempty"`
	Dashboard *models.DashboardData `json:"dashboard" yaml:"dashboard"`
}

// DashboardOverview fetches the dashboard and the current user concurrently.
// A failed user lookup is logged and leaves User nil; a failed dashboard fails the call.
func (c *Client) DashboardOverview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := c.Dashboard(gctx)
		if err != nil {
			return err
		}
		ov.Dashboard = data
		return nil
	})

	g.Go(func() error {
		user, err := c.Me(gctx)
		if err != nil {
			c.logger.Warn("Failed to fetch user", slog.String("error", Message(err)))
			return nil
		}
		ov.User = user
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// SearchHotels calls GET /hotels with the server-side filters, then refines
// the result locally with FilterHotels.
func (c *Client) SearchHotels(ctx context.Context, filters models.HotelFilters) ([]models.Hotel, error) {
	path := "/hotels"
	if q := filters.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, withDefault(err, MsgHotelsFailed)
	}

	var body struct {
		Hotels []models.Hotel `json:"hotels"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	return models.FilterHotels(body.Hotels, filters), nil
}

// HotelDetails calls GET /hotels/{id}
func (c *Client) HotelDetails(ctx context.Context, id string) (*models.Hotel, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/hotels/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, withDefault(err, MsgHotelDetailsFailed)
	}

	var body struct {
		Hotel *models.Hotel `json:"hotel"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Hotel == nil {
		return nil, contractError(resp.Status, errMissingField("hotel"))
	}
	return body.Hotel, nil
}

// CreateBooking calls POST /bookings
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	resp, err := c.Request(ctx, http.MethodPost, "/bookings", req)
	if err != nil {
		return nil, withDefault(err, MsgCreateBookingFailed)
	}

	var body struct {
		Booking *models.Booking `json:"booking"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Booking == nil {
		return nil, contractError(resp.Status, errMissingField("booking"))
	}
	return body.Booking, nil
}

// ListBookings calls GET /bookings
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/bookings", nil)
	if err != nil {
		return nil, withDefault(err, MsgBookingsFailed)
	}

	var body struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Bookings == nil {
		body.Bookings = []models.Booking{}
	}
	return body.Bookings, nil
}

// BookingDetails calls GET /bookings/{id}
func (c *Client) BookingDetails(ctx context.Context, id string) (*models.Booking, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/bookings/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, withDefault(err, MsgBookingFailed)
	}

	var body struct {
		Booking *models.Booking `json:"booking"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Booking == nil {
		return nil, contractError(resp.Status, errMissingField("booking"))
	}
	return body.Booking, nil
}

// CancelBooking calls POST /bookings/{id}/cancel
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	if _, err := c.Request(ctx, http.MethodPost, "/bookings/"+url.PathEscape(id)+"/cancel", nil); err != nil {
		return withDefault(err, MsgCancelFailed)
	}
	return nil
}
