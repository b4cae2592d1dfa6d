// ABOUTME: Domain records exchanged with the booking backend
// ABOUTME: Users, dashboard aggregates, and shared date helpers

package models

import (
	"strings"
	"time"
)

// User is the account record returned by auth endpoints
type User struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

// DisplayName returns the best available label for the user
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// DashboardStats holds the aggregate counters shown on the dashboard
type DashboardStats struct {
	TotalBookings     int     `json:"totalBookings" yaml:"totalBookings"`
	UpcomingStays     int     `json:"upcomingStays" yaml:"upcomingStays"`
	CancelledBookings int     `json:"cancelledBookings" yaml:"cancelledBookings"`
	TotalSpent        float64 `json:"totalSpent" yaml:"totalSpent"`
}

// BookingSummary is the short booking form used in the dashboard's recent list
type BookingSummary struct {
	ID         string  `json:"id" yaml:"id"`
	HotelName  string  `json:"hotelName" yaml:"hotelName"`
	HotelImage string  `json:"hotelImage,omitempty" yaml:"hotelImage,omitempty"`
	CheckIn    string  `json:"checkIn" yaml:"checkIn"`
	CheckOut   string  `json:"checkOut" yaml:"checkOut"`
	Price      float64 `json:"price" yaml:"price"`
	Status     string  `json:"status" yaml:"status"`
	RoomType   string  `json:"roomType,omitempty" yaml:"roomType,omitempty"`
	Location   string  `json:"location,omitempty" yaml:"location,omitempty"`
}

// DashboardData is the /dashboard payload
type DashboardData struct {
	Stats          DashboardStats   `json:"stats" yaml:"stats"`
	RecentBookings []BookingSummary `json:"recentBookings" yaml:"recentBookings"`
}

// dateLayouts are the formats the backend has been seen to emit for dates
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a backend date string, accepting date-only and timestamp forms
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a backend date as "Jan 2, 2006", or the raw string if unparseable
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}
