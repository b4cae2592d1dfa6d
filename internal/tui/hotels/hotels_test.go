// ABOUTME: Tests for the hotel search screen
// ABOUTME: Covers sorting, search requests, details, and booking form validation

package hotels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
)

func sampleHotels() []models.Hotel {
	return []models.Hotel{
		{
			ID: "h-1", Name: "Harbor Inn", PricePerNight: 120, Rating: 4.2, ReviewCount: 210,
			Location:  models.Location{City: "Lisbon", Country: "Portugal", Address: "Rua do Cais 1"},
			Amenities: []string{"wifi", "breakfast"},
			Rooms: []models.Room{
				{ID: "r-1", Type: "Double", Price: 120, MaxGuests: 2, BedType: "Queen", Available: true},
				{ID: "r-2", Type: "Suite", Price: 220, MaxGuests: 4, BedType: "King", Available: false},
			},
		},
		{
			ID: "h-2", Name: "Grand Palace", PricePerNight: 340, Rating: 4.8, ReviewCount: 95,
			Location: models.Location{City: "Madrid", Country: "Spain"},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T) *Model {
	t.Helper()
	icons.SetNerdFonts(false)
	m := New(140, 40)
	m.SetResults(sampleHotels())
	return m
}

func TestResultsSortedByPopularity(t *testing.T) {
	m := loaded(t)

	if got := m.Results()[0].ID; got != "h-1" {
		t.Errorf("expected most reviewed hotel first, got %s", got)
	}
	view := m.View()
	for _, expected := range []string{"Search hotels", "Harbor Inn", "Lisbon, Portugal", "$340.00", "popular"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestSortCycles(t *testing.T) {
	m := loaded(t)

	m.Update(key("s"))
	if m.Filters().SortBy != models.SortPriceLow {
		t.Fatalf("expected wrap to price-low, got %q", m.Filters().SortBy)
	}
	if m.Results()[0].ID != "h-1" {
		t.Errorf("expected cheapest first, got %s", m.Results()[0].ID)
	}

	m.Update(key("s"))
	if m.Results()[0].ID != "h-2" {
		t.Errorf("expected most expensive first, got %s", m.Results()[0].ID)
	}
}

func TestSearchEmitsFilters(t *testing.T) {
	m := loaded(t)

	m.Update(key("/"))
	m.Update(key("Madrid"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected search command")
	}
	msg, ok := cmd().(SearchMsg)
	if !ok {
		t.Fatal("expected SearchMsg")
	}
	if msg.Filters.Location != "Madrid" || msg.Filters.SortBy != models.SortPopular {
		t.Errorf("unexpected filters %+v", msg.Filters)
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("expected loading indicator while searching")
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	m := New(140, 40)

	if _, cmd := m.Update(key("esc")); cmd != nil {
		t.Error("expected keys to be ignored before results arrive")
	}
}

func TestEnterRequestsDetails(t *testing.T) {
	m := loaded(t)
	m.Update(key("down"))

	_, cmd := m.Update(key("enter"))
	msg, ok := cmd().(DetailsRequestedMsg)
	if !ok || msg.ID != "h-2" {
		t.Errorf("expected details for h-2, got %#v", msg)
	}
}

func TestDetailView(t *testing.T) {
	m := loaded(t)
	h := sampleHotels()[0]
	m.SetDetail(&h)

	view := m.View()
	for _, expected := range []string{"Harbor Inn", "★★★★☆ 4.2", "210 reviews", "Rua do Cais 1", "wifi, breakfast", "Double", "unavailable"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected detail to contain %q\nView:\n%s", expected, view)
		}
	}

	m.Update(key("esc"))
	if m.Detail() != nil {
		t.Error("expected esc to return to the results")
	}
}

func TestBookUnavailableRoom(t *testing.T) {
	m := loaded(t)
	h := sampleHotels()[0]
	m.SetDetail(&h)

	m.Update(key("down"))
	if _, cmd := m.Update(key("b")); cmd != nil {
		t.Error("expected no form for an unavailable room")
	}
	if !strings.Contains(m.View(), "Suite is not available") {
		t.Errorf("expected status\nView:\n%s", m.View())
	}
}

func TestSubmitBooking(t *testing.T) {
	m := loaded(t)
	h := sampleHotels()[0]
	m.SetDetail(&h)

	m.Update(key("b"))
	if m.mode != modeBook {
		t.Fatal("expected booking form")
	}

	m.checkIn, m.checkOut, m.guests = "2025-06-01", "2025-06-04", " 2 "
	msg, ok := m.submitBooking()().(BookRequestedMsg)
	if !ok {
		t.Fatal("expected BookRequestedMsg")
	}
	want := models.BookingRequest{HotelID: "h-1", RoomID: "r-1", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Guests: 2}
	if msg.Request != want {
		t.Errorf("request = %+v, want %+v", msg.Request, want)
	}
}

func TestBookingValidators(t *testing.T) {
	if dateErr("2025-06-01") != nil || dateErr("June 1") == nil {
		t.Error("dateErr")
	}
	if stayErr("2025-06-04", "2025-06-01") == nil {
		t.Error("expected check-out before check-in to fail")
	}
	if stayErr("2025-06-01", "2025-06-04") != nil {
		t.Error("expected valid stay")
	}
	if guestsErr("0", 2) == nil || guestsErr("x", 2) == nil || guestsErr("3", 2) == nil {
		t.Error("expected invalid guest counts to fail")
	}
	if guestsErr("2", 2) != nil || guestsErr("9", 0) != nil {
		t.Error("expected valid guest counts")
	}
}

func TestNoResults(t *testing.T) {
	m := New(100, 30)
	m.SetResults(nil)

	if !strings.Contains(m.View(), "No hotels match your search.") {
		t.Errorf("expected empty state\nView:\n%s", m.View())
	}
}
