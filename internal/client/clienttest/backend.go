// ABOUTME: In-memory fake of the booking backend for tests across packages
// ABOUTME: Serves the auth, dashboard, hotel, booking, and profile routes with chi

package clienttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

// Seeded account
const (
	Email    = "ada@example.com"
	Password = "secret1"
	Username = "ada"
	UserID   = "u-1"
	OTP      = "123456"
)

var signingKey = []byte("clienttest-signing-key")

// Recorded is one request seen by the backend
type Recorded struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	user     models.User
	password string
}

// Backend is a fake booking API. Tests may change the exported fields between requests.
type Backend struct {
	mu       sync.Mutex
	server   *httptest.Server
	accounts map[string]*account
	tokens   map[string]string
	expired  bool
	nextID   int
	requests []Recorded

	// LoginOmitsToken makes login succeed without a token field
	LoginOmitsToken bool
	// RegisterIssuesToken makes registration return a token
	RegisterIssuesToken bool

	Dashboard models.DashboardData
	Hotels    []models.Hotel
	Bookings  []models.Booking
	Profile   models.Profile
}

// New starts a backend seeded with one account and sample data.
// The server is closed when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		accounts: map[string]*account{
			Email: {
				user:     models.User{ID: UserID, Username: Username, Name: "Ada Lovelace", Email: Email},
				password: Password,
			},
		},
		tokens: make(map[string]string),
		nextID: 200,
	}
	b.seed()

	b.server = httptest.NewServer(b.routes())
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the API base URL, including the /api prefix
func (b *Backend) URL() string {
	return b.server.URL + "/api"
}

// Requests returns a copy of every request received so far
func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Recorded(nil), b.requests...)
}

// LastRequest returns the most recent request, or the zero value
func (b *Backend) LastRequest() Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Recorded{}
	}
	return b.requests[len(b.requests)-1]
}

// ExpireSessions makes every protected route answer 401
func (b *Backend) ExpireSessions() {
	b.mu.Lock()
	b.expired = true
	b.mu.Unlock()
}

// IssueToken mints a valid token for the seeded account without logging in
func (b *Backend) IssueToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(Email)
}

// PasswordFor returns the current password of email, or ""
func (b *Backend) PasswordFor(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if acct, ok := b.accounts[email]; ok {
		return acct.password
	}
	return ""
}

func (b *Backend) issueLocked(email string) string {
	acct := b.accounts[email]
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   acct.user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		ID:        fmt.Sprintf("t-%d", len(b.tokens)+1),
	}).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	b.tokens[token] = email
	return token
}

func (b *Backend) seed() {
	b.Hotels = []models.Hotel{
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
			Location:  models.Location{City: "Madrid", Country: "Spain"},
			Amenities: []string{"wifi", "pool", "spa"},
			Rooms:     []models.Room{{ID: "r-3", Type: "Deluxe", Price: 340, MaxGuests: 3, Available: true}},
		},
		{
			ID: "h-3", Name: "City Lodge", PricePerNight: 85, Rating: 3.9, ReviewCount: 400,
			Location:  models.Location{City: "Lisbon", Country: "Portugal"},
			Amenities: []string{"wifi"},
		},
	}

	b.Bookings = []models.Booking{
		{
			ID: "BK-100", HotelID: "h-1", HotelName: "Harbor Inn", Location: "Lisbon, Portugal",
			RoomType: "Double", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Guests: 2, Price: 360,
			Status: models.StatusConfirmed, BookingDate: "2025-05-01", PaymentStatus: models.PaymentPaid,
		},
		{
			ID: "BK-101", HotelID: "h-2", HotelName: "Grand Palace", Location: "Madrid, Spain",
			RoomType: "Deluxe", CheckIn: "2025-02-10", CheckOut: "2025-02-12", Guests: 1, Price: 680,
			Status: models.StatusCompleted, BookingDate: "2025-01-03", PaymentStatus: models.PaymentPaid,
		},
	}

	b.Dashboard = models.DashboardData{
		Stats: models.DashboardStats{TotalBookings: 2, UpcomingStays: 1, CancelledBookings: 0, TotalSpent: 1040},
		RecentBookings: []models.BookingSummary{
			{ID: "BK-100", HotelName: "Harbor Inn", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Price: 360, Status: models.StatusConfirmed},
		},
	}

	b.Profile = models.Profile{
		ID: UserID, Name: "Ada Lovelace", Email: Email, Phone: "+44 20 7946 0000",
		MemberSince: "2024-01-15", TotalBookings: 2, LoyaltyPoints: 1040,
		Preferences: &models.Preferences{Currency: "EUR", Language: "en", Notifications: models.Notifications{Email: true}},
	}
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", b.login)
		r.Post("/auth/register", b.register)
		r.Post("/auth/forgot-password", b.forgotPassword)
		r.Post("/auth/verify-otp", b.verifyOTP)
		r.Post("/auth/reset-password", b.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(b.requireToken)

			r.Get("/auth/me", b.me)
			r.Get("/dashboard", b.dashboard)
			r.Get("/hotels", b.listHotels)
			r.Get("/hotels/{id}", b.getHotel)
			r.Post("/bookings", b.createBooking)
			r.Get("/bookings", b.listBookings)
			r.Get("/bookings/{id}", b.getBooking)
			r.Post("/bookings/{id}/cancel", b.cancelBooking)
			r.Get("/profile", b.getProfile)
			r.Put("/profile", b.updateProfile)
			r.Post("/profile/change-password", b.changePassword)
			r.Put("/profile/preferences", b.updatePreferences)
			r.Post("/profile/avatar", b.uploadAvatar)
		})
	})
	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, Recorded{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, "/api"),
			Authorization: r.Header.Get("Authorization"),
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

		b.mu.Lock()
		_, known := b.tokens[token]
		expired := b.expired
		b.mu.Unlock()

		if !ok || !known || expired {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}
