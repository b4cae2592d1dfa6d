// ABOUTME: Route handlers for the fake booking backend
// ABOUTME: Implements just enough behavior to exercise the client end to end

package clienttest

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !readJSON(r, &creds) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[creds.Email]
	if !ok || acct.password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}

	if b.LoginOmitsToken {
		writeJSON(w, http.StatusOK, map[string]any{"user": acct.user})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": b.issueLocked(creds.Email), "user": acct.user})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var reg struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !readJSON(r, &reg) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[reg.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
		return
	}

	b.nextID++
	user := models.User{ID: fmt.Sprintf("u-%d", b.nextID), Username: reg.Username, Email: reg.Email}
	b.accounts[reg.Email] = &account{user: user, password: reg.Password}

	resp := map[string]any{"user": user, "message": "Registration successful"}
	if b.RegisterIssuesToken {
		resp["token"] = b.issueLocked(reg.Email)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (b *Backend) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !readJSON(r, &body) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	_, ok := b.accounts[body.Email]
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No account found with that email"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
}

func (b *Backend) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !readJSON(r, &body) || body.OTP != OTP {
		// No message field: the client falls back to its own default
		writeJSON(w, http.StatusBadRequest, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP verified"})
}

func (b *Backend) resetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if !readJSON(r, &body) || body.OTP != OTP {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid or expired OTP"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[body.Email]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No account found with that email"})
		return
	}
	acct.password = body.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

func (b *Backend) currentAccount(r *http.Request) *account {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return b.accounts[b.tokens[token]]
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": b.currentAccount(r).user})
}

func (b *Backend) dashboard(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.Dashboard)
}

func (b *Backend) listHotels(w http.ResponseWriter, r *http.Request) {
	location := strings.ToLower(r.URL.Query().Get("location"))

	b.mu.Lock()
	defer b.mu.Unlock()

	hotels := make([]models.Hotel, 0, len(b.Hotels))
	for _, h := range b.Hotels {
		if location != "" && !strings.Contains(strings.ToLower(h.Location.String()), location) {
			continue
		}
		hotels = append(hotels, h)
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
}

func (b *Backend) getHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, h := range b.Hotels {
		if h.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"hotel": h})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Hotel not found"})
}

func (b *Backend) createBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if !readJSON(r, &req) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var hotel *models.Hotel
	for i := range b.Hotels {
		if b.Hotels[i].ID == req.HotelID {
			hotel = &b.Hotels[i]
		}
	}
	if hotel == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Hotel not found"})
		return
	}

	roomType := ""
	price := hotel.PricePerNight
	for _, room := range hotel.Rooms {
		if room.ID == req.RoomID {
			roomType, price = room.Type, room.Price
		}
	}

	b.nextID++
	booking := models.Booking{
		ID:              fmt.Sprintf("BK-%d", b.nextID),
		HotelID:         hotel.ID,
		HotelName:       hotel.Name,
		Location:        hotel.Location.String(),
		RoomType:        roomType,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		Price:           price,
		Status:          models.StatusConfirmed,
		PaymentStatus:   models.PaymentPending,
		SpecialRequests: req.SpecialRequests,
	}
	b.Bookings = append(b.Bookings, booking)
	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

func (b *Backend) listBookings(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"bookings": b.Bookings})
}

func (b *Backend) getBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, bk := range b.Bookings {
		if bk.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"booking": bk})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (b *Backend) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.Bookings {
		if b.Bookings[i].ID != id {
			continue
		}
		if !b.Bookings[i].Cancellable() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Booking cannot be cancelled"})
			return
		}
		b.Bookings[i].Status = models.StatusCancelled
		b.Bookings[i].PaymentStatus = models.PaymentRefunded
		writeJSON(w, http.StatusOK, map[string]any{"booking": b.Bookings[i]})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (b *Backend) getProfile(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"profile": b.Profile})
}

func (b *Backend) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if !readJSON(r, &update) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Name != "" {
		b.Profile.Name = update.Name
	}
	if update.Phone != "" {
		b.Profile.Phone = update.Phone
	}
	if update.DateOfBirth != "" {
		b.Profile.DateOfBirth = update.DateOfBirth
	}
	if update.Address != nil {
		b.Profile.Address = update.Address
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": b.Profile})
}

func (b *Backend) changePassword(w http.ResponseWriter, r *http.Request) {
	var change models.PasswordChange
	if !readJSON(r, &change) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acct := b.currentAccount(r)
	if acct.password != change.CurrentPassword {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Current password is incorrect"})
		return
	}
	acct.password = change.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}

func (b *Backend) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if !readJSON(r, &prefs) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.Profile.Preferences = &prefs
	writeJSON(w, http.StatusOK, map[string]any{"profile": b.Profile})
}

func (b *Backend) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
		return
	}
	defer file.Close()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.Profile.Avatar = "/uploads/" + filepath.Base(header.Filename)
	writeJSON(w, http.StatusOK, map[string]any{"profile": b.Profile})
}
