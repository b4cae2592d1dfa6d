// ABOUTME: User profile records and profile mutation payloads
// ABOUTME: Mirrors the /profile family of endpoints

package models

// Address is a postal address on the profile
type Address struct {
	Street  string `json:"street,omitempty" yaml:"street,omitempty"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty" yaml:"zipCode,omitempty"`
}

// Notifications toggles notification channels
type Notifications struct {
	Email bool `json:"email" yaml:"email"`
	SMS   bool `json:"sms" yaml:"sms"`
	Push  bool `json:"push" yaml:"push"`
}

// Preferences are display and notification settings
type Preferences struct {
	Currency      string        `json:"currency" yaml:"currency"`
	Language      string        `json:"language" yaml:"language"`
	Notifications Notifications `json:"notifications" yaml:"notifications"`
}

// Profile is the signed-in user's profile
type Profile struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Email         string       `json:"email" yaml:"email"`
	Phone         string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Avatar        string       `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	DateOfBirth   string       `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	Address       *Address     `json:"address,omitempty" yaml:"address,omitempty"`
	Preferences   *Preferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
	MemberSince   string       `json:"memberSince,omitempty" yaml:"memberSince,omitempty"`
	TotalBookings int          `json:"totalBookings,omitempty" yaml:"totalBookings,omitempty"`
	LoyaltyPoints int          `json:"loyaltyPoints,omitempty" yaml:"loyaltyPoints,omitempty"`
}

// ProfileUpdate is the body of PUT /profile. Nil or empty fields are left unchanged.
type ProfileUpdate struct {
	Name        string   `json:"name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// Empty reports whether the update carries no changes
func (u ProfileUpdate) Empty() bool {
	return u.Name == "" && u.Phone == "" && u.DateOfBirth == "" && (u.Address == nil || *u.Address == Address{})
}

// PasswordChange is the body of POST /profile/change-password
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
