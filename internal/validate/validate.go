// ABOUTME: Form validation predicates for auth and recovery forms
// ABOUTME: Each predicate records its field message in a shared error map

package validate

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Field names used as keys in the error map
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldOTP             = "otp"
	FieldName            = "username"
	FieldConfirmPassword = "confirmPassword"
)

// Messages surfaced next to form fields
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgPasswordRequired = "Password is required"
	MsgPasswordShort    = "Password must be at least 6 characters"
	MsgOTPRequired      = "OTP is required"
	MsgOTPInvalid       = "OTP must be 6 digits"
	MsgNameRequired     = "Name is required"
	MsgConfirmRequired  = "Please confirm your password"
	MsgPasswordMismatch = "Passwords do not match"
)

// MinPasswordLength is the shortest accepted password, counted in characters
const MinPasswordLength = 6

// OTPLength is the number of digits in a one-time code
const OTPLength = 6

// emailPattern requires local@domain.tld with no whitespace or extra @ in either part
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form collects per-field validation messages for a single form.
// An empty message means the field currently has no error.
type Form struct {
	mu     sync.Mutex
	errors map[string]string
}

// New creates an empty form error map
func New() *Form {
	return &Form{errors: map[string]string{}}
}

func (f *Form) set(field, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errors == nil {
		f.errors = map[string]string{}
	}
	f.errors[field] = msg
}

// Set records a message for a field
func (f *Form) Set(field, msg string) {
	f.set(field, msg)
}

// Email validates an email address and records the result under "email"
func (f *Form) Email(s string) bool {
	msg := emailMessage(s)
	f.set(FieldEmail, msg)
	return msg == ""
}

// Password validates password strength and records the result under "password"
func (f *Form) Password(s string) bool {
	msg := passwordMessage(s)
	f.set(FieldPassword, msg)
	return msg == ""
}

// OTP validates a one-time code and records the result under "otp"
func (f *Form) OTP(s string) bool {
	msg := otpMessage(s)
	f.set(FieldOTP, msg)
	return msg == ""
}

// Name validates a display name and records the result under "username"
func (f *Form) Name(s string) bool {
	msg := nameMessage(s)
	f.set(FieldName, msg)
	return msg == ""
}

// ConfirmPassword checks the confirmation value against the password
func (f *Form) ConfirmPassword(password, confirm string) bool {
	msg := confirmMessage(password, confirm)
	f.set(FieldConfirmPassword, msg)
	return msg == ""
}

// Clear resets the error map to empty
func (f *Form) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = map[string]string{}
}

// Get returns the message for a field, or "" if the field has no error
func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// Errors returns a copy of the error map
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Valid reports whether no field currently carries a message
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range f.errors {
		if msg != "" {
			return false
		}
	}
	return true
}

// First returns the first non-empty message in field order, for single-line displays
func (f *Form) First(fields ...string) string {
	for _, field := range fields {
		if msg := f.Get(field); msg != "" {
			return msg
		}
	}
	return ""
}

func emailMessage(s string) string {
	if s == "" {
		return MsgEmailRequired
	}
	if !emailPattern.MatchString(s) {
		return MsgEmailInvalid
	}
	return ""
}

func passwordMessage(s string) string {
	if s == "" {
		return MsgPasswordRequired
	}
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return MsgPasswordShort
	}
	return ""
}

func otpMessage(s string) string {
	if s == "" {
		return MsgOTPRequired
	}
	if len(s) != OTPLength {
		return MsgOTPInvalid
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return MsgOTPInvalid
		}
	}
	return ""
}

func nameMessage(s string) string {
	if strings.TrimSpace(s) == "" {
		return MsgNameRequired
	}
	return ""
}

func confirmMessage(password, confirm string) string {
	if confirm == "" {
		return MsgConfirmRequired
	}
	if password != confirm {
		return MsgPasswordMismatch
	}
	return ""
}

// EmailErr adapts the email rule to an error-returning validator (huh fields)
func EmailErr(s string) error { return asError(emailMessage(s)) }

// PasswordErr adapts the password rule to an error-returning validator
func PasswordErr(s string) error { return asError(passwordMessage(s)) }

// OTPErr adapts the OTP rule to an error-returning validator
func OTPErr(s string) error { return asError(otpMessage(s)) }

// NameErr adapts the name rule to an error-returning validator
func NameErr(s string) error { return asError(nameMessage(s)) }

func asError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

// DigitsOnly strips non-digits and truncates to the OTP length, matching
// how the code input field accepts keystrokes
func DigitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
			if sb.Len() == OTPLength {
				break
			}
		}
	}
	return sb.String()
}

// SanitizeForLog removes control characters from user input before it is logged
func SanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
