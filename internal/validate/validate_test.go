// ABOUTME: Tests for form validation predicates
// ABOUTME: Covers boundary cases and error map side effects

package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		msg   string
	}{
		{"empty", "", false, MsgEmailRequired},
		{"no dot in domain", "a@b", false, MsgEmailInvalid},
		{"valid short", "a@b.co", true, ""},
		{"no at", "guest.example.com", false, MsgEmailInvalid},
		{"double at", "a@@b.co", false, MsgEmailInvalid},
		{"whitespace in local", "a b@c.io", false, MsgEmailInvalid},
		{"trailing dot only", "a@b.", false, MsgEmailInvalid},
		{"subdomain", "guest@mail.hotel.example", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			if got := f.Email(tt.input); got != tt.valid {
				t.Errorf("Email(%q) = %v, want %v", tt.input, got, tt.valid)
			}
			if got := f.Get(FieldEmail); got != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, got)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		msg   string
	}{
		{"", false, MsgPasswordRequired},
		{"abcde", false, MsgPasswordShort},
		{"abcdef", true, ""},
		{"ünïcø", false, MsgPasswordShort},
		{"ünïcød", true, ""},
	}

	for _, tt := range tests {
		f := New()
		if got := f.Password(tt.input); got != tt.valid {
			t.Errorf("Password(%q) = %v, want %v", tt.input, got, tt.valid)
		}
		if got := f.Get(FieldPassword); got != tt.msg {
			t.Errorf("Password(%q): expected message %q, got %q", tt.input, tt.msg, got)
		}
	}
}

func TestOTP(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		msg   string
	}{
		{"", false, MsgOTPRequired},
		{"12345", false, MsgOTPInvalid},
		{"123456", true, ""},
		{"12a456", false, MsgOTPInvalid},
		{"1234567", false, MsgOTPInvalid},
		{"١٢٣٤٥٦", false, MsgOTPInvalid},
	}

	for _, tt := range tests {
		f := New()
		if got := f.OTP(tt.input); got != tt.valid {
			t.Errorf("OTP(%q) = %v, want %v", tt.input, got, tt.valid)
		}
		if got := f.Get(FieldOTP); got != tt.msg {
			t.Errorf("OTP(%q): expected message %q, got %q", tt.input, tt.msg, got)
		}
	}
}

func TestConfirmPassword(t *testing.T) {
	f := New()
	if f.ConfirmPassword("secret1", "") {
		t.Error("expected empty confirmation to fail")
	}
	if got := f.Get(FieldConfirmPassword); got != MsgConfirmRequired {
		t.Errorf("expected %q, got %q", MsgConfirmRequired, got)
	}

	if f.ConfirmPassword("secret1", "secret2") {
		t.Error("expected mismatch to fail")
	}
	if got := f.Get(FieldConfirmPassword); got != MsgPasswordMismatch {
		t.Errorf("expected %q, got %q", MsgPasswordMismatch, got)
	}

	if !f.ConfirmPassword("secret1", "secret1") {
		t.Error("expected matching confirmation to pass")
	}
}

func TestName(t *testing.T) {
	f := New()
	if f.Name("   ") {
		t.Error("expected blank name to fail")
	}
	if !f.Name("Ada") {
		t.Error("expected name to pass")
	}
}

func TestPassingPredicateClearsPriorError(t *testing.T) {
	f := New()
	f.Email("")
	if f.Valid() {
		t.Fatal("expected form to be invalid after empty email")
	}

	f.Email("guest@example.com")
	if got := f.Get(FieldEmail); got != "" {
		t.Errorf("expected email error cleared, got %q", got)
	}
	if !f.Valid() {
		t.Error("expected form to be valid")
	}
}

func TestClear(t *testing.T) {
	f := New()
	f.Email("")
	f.Password("abc")

	f.Clear()

	if len(f.Errors()) != 0 {
		t.Errorf("expected empty map after Clear, got %v", f.Errors())
	}
}

func TestFirst(t *testing.T) {
	f := New()
	f.Email("guest@example.com")
	f.Password("abc")

	if got := f.First(FieldEmail, FieldPassword); got != MsgPasswordShort {
		t.Errorf("expected first message %q, got %q", MsgPasswordShort, got)
	}
}

func TestErrAdapters(t *testing.T) {
	if EmailErr("a@b.co") != nil {
		t.Error("expected nil error for valid email")
	}
	if err := OTPErr("12a456"); err == nil || err.Error() != MsgOTPInvalid {
		t.Errorf("expected %q, got %v", MsgOTPInvalid, err)
	}
	if err := PasswordErr(""); err == nil || err.Error() != MsgPasswordRequired {
		t.Errorf("expected %q, got %v", MsgPasswordRequired, err)
	}
	if NameErr("") == nil {
		t.Error("expected error for empty name")
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := map[string]string{
		"12-34 56":  "123456",
		"abc":       "",
		"123456789": "123456",
		"":          "",
	}
	for in, want := range tests {
		if got := DigitsOnly(in); got != want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := SanitizeForLog("a\nb\x00c\x7f"); got != "abc" {
		t.Errorf("expected control characters removed, got %q", got)
	}
}
