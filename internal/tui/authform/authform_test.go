// ABOUTME: Tests for the sign-in and registration forms
// ABOUTME: Covers submission payloads, failure handling, and key routing

package authform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

func TestNewSignInPrefillsEmail(t *testing.T) {
	f := NewSignIn("ada@example.com", "")

	if f.Kind() != KindSignIn {
		t.Errorf("expected sign-in kind, got %d", f.Kind())
	}
	if f.email != "ada@example.com" {
		t.Errorf("expected pre-filled email, got %q", f.email)
	}
}

func TestSignInShowsNotice(t *testing.T) {
	f := NewSignIn("", "Session expired. Please log in again.")

	if !strings.Contains(f.View(), "Session expired. Please log in again.") {
		t.Error("expected notice in view")
	}
}

func TestSubmitTrimsAndMarksBusy(t *testing.T) {
	f := NewRegister()
	f.username = " grace "
	f.email = " grace@example.com "
	f.password = " secret1"

	msg, ok := f.submit()().(SubmitMsg)
	if !ok {
		t.Fatal("expected SubmitMsg")
	}
	if msg.Kind != KindRegister || msg.Username != "grace" || msg.Email != "grace@example.com" {
		t.Errorf("unexpected submit payload %+v", msg)
	}
	if msg.Password != " secret1" {
		t.Errorf("password must not be trimmed, got %q", msg.Password)
	}
	if !f.Busy() {
		t.Error("expected form to be busy after submit")
	}
	if !strings.Contains(f.View(), "Creating account...") {
		t.Error("expected progress text while busy")
	}
}

func TestFailReopensForm(t *testing.T) {
	f := NewSignIn("ada@example.com", "")
	f.password = "wrong-password"
	f.submit()

	f.Fail("Invalid email or password")

	if f.Busy() {
		t.Error("expected form to accept input again")
	}
	if f.password != "" {
		t.Error("expected password to be cleared")
	}
	if f.email != "ada@example.com" {
		t.Error("expected email to be kept")
	}
	if !strings.Contains(f.View(), "Error: Invalid email or password") {
		t.Errorf("expected error banner, got %q", f.View())
	}
}

func TestEscCancels(t *testing.T) {
	f := NewSignIn("", "")

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestBusyIgnoresKeys(t *testing.T) {
	f := NewSignIn("", "")
	f.busy = true

	if _, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("expected keys to be ignored while busy")
	}
}

func TestCheckConfirm(t *testing.T) {
	f := NewRegister()
	f.password = "secret1"

	if err := f.checkConfirm("secret1"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	err := f.checkConfirm("secret2")
	if err == nil || err.Error() != validate.MsgPasswordMismatch {
		t.Errorf("expected mismatch error, got %v", err)
	}
}
