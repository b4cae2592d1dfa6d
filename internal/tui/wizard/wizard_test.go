// ABOUTME: Tests for the password recovery wizard
// ABOUTME: Drives each step against the fake backend and checks rendering

package wizard

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/client/clienttest"
	"github.com/abhinavhh/hotel-booking-client/internal/recovery"
	"github.com/abhinavhh/hotel-booking-client/internal/session"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
)

func newWizard(t *testing.T) (*Wizard, *clienttest.Backend) {
	t.Helper()
	icons.SetNerdFonts(false)
	backend := clienttest.New(t)
	c := client.New(backend.URL(), session.New(session.NewMemoryStore()))
	return New(context.Background(), recovery.New(c)), backend
}

// complete runs the current step's request as if the form had been submitted
func complete(t *testing.T, w *Wizard) {
	t.Helper()
	cmd := w.submit()
	if cmd == nil {
		t.Fatalf("no request for step %s", w.Step())
	}
	if !w.busy {
		t.Error("expected wizard to be busy while the request runs")
	}
	w.Update(cmd())
}

func TestWizardStartsAtEmail(t *testing.T) {
	w, _ := newWizard(t)

	if w.Step() != recovery.StepEmail {
		t.Errorf("expected email step, got %s", w.Step())
	}
	view := w.View()
	if !strings.Contains(view, "Step 1 of 4") {
		t.Errorf("expected progress label, got:\n%s", view)
	}
}

func TestWizardFullFlow(t *testing.T) {
	w, backend := newWizard(t)

	w.emailInput = clienttest.Email
	complete(t, w)
	if w.Step() != recovery.StepOTP {
		t.Fatalf("expected otp step, got %s (err %q)", w.Step(), w.Err())
	}
	if !strings.Contains(w.View(), "OTP sent to your email") {
		t.Errorf("expected backend message in view:\n%s", w.View())
	}

	w.otp = clienttest.OTP
	complete(t, w)
	if w.Step() != recovery.StepReset {
		t.Fatalf("expected reset step, got %s (err %q)", w.Step(), w.Err())
	}

	w.password, w.confirm = "newpass1", "newpass1"
	complete(t, w)
	if w.Step() != recovery.StepDone {
		t.Fatalf("expected done step, got %s (err %q)", w.Step(), w.Err())
	}
	if !strings.Contains(w.View(), "Press Enter to sign in") {
		t.Errorf("expected completion text:\n%s", w.View())
	}
	if got := backend.PasswordFor(clienttest.Email); got != "newpass1" {
		t.Errorf("expected password to be reset, got %q", got)
	}

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	done, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatal("expected DoneMsg on enter")
	}
	if done.Email != clienttest.Email {
		t.Errorf("expected email to be handed back, got %q", done.Email)
	}
}

func TestWizardWrongCodeStaysOnStep(t *testing.T) {
	w, _ := newWizard(t)
	w.emailInput = clienttest.Email
	complete(t, w)

	w.otp = "000000"
	complete(t, w)

	if w.Step() != recovery.StepOTP {
		t.Errorf("expected to stay at otp step, got %s", w.Step())
	}
	if w.Err() != client.MsgInvalidOTP {
		t.Errorf("expected default OTP failure, got %q", w.Err())
	}
}

func TestWizardMismatchShowsFieldError(t *testing.T) {
	w, backend := newWizard(t)
	w.emailInput = clienttest.Email
	complete(t, w)
	w.otp = clienttest.OTP
	complete(t, w)

	requests := len(backend.Requests())
	w.password, w.confirm = "newpass1", "other11"
	complete(t, w)

	if w.Err() != "Passwords do not match" {
		t.Errorf("expected mismatch message, got %q", w.Err())
	}
	if len(backend.Requests()) != requests {
		t.Error("mismatched confirmation must not reach the backend")
	}
}

func TestWizardUnknownEmail(t *testing.T) {
	w, _ := newWizard(t)
	w.emailInput = "nobody@example.com"
	complete(t, w)

	if w.Step() != recovery.StepEmail {
		t.Errorf("expected to stay at email step, got %s", w.Step())
	}
	if !strings.Contains(w.View(), "Error: No account found with that email") {
		t.Errorf("expected backend error in view:\n%s", w.View())
	}
}

func TestWizardResendKeepsStep(t *testing.T) {
	w, backend := newWizard(t)
	w.emailInput = clienttest.Email
	complete(t, w)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected resend command")
	}
	w.Update(cmd())

	if w.Step() != recovery.StepOTP {
		t.Errorf("expected to stay at otp step, got %s", w.Step())
	}
	sends := 0
	for _, r := range backend.Requests() {
		if r.Path == "/auth/forgot-password" {
			sends++
		}
	}
	if sends != 2 {
		t.Errorf("expected 2 code requests, got %d", sends)
	}
}

func TestWizardEscGoesBackFromCode(t *testing.T) {
	w, _ := newWizard(t)
	w.emailInput = clienttest.Email
	complete(t, w)

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.Step() != recovery.StepEmail {
		t.Errorf("expected esc to return to email step, got %s", w.Step())
	}
	if w.emailInput != clienttest.Email {
		t.Error("expected email input to be kept")
	}

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected esc at the email step to cancel")
	}
}

func TestWizardBusyIgnoresKeys(t *testing.T) {
	w, _ := newWizard(t)
	w.busy = true

	if _, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("expected keys to be ignored while busy")
	}
	if !strings.Contains(w.View(), "Please wait...") {
		t.Error("expected wait text while busy")
	}
}

func TestRenderProgressWidth(t *testing.T) {
	w, _ := newWizard(t)
	w.SetWidth(100)

	for i, line := range strings.Split(w.renderProgress(), "\n") {
		if n := len([]rune(line)); n != 99 {
			t.Errorf("line %d has %d cells, want 99: %q", i, n, line)
		}
	}
}
