// ABOUTME: Tests for the TUI menus
// ABOUTME: Validates options, navigation, and selection messages

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m *Menu, key tea.KeyMsg) tea.Msg {
	_, cmd := m.Update(key)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestAuthMenuOptions(t *testing.T) {
	m := NewAuth()

	if len(m.options) != 4 {
		t.Errorf("expected 4 options, got %d", len(m.options))
	}
	if m.Selected() != ActionSignIn {
		t.Errorf("expected sign in first, got %s", m.Selected())
	}
}

func TestMainMenuTitle(t *testing.T) {
	if !strings.Contains(NewMain("Ada").View(), "Welcome back, Ada") {
		t.Error("expected greeting with user name")
	}
	if !strings.Contains(NewMain("").View(), "Main menu") {
		t.Error("expected plain title without a user")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewAuth()

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.cursor)
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.Selected() != ActionForgotPassword {
		t.Errorf("expected forgot password, got %s", m.Selected())
	}

	for range 10 {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Selected() != ActionQuit {
		t.Errorf("expected cursor to stop at the last entry, got %s", m.Selected())
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMain("")
	press(m, tea.KeyMsg{Type: tea.KeyDown})

	msg := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := msg.(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", msg)
	}
	if sel.Action != ActionHotels {
		t.Errorf("expected hotels, got %s", sel.Action)
	}
}

func TestMenuCancel(t *testing.T) {
	m := NewAuth()
	if _, ok := press(m, tea.KeyMsg{Type: tea.KeyEsc}).(CancelledMsg); !ok {
		t.Error("expected CancelledMsg on esc")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionSignIn, "sign-in"},
		{ActionForgotPassword, "forgot-password"},
		{ActionBookings, "bookings"},
		{ActionSignOut, "sign-out"},
		{Action(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.action.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
