// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width on every screen

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/tui/menu"
)

// checkFrame measures the first and last lines; panels inside the content use the same corners
func checkFrame(t *testing.T, view string, expectedWidth int) {
	t.Helper()

	lines := strings.Split(view, "\n")
	header, footer := lines[0], lines[len(lines)-1]

	if !strings.HasPrefix(header, "╭") {
		t.Fatalf("Header not found in output: %q", header)
	}
	if w := lipgloss.Width(header); w != expectedWidth {
		t.Errorf("header width: expected %d, got %d: %q", expectedWidth, w, header)
	}

	if !strings.HasPrefix(footer, "╰") {
		t.Fatalf("Footer not found in output: %q", footer)
	}
	if w := lipgloss.Width(footer); w != expectedWidth {
		t.Errorf("footer width: expected %d, got %d: %q", expectedWidth, w, footer)
	}
}

func TestFrameAlignment(t *testing.T) {
	for _, targetWidth := range []int{60, 80, 100, 120} {
		t.Run(fmt.Sprintf("width_%d", targetWidth), func(t *testing.T) {
			app, _ := newApp(t)
			app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})

			// Frame uses width-1 to prevent wrapping, clamped to 80
			checkFrame(t, app.View(), max(80, targetWidth-1))
		})
	}
}

func TestFrameAlignmentSignedIn(t *testing.T) {
	actions := []menu.Action{menu.ActionDashboard, menu.ActionBookings, menu.ActionHotels, menu.ActionProfile}

	for _, action := range actions {
		t.Run(action.String(), func(t *testing.T) {
			app, _ := newSignedInApp(t)
			app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

			_, cmd := app.Update(menu.SelectedMsg{Action: action})
			run(t, app, cmd)

			checkFrame(t, app.View(), 99)
		})
	}
}

func TestFooterShortcutsPerScreen(t *testing.T) {
	app, _ := newSignedInApp(t)

	_, cmd := app.Update(menu.SelectedMsg{Action: menu.ActionBookings})
	run(t, app, cmd)

	footer := app.renderFooter()
	for _, hint := range []string{"Status", "Search", "Cancel"} {
		if !strings.Contains(footer, hint) {
			t.Errorf("expected %q in footer: %q", hint, footer)
		}
	}
}
