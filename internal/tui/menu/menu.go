// ABOUTME: Selection menus for the TUI (signed-out and signed-in)
// ABOUTME: Cursor list that emits the chosen action as a message

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
)

// Action identifies a menu entry
type Action int

const (
	ActionSignIn Action = iota
	ActionRegister
	ActionForgotPassword
	ActionDashboard
	ActionHotels
	ActionBookings
	ActionProfile
	ActionSignOut
	ActionQuit
)

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionSignIn:
		return "sign-in"
	case ActionRegister:
		return "register"
	case ActionForgotPassword:
		return "forgot-password"
	case ActionDashboard:
		return "dashboard"
	case ActionHotels:
		return "hotels"
	case ActionBookings:
		return "bookings"
	case ActionProfile:
		return "profile"
	case ActionSignOut:
		return "sign-out"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// SelectedMsg is sent when an entry is chosen
type SelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user backs out of the menu
type CancelledMsg struct{}

type option struct {
	label  string
	action Action
}

// Menu is a vertical list of actions
type Menu struct {
	title   string
	options []option
	cursor  int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Text)
)

// NewAuth creates the menu shown while signed out
func NewAuth() *Menu {
	return &Menu{
		title: "Welcome",
		options: []option{
			{label: "Sign in", action: ActionSignIn},
			{label: "Create an account", action: ActionRegister},
			{label: "Forgot password", action: ActionForgotPassword},
			{label: "Quit", action: ActionQuit},
		},
	}
}

// NewMain creates the menu shown while signed in
func NewMain(user string) *Menu {
	title := "Main menu"
	if user != "" {
		title = "Welcome back, " + user
	}
	return &Menu{
		title: title,
		options: []option{
			{label: "Dashboard", action: ActionDashboard},
			{label: "Search hotels", action: ActionHotels},
			{label: "My bookings", action: ActionBookings},
			{label: "Profile", action: ActionProfile},
			{label: "Sign out", action: ActionSignOut},
			{label: "Quit", action: ActionQuit},
		},
	}
}

// Selected returns the action under the cursor
func (m *Menu) Selected() Action {
	return m.options[m.cursor].action
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		action := m.Selected()
		return m, func() tea.Msg { return SelectedMsg{Action: action} }
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString("> " + selectedStyle.Render(opt.label) + "\n")
			continue
		}
		b.WriteString("  " + normalStyle.Render(opt.label) + "\n")
	}
	return b.String()
}
