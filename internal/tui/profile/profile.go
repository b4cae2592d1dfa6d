// ABOUTME: Profile screen showing account details with edit and password forms
// ABOUTME: Emits update, password change, and avatar requests for the app to run

package profile

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/widgets"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

// UpdateRequestedMsg carries a completed edit form
type UpdateRequestedMsg struct {
	Update models.ProfileUpdate
}

// PasswordRequestedMsg carries a completed password form
type PasswordRequestedMsg struct {
	Change models.PasswordChange
}

// AvatarRequestedMsg asks the app to open the avatar picker
type AvatarRequestedMsg struct{}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

type mode int

const (
	modeView mode = iota
	modeEdit
	modePassword
)

// Model is the profile screen
type Model struct {
	profile *models.Profile
	mode    mode
	form    *huh.Form
	busy    bool
	status  string
	failed  bool
	width   int

	// Form field values
	name     string
	phone    string
	current  string
	password string
	confirm  string
}

// New creates the screen. profile may be nil while loading.
func New(profile *models.Profile, width int) *Model {
	return &Model{profile: profile, width: width}
}

// SetProfile replaces the displayed profile and leaves any form
func (m *Model) SetProfile(p *models.Profile) {
	m.profile = p
	m.mode = modeView
	m.form = nil
	m.busy = false
}

// Profile returns the displayed profile
func (m *Model) Profile() *models.Profile {
	return m.profile
}

// SetStatus shows a result line and closes any form. failed picks the error style.
func (m *Model) SetStatus(msg string, failed bool) {
	m.status = msg
	m.failed = failed
	m.busy = false
	m.mode = modeView
	m.form = nil
}

// SetWidth updates the render width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		return m, nil
	}
	if m.busy || m.profile == nil {
		return m, nil
	}

	if m.mode != modeView {
		return m, m.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""

	switch key.String() {
	case "e":
		m.mode = modeEdit
		m.form = m.createEditForm()
		return m, m.form.Init()
	case "p":
		m.mode = modePassword
		m.form = m.createPasswordForm()
		return m, m.form.Init()
	case "a":
		return m, func() tea.Msg { return AvatarRequestedMsg{} }
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.mode = modeView
		m.form = nil
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	return cmd
}

func (m *Model) createEditForm() *huh.Form {
	m.name = m.profile.Name
	m.phone = m.profile.Phone

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.name).
				Validate(validate.NameErr),
			huh.NewInput().
				Title("Phone").
				Placeholder("+1 555 0100").
				Value(&m.phone),
		).Title("Edit profile"),
	).WithTheme(styles.FormTheme())
}

func (m *Model) createPasswordForm() *huh.Form {
	m.current, m.password, m.confirm = "", "", ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&m.current).
				Validate(validate.PasswordErr),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(validate.PasswordErr),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirm).
				Validate(func(s string) error {
					if !validate.New().ConfirmPassword(m.password, s) {
						return errors.New(validate.MsgPasswordMismatch)
					}
					return nil
				}),
		).Title("Change password"),
	).WithTheme(styles.FormTheme())
}

// submit turns the completed form into a request message
func (m *Model) submit() tea.Cmd {
	m.busy = true

	switch m.mode {
	case modeEdit:
		update := models.ProfileUpdate{}
		if name := strings.TrimSpace(m.name); name != m.profile.Name {
			update.Name = name
		}
		if phone := strings.TrimSpace(m.phone); phone != m.profile.Phone {
			update.Phone = phone
		}
		if update.Empty() {
			m.SetStatus("Nothing to update", false)
			return nil
		}
		return func() tea.Msg { return UpdateRequestedMsg{Update: update} }

	case modePassword:
		change := models.PasswordChange{
			CurrentPassword: m.current,
			NewPassword:     m.password,
			ConfirmPassword: m.confirm,
		}
		m.current, m.password, m.confirm = "", "", ""
		return func() tea.Msg { return PasswordRequestedMsg{Change: change} }
	}

	m.busy = false
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.profile == nil {
		return "Loading profile..."
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " " + m.profile.Name))
	sb.WriteString("\n")

	config := widgets.DefaultCardConfig()
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountCard(icons.Hotel, "Bookings", m.profile.TotalBookings, "all time", config),
		widgets.CountCard(icons.Star, "Loyalty", m.profile.LoyaltyPoints, "points", config),
	))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderDetails())

	switch {
	case m.busy:
		sb.WriteString("\n")
		sb.WriteString("Saving...")
	case m.form != nil:
		sb.WriteString("\n")
		sb.WriteString(m.form.View())
	}

	if m.status != "" {
		style := styles.StatusOK
		if m.failed {
			style = styles.StatusCritical
		}
		sb.WriteString("\n")
		sb.WriteString(style.Render(m.status))
	}
	return sb.String()
}

func (m *Model) renderDetails() string {
	p := m.profile
	var sb strings.Builder

	field := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-14s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	field("Email", p.Email)
	field("Phone", p.Phone)
	field("Date of birth", models.FormatDate(p.DateOfBirth))
	if a := p.Address; a != nil {
		var parts []string
		for _, s := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		field("Address", strings.Join(parts, ", "))
	}
	field("Member since", models.FormatDate(p.MemberSince))
	field("Avatar", p.Avatar)
	if pr := p.Preferences; pr != nil {
		field("Currency", pr.Currency)
		field("Language", pr.Language)
		field("Notify", notifications(pr.Notifications))
	}

	return styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func notifications(n models.Notifications) string {
	var on []string
	if n.Email {
		on = append(on, "email")
	}
	if n.SMS {
		on = append(on, "sms")
	}
	if n.Push {
		on = append(on, "push")
	}
	if len(on) == 0 {
		return "off"
	}
	return strings.Join(on, ", ")
}
