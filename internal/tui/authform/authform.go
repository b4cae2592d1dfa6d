// ABOUTME: Sign-in and registration forms as bubbletea models
// ABOUTME: Wraps huh forms, validates locally, and emits a submit message

package authform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

// Kind selects which form is shown
type Kind int

const (
	KindSignIn Kind = iota
	KindRegister
)

// SubmitMsg carries validated input to the app, which performs the request
type SubmitMsg struct {
	Kind     Kind
	Username string
	Email    string
	Password string
}

// CancelledMsg is sent when the user leaves the form
type CancelledMsg struct{}

// Form is a sign-in or registration form
type Form struct {
	kind   Kind
	form   *huh.Form
	busy   bool
	banner string
	notice string

	username string
	email    string
	password string
	confirm  string
}

// NewSignIn creates a sign-in form. email pre-fills the address and notice is shown above it.
func NewSignIn(email, notice string) *Form {
	f := &Form{kind: KindSignIn, email: email, notice: notice}
	f.form = f.build()
	return f
}

// NewRegister creates a registration form
func NewRegister() *Form {
	f := &Form{kind: KindRegister}
	f.form = f.build()
	return f
}

// Kind reports which form this is
func (f *Form) Kind() Kind {
	return f.kind
}

// Busy reports whether a submission is waiting for the backend
func (f *Form) Busy() bool {
	return f.busy
}

func (f *Form) build() *huh.Form {
	email := huh.NewInput().
		Title("Email").
		Placeholder("you@example.com").
		Value(&f.email).
		Validate(validate.EmailErr)
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&f.password).
		Validate(validate.PasswordErr)

	if f.kind == KindSignIn {
		return huh.NewForm(
			huh.NewGroup(email, password).
				Title("Sign in").
				Description("Use the email and password for your account"),
		).WithTheme(styles.FormTheme())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&f.username).
				Validate(validate.NameErr),
			email,
			password,
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&f.confirm).
				Validate(f.checkConfirm),
		).Title("Create an account"),
	).WithTheme(styles.FormTheme())
}

func (f *Form) checkConfirm(s string) error {
	v := validate.New()
	if !v.ConfirmPassword(f.password, s) {
		return errors.New(v.Get(validate.FieldConfirmPassword))
	}
	return nil
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if f.busy {
			return f, nil
		}
		if key.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted && !f.busy {
		return f, f.submit()
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	f.busy = true
	f.banner = ""
	msg := SubmitMsg{
		Kind:     f.kind,
		Username: strings.TrimSpace(f.username),
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
	}
	return func() tea.Msg { return msg }
}

// Fail shows the backend message and reopens the form with passwords cleared
func (f *Form) Fail(message string) tea.Cmd {
	f.busy = false
	f.banner = message
	f.password = ""
	f.confirm = ""
	f.form = f.build()
	return f.form.Init()
}

// View implements tea.Model
func (f *Form) View() string {
	var b strings.Builder

	if f.notice != "" {
		b.WriteString(styles.StatusWarning.Render(f.notice))
		b.WriteString("\n\n")
	}
	if f.banner != "" {
		b.WriteString(styles.StatusCritical.Render("Error: " + f.banner))
		b.WriteString("\n\n")
	}

	if f.busy {
		if f.kind == KindSignIn {
			b.WriteString("Signing in...")
		} else {
			b.WriteString("Creating account...")
		}
		return b.String()
	}

	b.WriteString(f.form.View())
	return b.String()
}
