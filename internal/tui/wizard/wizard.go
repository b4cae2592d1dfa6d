// ABOUTME: Password recovery wizard as a bubbletea model
// ABOUTME: Shows a progress panel and one huh form per recovery step

package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/recovery"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/styles"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/widgets"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

// DoneMsg is sent when the user leaves the success screen
type DoneMsg struct {
	Email string
}

// CancelledMsg is sent when the wizard is abandoned
type CancelledMsg struct{}

// stepResultMsg reports the outcome of a flow request
type stepResultMsg struct {
	resend bool
	err    error
}

// Step names for progress indicator
var stepNames = []string{"Email", "Verify", "New password", "Done"}

// Wizard drives a recovery.Flow through its steps
type Wizard struct {
	ctx   context.Context
	flow  *recovery.Flow
	form  *huh.Form
	width int
	busy  bool
	err   string
	email string // the flow forgets it once done

	// Form field values
	emailInput string
	otp        string
	password   string
	confirm    string
}

// New creates a wizard at the flow's current step
func New(ctx context.Context, flow *recovery.Flow) *Wizard {
	w := &Wizard{ctx: ctx, flow: flow, email: flow.Email()}
	w.form = w.createForm()
	return w
}

// Step returns the flow's current step
func (w *Wizard) Step() recovery.Step {
	return w.flow.State().Step()
}

func (w *Wizard) createForm() *huh.Form {
	step := w.Step()

	switch step {
	case recovery.StepEmail:
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Description("We'll send a 6-digit code to this address").
					Placeholder("you@example.com").
					Value(&w.emailInput).
					Validate(validate.EmailErr),
			).Title(step.Title()),
		).WithTheme(styles.FormTheme())

	case recovery.StepOTP:
		w.otp = ""
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Code").
					Description(fmt.Sprintf("Enter the code sent to %s (ctrl+r resends it)", w.flow.Email())).
					Placeholder("123456").
					CharLimit(validate.OTPLength).
					Value(&w.otp).
					Validate(func(s string) error { return validate.OTPErr(validate.DigitsOnly(s)) }),
			).Title(step.Title()),
		).WithTheme(styles.FormTheme())

	case recovery.StepReset:
		w.password, w.confirm = "", ""
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("New password").
					EchoMode(huh.EchoModePassword).
					Value(&w.password).
					Validate(validate.PasswordErr),
				huh.NewInput().
					Title("Confirm password").
					EchoMode(huh.EchoModePassword).
					Value(&w.confirm),
			).Title(step.Title()),
		).WithTheme(styles.FormTheme())
	}

	return nil
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	if w.form == nil {
		return nil
	}
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width

	case stepResultMsg:
		return w, w.handleResult(msg)

	case tea.KeyMsg:
		if w.busy {
			return w, nil
		}
		if cmd, handled := w.handleKey(msg); handled {
			return w, cmd
		}
	}

	if w.form == nil {
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted && !w.busy {
		return w, w.submit()
	}
	return w, cmd
}

func (w *Wizard) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		if w.Step() == recovery.StepOTP {
			if err := w.flow.GoBack(); err == nil {
				w.err = ""
				w.email = ""
				w.form = w.createForm()
				return w.form.Init(), true
			}
		}
		w.flow.Restart()
		return func() tea.Msg { return CancelledMsg{} }, true

	case "ctrl+r":
		if w.Step() == recovery.StepOTP {
			return w.run(true, func(ctx context.Context) error { return w.flow.ResendCode(ctx) }), true
		}

	case "enter":
		if w.Step() == recovery.StepDone {
			email := w.email
			return func() tea.Msg { return DoneMsg{Email: email} }, true
		}
	}
	return nil, false
}

// submit sends the completed form's values to the flow
func (w *Wizard) submit() tea.Cmd {
	switch w.Step() {
	case recovery.StepEmail:
		email := strings.TrimSpace(w.emailInput)
		w.email = email
		return w.run(false, func(ctx context.Context) error { return w.flow.SendCode(ctx, email) })
	case recovery.StepOTP:
		otp := validate.DigitsOnly(w.otp)
		return w.run(false, func(ctx context.Context) error { return w.flow.VerifyCode(ctx, otp) })
	case recovery.StepReset:
		password, confirm := w.password, w.confirm
		return w.run(false, func(ctx context.Context) error { return w.flow.ResetPassword(ctx, password, confirm) })
	}
	return nil
}

// run executes a flow request off the update loop
func (w *Wizard) run(resend bool, fn func(context.Context) error) tea.Cmd {
	w.busy = true
	w.err = ""
	ctx := w.ctx
	return func() tea.Msg {
		return stepResultMsg{resend: resend, err: fn(ctx)}
	}
}

func (w *Wizard) handleResult(msg stepResultMsg) tea.Cmd {
	w.busy = false
	if msg.err != nil {
		w.err = w.failureText(msg.err)
	}
	// A resend leaves the code form untouched
	if msg.resend && msg.err == nil {
		return nil
	}
	w.form = w.createForm()
	if w.form == nil {
		return nil
	}
	return w.form.Init()
}

// failureText prefers the first field error for local validation failures
func (w *Wizard) failureText(err error) string {
	if errors.Is(err, recovery.ErrInvalidInput) {
		fields := w.flow.FieldErrors()
		for _, name := range []string{validate.FieldEmail, validate.FieldOTP, validate.FieldPassword, validate.FieldConfirmPassword} {
			if msg := fields[name]; msg != "" {
				return msg
			}
		}
	}
	if msg := w.flow.LastError(); msg != "" {
		return msg
	}
	return err.Error()
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Err returns the message shown for the last failure
func (w *Wizard) Err() string {
	return w.err
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if msg := w.flow.Message(); msg != "" {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " " + msg))
		sb.WriteString("\n\n")
	}
	if w.err != "" {
		sb.WriteString(styles.StatusCritical.Render("Error: " + w.err))
		sb.WriteString("\n\n")
	}

	switch {
	case w.busy:
		sb.WriteString("Please wait...")
	case w.Step() == recovery.StepDone:
		sb.WriteString(styles.Title.Render(recovery.StepDone.Title()))
		sb.WriteString("\n")
		sb.WriteString("Your password has been changed. Press Enter to sign in.")
	case w.form != nil:
		sb.WriteString(w.form.View())
	}

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(60, w.width-1)
	current := int(w.Step())

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case i < current || (i == current && current == len(stepNames)-1):
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case i == current:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │" leaves 5 cells of frame
	bar := widgets.StepBar(current+1, recovery.StepCount, width-5, styles.Primary)

	label := fmt.Sprintf("Step %d of %d", current+1, recovery.StepCount)
	topFill := max(0, width-5-lipgloss.Width(label))
	topBorder := "┌─ " + titleStyle.Render(label) + " " + strings.Repeat("─", topFill) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		"│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │",
		"│  " + bar + " │",
		"└" + strings.Repeat("─", width-2) + "┘",
	}, "\n"))
}
