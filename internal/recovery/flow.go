// ABOUTME: Password recovery state machine: email, one-time code, new password
// ABOUTME: Validates each step locally before calling the backend through a Gateway

package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

// Default failure messages when the backend gives none
const (
	MsgSendFailed   = client.MsgSendOTPFailed
	MsgVerifyFailed = client.MsgInvalidOTP
	MsgResetFailed  = client.MsgResetFailed
)

var (
	// ErrWrongStep is returned when an operation is called from a state that does not allow it
	ErrWrongStep = errors.New("operation not allowed in current step")
	// ErrInvalidInput is returned when local validation rejects the input
	ErrInvalidInput = errors.New("invalid input")
	// ErrBusy is returned while a previous request is still in flight
	ErrBusy = errors.New("request already in progress")
)

// Gateway is the subset of the backend the flow talks to
type Gateway interface {
	SendResetCode(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
}

// Flow drives one password recovery attempt. It is safe for concurrent use;
// at most one request runs at a time.
type Flow struct {
	gw     Gateway
	form   *validate.Form
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	enteredOTP string
	message    string
	lastErr    string
	loading    bool
}

// New starts a flow at the email step
func New(gw Gateway) *Flow {
	return &Flow{
		gw:     gw,
		form:   validate.New(),
		logger: slog.Default(),
		state:  EmailStep{},
	}
}

// WithLogger replaces the flow's logger
func (f *Flow) WithLogger(l *slog.Logger) *Flow {
	f.logger = l
	return f
}

// State returns the current state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Email returns the address codes are sent to, or "" at the email step
func (f *Flow) Email() string {
	switch s := f.State().(type) {
	case OTPStep:
		return s.Email
	case ResetStep:
		return s.Email
	default:
		return ""
	}
}

// EnteredOTP returns the last code submitted for verification
func (f *Flow) EnteredOTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enteredOTP
}

// Message returns the last backend success message
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// LastError returns the last request failure shown to the user
func (f *Flow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// FieldErrors returns the current validation errors by field
func (f *Flow) FieldErrors() map[string]string {
	return f.form.Errors()
}

// Loading reports whether a request is in flight
func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// SendCode requests a code for email. Allowed only at the email step.
func (f *Flow) SendCode(ctx context.Context, email string) error {
	if err := f.begin(StepEmail); err != nil {
		return err
	}
	if !f.form.Email(email) {
		return f.invalid(validate.FieldEmail)
	}

	f.logger.Info("Sending reset code", "email", validate.SanitizeForLog(email))
	msg, err := f.gw.SendResetCode(ctx, email)
	return f.finish(err, MsgSendFailed, func() {
		f.state = OTPStep{Email: email}
		f.message = msg
	})
}

// VerifyCode checks otp against the held email. Allowed only at the OTP step.
func (f *Flow) VerifyCode(ctx context.Context, otp string) error {
	if err := f.begin(StepOTP); err != nil {
		return err
	}

	f.mu.Lock()
	email := f.state.(OTPStep).Email
	f.enteredOTP = otp
	f.mu.Unlock()

	if !f.form.OTP(otp) {
		return f.invalid(validate.FieldOTP)
	}

	msg, err := f.gw.VerifyResetCode(ctx, email, otp)
	return f.finish(err, MsgVerifyFailed, func() {
		f.state = ResetStep{Email: email, OTP: otp}
		f.message = msg
	})
}

// ResetPassword sets the new password. Allowed only at the reset step.
// No request is made unless the password is valid and confirmed.
func (f *Flow) ResetPassword(ctx context.Context, newPassword, confirm string) error {
	if err := f.begin(StepReset); err != nil {
		return err
	}

	f.mu.Lock()
	rs := f.state.(ResetStep)
	f.mu.Unlock()

	pwOK := f.form.Password(newPassword)
	confirmOK := f.form.ConfirmPassword(newPassword, confirm)
	if !pwOK || !confirmOK {
		return f.invalid(validate.FieldPassword, validate.FieldConfirmPassword)
	}

	msg, err := f.gw.ResetPassword(ctx, rs.Email, rs.OTP, newPassword)
	return f.finish(err, MsgResetFailed, func() {
		f.state = DoneStep{}
		f.message = msg
	})
}

// ResendCode sends a fresh code to the held email. Allowed only at the OTP step;
// the state does not change.
func (f *Flow) ResendCode(ctx context.Context) error {
	if err := f.begin(StepOTP); err != nil {
		return err
	}

	f.mu.Lock()
	email := f.state.(OTPStep).Email
	f.mu.Unlock()

	msg, err := f.gw.SendResetCode(ctx, email)
	return f.finish(err, MsgSendFailed, func() {
		f.message = msg
	})
}

// GoBack returns from the OTP step to the email step, discarding the entered code
func (f *Flow) GoBack() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loading {
		return ErrBusy
	}
	if _, ok := f.state.(OTPStep); !ok {
		return fmt.Errorf("%w: go back from %s", ErrWrongStep, f.state.Step())
	}

	f.state = EmailStep{}
	f.enteredOTP = ""
	f.message = ""
	f.lastErr = ""
	f.form.Clear()
	return nil
}

// Restart abandons the attempt and returns to the email step
func (f *Flow) Restart() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = EmailStep{}
	f.enteredOTP = ""
	f.message = ""
	f.lastErr = ""
	f.loading = false
	f.form.Clear()
}

// begin checks the step, clears previous errors, and marks the flow busy
func (f *Flow) begin(want Step) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loading {
		return ErrBusy
	}
	if f.state.Step() != want {
		return fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, want, f.state.Step())
	}

	f.form.Clear()
	f.message = ""
	f.lastErr = ""
	f.loading = true
	return nil
}

// invalid ends an attempt that failed local validation
func (f *Flow) invalid(fields ...string) error {
	f.mu.Lock()
	f.loading = false
	f.mu.Unlock()
	return fmt.Errorf("%w: %s", ErrInvalidInput, f.form.First(fields...))
}

// finish ends an attempt, applying advance on success
func (f *Flow) finish(err error, fallback string, advance func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loading = false
	if err != nil {
		f.lastErr = failureMessage(err, fallback)
		f.logger.Warn("Recovery step failed", "step", f.state.Step().String(), "error", err)
		return err
	}
	advance()
	return nil
}

func failureMessage(err error, fallback string) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
