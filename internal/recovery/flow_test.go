// ABOUTME: Tests for the password recovery state machine
// ABOUTME: Uses a gomock gateway to assert which requests each step makes

package recovery

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/client/clienttest"
	"github.com/abhinavhh/hotel-booking-client/internal/mocks"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

const email = "ada@example.com"

func newFlow(t *testing.T) (*Flow, *mocks.MockGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	return New(gw), gw
}

// flowAt drives a fresh flow to the requested step
func flowAt(t *testing.T, step Step) (*Flow, *mocks.MockGateway) {
	t.Helper()
	f, gw := newFlow(t)
	ctx := context.Background()

	if step >= StepOTP {
		gw.EXPECT().SendResetCode(gomock.Any(), email).Return("OTP sent", nil)
		require.NoError(t, f.SendCode(ctx, email))
	}
	if step >= StepReset {
		gw.EXPECT().VerifyResetCode(gomock.Any(), email, "123456").Return("OTP verified", nil)
		require.NoError(t, f.VerifyCode(ctx, "123456"))
	}
	if step >= StepDone {
		gw.EXPECT().ResetPassword(gomock.Any(), email, "123456", "newpass").Return("Password reset", nil)
		require.NoError(t, f.ResetPassword(ctx, "newpass", "newpass"))
	}
	require.Equal(t, step, f.State().Step())
	return f, gw
}

func TestNewFlowStartsAtEmail(t *testing.T) {
	f, _ := newFlow(t)
	assert.Equal(t, EmailStep{}, f.State())
	assert.Empty(t, f.Email())
}

func TestSendCode_Success(t *testing.T) {
	f, gw := newFlow(t)
	gw.EXPECT().SendResetCode(gomock.Any(), email).Return("OTP sent to your email", nil)

	require.NoError(t, f.SendCode(context.Background(), email))
	assert.Equal(t, OTPStep{Email: email}, f.State())
	assert.Equal(t, "OTP sent to your email", f.Message())
	assert.False(t, f.Loading())
}

func TestSendCode_InvalidEmailMakesNoRequest(t *testing.T) {
	f, _ := newFlow(t)

	err := f.SendCode(context.Background(), "a@b")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, validate.MsgEmailInvalid, f.FieldErrors()[validate.FieldEmail])
	assert.Equal(t, StepEmail, f.State().Step())
}

func TestSendCode_FailureStays(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend message", &client.Error{Kind: client.KindRejected, Message: "No account found"}, "No account found"},
		{"opaque error", errors.New("boom"), MsgSendFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, gw := newFlow(t)
			gw.EXPECT().SendResetCode(gomock.Any(), email).Return("", tt.err)

			err := f.SendCode(context.Background(), email)
			assert.Error(t, err)
			assert.Equal(t, StepEmail, f.State().Step())
			assert.Equal(t, tt.want, f.LastError())
		})
	}
}

func TestVerifyCode_UsesHeldEmail(t *testing.T) {
	f, gw := flowAt(t, StepOTP)
	gw.EXPECT().VerifyResetCode(gomock.Any(), email, "654321").Return("OTP verified", nil)

	require.NoError(t, f.VerifyCode(context.Background(), "654321"))
	assert.Equal(t, ResetStep{Email: email, OTP: "654321"}, f.State())
}

func TestVerifyCode_Validation(t *testing.T) {
	for _, otp := range []string{"", "12345", "12a456", "1234567"} {
		t.Run(otp, func(t *testing.T) {
			f, _ := flowAt(t, StepOTP)
			err := f.VerifyCode(context.Background(), otp)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, StepOTP, f.State().Step())
			assert.NotEmpty(t, f.FieldErrors()[validate.FieldOTP])
		})
	}
}

func TestVerifyCode_RejectedStays(t *testing.T) {
	f, gw := flowAt(t, StepOTP)
	gw.EXPECT().VerifyResetCode(gomock.Any(), email, "000000").
		Return("", &client.Error{Kind: client.KindRejected, Status: http.StatusBadRequest, Message: client.MsgInvalidOTP})

	assert.Error(t, f.VerifyCode(context.Background(), "000000"))
	assert.Equal(t, OTPStep{Email: email}, f.State())
	assert.Equal(t, client.MsgInvalidOTP, f.LastError())
}

func TestResetPassword_ConfirmationGatesRequest(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		field    string
		want     string
	}{
		{"mismatch", "abcdef", "abcdeg", validate.FieldConfirmPassword, validate.MsgPasswordMismatch},
		{"empty confirmation", "abcdef", "", validate.FieldConfirmPassword, validate.MsgConfirmRequired},
		{"short password", "abcde", "abcde", validate.FieldPassword, validate.MsgPasswordShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No ResetPassword expectation: any call fails the test
			f, _ := flowAt(t, StepReset)

			err := f.ResetPassword(context.Background(), tt.password, tt.confirm)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.want, f.FieldErrors()[tt.field])
			assert.Equal(t, StepReset, f.State().Step())
		})
	}
}

func TestResetPassword_Success(t *testing.T) {
	f, _ := flowAt(t, StepDone)
	assert.Equal(t, DoneStep{}, f.State())
	assert.Equal(t, "Password reset", f.Message())
}

func TestGoBack(t *testing.T) {
	f, gw := flowAt(t, StepOTP)
	gw.EXPECT().VerifyResetCode(gomock.Any(), email, "999999").Return("", errors.New("nope"))
	_ = f.VerifyCode(context.Background(), "999999")
	require.Equal(t, "999999", f.EnteredOTP())

	require.NoError(t, f.GoBack())
	assert.Equal(t, EmailStep{}, f.State())
	assert.Empty(t, f.EnteredOTP())
	assert.Empty(t, f.LastError())
	assert.Empty(t, f.FieldErrors())
}

func TestOperationsFromWrongStep(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		at   Step
		op   func(f *Flow) error
	}{
		{"verify from email", StepEmail, func(f *Flow) error { return f.VerifyCode(ctx, "123456") }},
		{"reset from email", StepEmail, func(f *Flow) error { return f.ResetPassword(ctx, "abcdef", "abcdef") }},
		{"go back from email", StepEmail, func(f *Flow) error { return f.GoBack() }},
		{"resend from email", StepEmail, func(f *Flow) error { return f.ResendCode(ctx) }},
		{"send from otp", StepOTP, func(f *Flow) error { return f.SendCode(ctx, email) }},
		{"reset from otp", StepOTP, func(f *Flow) error { return f.ResetPassword(ctx, "abcdef", "abcdef") }},
		{"go back from reset", StepReset, func(f *Flow) error { return f.GoBack() }},
		{"verify from reset", StepReset, func(f *Flow) error { return f.VerifyCode(ctx, "123456") }},
		{"send from done", StepDone, func(f *Flow) error { return f.SendCode(ctx, email) }},
		{"reset from done", StepDone, func(f *Flow) error { return f.ResetPassword(ctx, "abcdef", "abcdef") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := flowAt(t, tt.at)
			before := f.State()

			assert.ErrorIs(t, tt.op(f), ErrWrongStep)
			assert.Equal(t, before, f.State())
		})
	}
}

func TestResendCode_KeepsState(t *testing.T) {
	f, gw := flowAt(t, StepOTP)
	gw.EXPECT().SendResetCode(gomock.Any(), email).Return("OTP resent", nil)

	require.NoError(t, f.ResendCode(context.Background()))
	assert.Equal(t, OTPStep{Email: email}, f.State())
	assert.Equal(t, "OTP resent", f.Message())
}

func TestRestart(t *testing.T) {
	f, _ := flowAt(t, StepDone)
	f.Restart()
	assert.Equal(t, EmailStep{}, f.State())
}

func TestStepTitles(t *testing.T) {
	assert.Equal(t, "Verify OTP", StepOTP.Title())
	assert.Equal(t, "success", StepDone.String())
}

func TestFlowAgainstBackend(t *testing.T) {
	backend := clienttest.New(t)
	c := client.New(backend.URL(), nil)
	f := New(c)
	ctx := context.Background()

	require.NoError(t, f.SendCode(ctx, clienttest.Email))
	assert.Error(t, f.VerifyCode(ctx, "000000"))
	assert.Equal(t, client.MsgInvalidOTP, f.LastError())

	require.NoError(t, f.VerifyCode(ctx, clienttest.OTP))
	require.NoError(t, f.ResetPassword(ctx, "brandnew", "brandnew"))
	assert.Equal(t, StepDone, f.State().Step())
	assert.Equal(t, "brandnew", backend.PasswordFor(clienttest.Email))

	for _, r := range backend.Requests() {
		assert.Empty(t, r.Authorization, "recovery requests must not carry a token: %s", r.Path)
	}
}
