// ABOUTME: forgot-password command driving the three-step recovery flow
// ABOUTME: Email, one-time code, then a confirmed new password

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/recovery"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

// maxAttempts bounds retries of the code and password steps
const maxAttempts = 3

// resendKeyword entered at the code prompt requests a fresh code
const resendKeyword = "resend"

var recoveryEmail string

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Reset a forgotten password with an emailed code",
	Long: `Request a one-time code by email, verify it, and choose a new password.
Type "resend" at the code prompt to have a new code sent.`,
	Run: runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
		flow := recovery.New(d.client).WithLogger(d.logger)
		return runForgotPassword(ctx, flow, d.prompt, w, recoveryEmail)
	}),
}

func init() {
	forgotPasswordCmd.Flags().StringVar(&recoveryEmail, "email", "", "Account email (prompted if omitted)")
	rootCmd.AddCommand(forgotPasswordCmd)
}

// runForgotPassword walks flow from the email step to completion
func runForgotPassword(ctx context.Context, flow *recovery.Flow, p Prompter, w io.Writer, email string) int {
	email, err := promptValue(p, email, "Email", validate.EmailErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	fmt.Fprintf(w, "%s\n", stepHeader(flow))
	if err := flow.SendCode(ctx, email); err != nil {
		return flowFailure(w, flow, err)
	}
	fmt.Fprintln(w, flow.Message())

	if code := verifyStep(ctx, flow, p, w); code != exitOK {
		return code
	}
	if code := resetStep(ctx, flow, p, w); code != exitOK {
		return code
	}

	fmt.Fprintln(w, flow.Message())
	fmt.Fprintln(w, `Password reset complete. Sign in with "hotelbook login".`)
	return exitOK
}

func verifyStep(ctx context.Context, flow *recovery.Flow, p Prompter, w io.Writer) int {
	fmt.Fprintf(w, "%s\n", stepHeader(flow))

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		otp, err := p.Input("Verification code", nil)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}

		if strings.EqualFold(otp, resendKeyword) {
			if err := flow.ResendCode(ctx); err != nil {
				return flowFailure(w, flow, err)
			}
			fmt.Fprintln(w, flow.Message())
			attempt--
			continue
		}

		lastErr = flow.VerifyCode(ctx, validate.DigitsOnly(otp))
		if lastErr == nil {
			return exitOK
		}
		if !retryable(lastErr) {
			return flowFailure(w, flow, lastErr)
		}
		fmt.Fprintf(w, "Error: %s\n", failureText(flow, lastErr))
	}
	return flowFailure(w, flow, lastErr)
}

func resetStep(ctx context.Context, flow *recovery.Flow, p Prompter, w io.Writer) int {
	fmt.Fprintf(w, "%s\n", stepHeader(flow))

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		password, err := p.Password("New password", nil)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		confirm, err := p.Password("Confirm password", nil)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}

		lastErr = flow.ResetPassword(ctx, password, confirm)
		if lastErr == nil {
			return exitOK
		}
		if !errors.Is(lastErr, recovery.ErrInvalidInput) {
			return flowFailure(w, flow, lastErr)
		}
		fmt.Fprintf(w, "Error: %s\n", failureText(flow, lastErr))
	}
	return flowFailure(w, flow, lastErr)
}

// retryable reports whether the code step may be attempted again
func retryable(err error) bool {
	return errors.Is(err, recovery.ErrInvalidInput) || exitCodeFor(err) == exitFailed
}

// stepHeader renders "Step 2 of 4: Verify code"
func stepHeader(flow *recovery.Flow) string {
	step := flow.State().Step()
	return fmt.Sprintf("Step %d of %d: %s", int(step)+1, recovery.StepCount, step.Title())
}

// failureText prefers the field message for local validation and the flow's
// error for backend failures
func failureText(flow *recovery.Flow, err error) string {
	if errors.Is(err, recovery.ErrInvalidInput) {
		errs := flow.FieldErrors()
		for _, field := range []string{validate.FieldEmail, validate.FieldOTP, validate.FieldPassword, validate.FieldConfirmPassword} {
			if msg := errs[field]; msg != "" {
				return msg
			}
		}
	}
	if msg := flow.LastError(); msg != "" {
		return msg
	}
	return err.Error()
}

func flowFailure(w io.Writer, flow *recovery.Flow, err error) int {
	fmt.Fprintf(w, "Error: %s\n", failureText(flow, err))
	if errors.Is(err, recovery.ErrInvalidInput) {
		return exitUsage
	}
	return exitCodeFor(err)
}
