// ABOUTME: Sign-in commands: login, register, logout, and whoami
// ABOUTME: Credentials are prompted for and the token lands in the configured slot

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/session"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

var (
	loginEmail       string
	registerEmail    string
	registerUsername string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the booking service",
	Long: `Sign in with your email and password. The session token is stored in the
configured token slot so later commands run as you.

Example:
  echo "$PASSWORD" | hotelbook login --email ada@example.com --password-stdin`,
	Run: runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
		return runLogin(ctx, d, w, loginEmail)
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Run: runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
		return runRegister(ctx, d, w, registerUsername, registerEmail)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	Run:   runCommand(runLogout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run:   runCommand(runWhoami),
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Display name (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email (prompted if omitted)")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// authSummary is what login and register print. The token is never echoed.
type authSummary struct {
	User     *models.User `json:"user,omitempty" yaml:"user,omitempty"`
	SignedIn bool         `json:"signedIn" yaml:"signedIn"`
	Profile  string       `json:"profile" yaml:"profile"`
}

// promptValue returns preset when set, otherwise asks for it
func promptValue(p Prompter, preset, title string, check func(string) error) (string, error) {
	if preset = strings.TrimSpace(preset); preset != "" {
		return preset, check(preset)
	}
	return p.Input(title, check)
}

// runLogin prompts for missing credentials and signs in
func runLogin(ctx context.Context, d *deps, w io.Writer, email string) int {
	email, err := promptValue(d.prompt, email, "Email", validate.EmailErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	password, err := d.prompt.Password("Password", validate.PasswordErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	res, err := d.client.Login(ctx, client.Credentials{Email: email, Password: password})
	if err != nil {
		return fail(w, err)
	}

	summary := authSummary{User: res.User, SignedIn: true, Profile: d.cfg.Profile}
	return d.print(w, summary, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatAuthHuman(summary))
		return err
	})
}

// runRegister prompts for account details and creates the account
func runRegister(ctx context.Context, d *deps, w io.Writer, username, email string) int {
	username, err := promptValue(d.prompt, username, "Name", validate.NameErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	email, err = promptValue(d.prompt, email, "Email", validate.EmailErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	password, err := d.prompt.Password("Password", validate.PasswordErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	confirm, err := d.prompt.Password("Confirm password", nil)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	form := validate.New()
	if !form.ConfirmPassword(password, confirm) {
		fmt.Fprintf(w, "Error: %s\n", form.Get(validate.FieldConfirmPassword))
		return exitUsage
	}

	res, err := d.client.Register(ctx, client.Registration{Username: username, Email: email, Password: password})
	if err != nil {
		return fail(w, err)
	}

	summary := authSummary{User: res.User, SignedIn: res.Token != "", Profile: d.cfg.Profile}
	return d.print(w, summary, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatAuthHuman(summary))
		return err
	})
}

func runLogout(ctx context.Context, d *deps, w io.Writer) int {
	d.client.Logout(ctx)
	fmt.Fprintln(w, "Signed out.")
	return exitOK
}

// whoamiResult is the signed-in user plus what the token says about itself
type whoamiResult struct {
	User      *models.User `json:"user" yaml:"user"`
	Profile   string       `json:"profile" yaml:"profile"`
	IssuedAt  *time.Time   `json:"issuedAt,omitempty" yaml:"issuedAt,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

func runWhoami(ctx context.Context, d *deps, w io.Writer) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	user, err := d.client.Me(ctx)
	if err != nil {
		return fail(w, err)
	}

	res := whoamiResult{User: user, Profile: d.cfg.Profile}
	if claims := d.client.Session().Claims(); claims != nil {
		if !claims.IssuedAt.IsZero() {
			res.IssuedAt = &claims.IssuedAt
		}
		if !claims.ExpiresAt.IsZero() {
			res.ExpiresAt = &claims.ExpiresAt
		}
	}

	return d.print(w, res, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatWhoamiHuman(res))
		return err
	})
}

// formatAuthHuman formats a login or registration result
func formatAuthHuman(s authSummary) string {
	if !s.SignedIn {
		return fmt.Sprintf("Account created for %s. Sign in with \"hotelbook login\".", s.User.DisplayName())
	}
	return fmt.Sprintf("Signed in as %s (profile %s).", s.User.DisplayName(), s.Profile)
}

// formatWhoamiHuman formats the current user for human readability
func formatWhoamiHuman(r whoamiResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User:     %s\n", r.User.DisplayName())
	fmt.Fprintf(&sb, "Email:    %s\n", r.User.Email)
	if r.User.ID != "" {
		fmt.Fprintf(&sb, "ID:       %s\n", r.User.ID)
	}
	fmt.Fprintf(&sb, "Profile:  %s", r.Profile)
	if r.ExpiresAt != nil {
		claims := session.Claims{ExpiresAt: *r.ExpiresAt}
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(&sb, "\nExpires:  %s (%s)", r.ExpiresAt.Local().Format(time.RFC1123), state)
	}
	return sb.String()
}
