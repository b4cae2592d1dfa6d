// ABOUTME: Profile commands: show, update, change-password, preferences, avatar
// ABOUTME: Only flags that were given are sent to the backend

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/validate"
)

// Preference defaults when the profile has none yet
const (
	defaultCurrency = "USD"
	defaultLanguage = "en"
)

var (
	profileUpdate  models.ProfileUpdate
	profileAddress models.Address
	prefCurrency   string
	prefLanguage   string
	prefEmail      bool
	prefSMS        bool
	prefPush       bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Run:   runCommand(runProfileShow),
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update personal information",
	Long: `Update name, phone, date of birth, or address. Fields not given are left unchanged.

Example:
  hotelbook profile update --phone "+44 20 7946 0000" --city London`,
	Run: func(cmd *cobra.Command, args []string) {
		update := profileUpdate
		if profileAddress != (models.Address{}) {
			addr := profileAddress
			update.Address = &addr
		}
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runProfileUpdate(ctx, d, w, update)
		})(cmd, args)
	},
}

var profileChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your password",
	Run:   runCommand(runChangePassword),
}

var profilePreferencesCmd = &cobra.Command{
	Use:   "preferences",
	Short: "Update currency, language, and notification settings",
	Run: func(cmd *cobra.Command, args []string) {
		changes := preferenceChanges{}
		f := cmd.Flags()
		if f.Changed("currency") {
			changes.Currency = &prefCurrency
		}
		if f.Changed("language") {
			changes.Language = &prefLanguage
		}
		if f.Changed("email-notifications") {
			changes.Email = &prefEmail
		}
		if f.Changed("sms-notifications") {
			changes.SMS = &prefSMS
		}
		if f.Changed("push-notifications") {
			changes.Push = &prefPush
		}
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runPreferences(ctx, d, w, changes)
		})(cmd, args)
	},
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Upload a profile picture",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCommand(func(ctx context.Context, d *deps, w io.Writer) int {
			return runAvatar(ctx, d, w, args[0])
		})(cmd, args)
	},
}

func init() {
	u := profileUpdateCmd.Flags()
	u.StringVar(&profileUpdate.Name, "name", "", "Full name")
	u.StringVar(&profileUpdate.Phone, "phone", "", "Phone number")
	u.StringVar(&profileUpdate.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	u.StringVar(&profileAddress.Street, "street", "", "Street address")
	u.StringVar(&profileAddress.City, "city", "", "City")
	u.StringVar(&profileAddress.State, "state", "", "State or region")
	u.StringVar(&profileAddress.Country, "country", "", "Country")
	u.StringVar(&profileAddress.ZipCode, "zip", "", "Postal code")

	p := profilePreferencesCmd.Flags()
	p.StringVar(&prefCurrency, "currency", defaultCurrency, "Display currency (e.g. USD, EUR)")
	p.StringVar(&prefLanguage, "language", defaultLanguage, "Language code")
	p.BoolVar(&prefEmail, "email-notifications", false, "Email notifications")
	p.BoolVar(&prefSMS, "sms-notifications", false, "SMS notifications")
	p.BoolVar(&prefPush, "push-notifications", false, "Push notifications")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profileChangePasswordCmd, profilePreferencesCmd, profileAvatarCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(ctx context.Context, d *deps, w io.Writer) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	profile, err := d.client.Profile(ctx)
	if err != nil {
		return fail(w, err)
	}
	return printProfile(d, w, profile)
}

func runProfileUpdate(ctx context.Context, d *deps, w io.Writer, update models.ProfileUpdate) int {
	if update.Empty() {
		fmt.Fprintln(w, "Error: nothing to update; pass at least one field flag")
		return exitUsage
	}
	if update.Name != "" {
		if err := validate.NameErr(update.Name); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
	}
	if update.DateOfBirth != "" {
		if _, ok := models.ParseDate(update.DateOfBirth); !ok {
			fmt.Fprintf(w, "Error: invalid date of birth %q\n", update.DateOfBirth)
			return exitUsage
		}
	}
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	profile, err := d.client.UpdateProfile(ctx, update)
	if err != nil {
		return fail(w, err)
	}
	if !d.printer.Structured() {
		fmt.Fprintln(w, "Profile updated.")
	}
	return printProfile(d, w, profile)
}

func runChangePassword(ctx context.Context, d *deps, w io.Writer) int {
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	current, err := d.prompt.Password("Current password", nil)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	next, err := d.prompt.Password("New password", validate.PasswordErr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	confirm, err := d.prompt.Password("Confirm new password", nil)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	form := validate.New()
	if !form.ConfirmPassword(next, confirm) {
		fmt.Fprintf(w, "Error: %s\n", form.Get(validate.FieldConfirmPassword))
		return exitUsage
	}

	change := models.PasswordChange{CurrentPassword: current, NewPassword: next, ConfirmPassword: confirm}
	if err := d.client.ChangePassword(ctx, change); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Password changed successfully.")
	return exitOK
}

// preferenceChanges holds only the preferences the user asked to change
type preferenceChanges struct {
	Currency *string
	Language *string
	Email    *bool
	SMS      *bool
	Push     *bool
}

func (c preferenceChanges) empty() bool {
	return c.Currency == nil && c.Language == nil && c.Email == nil && c.SMS == nil && c.Push == nil
}

// apply merges the changes over current, filling defaults for a profile without preferences
func (c preferenceChanges) apply(current *models.Preferences) models.Preferences {
	prefs := models.Preferences{Currency: defaultCurrency, Language: defaultLanguage}
	if current != nil {
		prefs = *current
		if prefs.Currency == "" {
			prefs.Currency = defaultCurrency
		}
		if prefs.Language == "" {
			prefs.Language = defaultLanguage
		}
	}

	if c.Currency != nil {
		prefs.Currency = strings.ToUpper(strings.TrimSpace(*c.Currency))
	}
	if c.Language != nil {
		prefs.Language = strings.ToLower(strings.TrimSpace(*c.Language))
	}
	if c.Email != nil {
		prefs.Notifications.Email = *c.Email
	}
	if c.SMS != nil {
		prefs.Notifications.SMS = *c.SMS
	}
	if c.Push != nil {
		prefs.Notifications.Push = *c.Push
	}
	return prefs
}

func runPreferences(ctx context.Context, d *deps, w io.Writer, changes preferenceChanges) int {
	if changes.empty() {
		fmt.Fprintln(w, "Error: nothing to update; pass at least one preference flag")
		return exitUsage
	}
	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	current, err := d.client.Profile(ctx)
	if err != nil {
		return fail(w, err)
	}

	profile, err := d.client.UpdatePreferences(ctx, changes.apply(current.Preferences))
	if err != nil {
		return fail(w, err)
	}
	if !d.printer.Structured() {
		fmt.Fprintln(w, "Preferences updated.")
	}
	return printProfile(d, w, profile)
}

func runAvatar(ctx context.Context, d *deps, w io.Writer, path string) int {
	if !client.IsImageFile(path) {
		fmt.Fprintf(w, "Error: %s is not an image file\n", path)
		return exitUsage
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(w, "Error: %s does not exist\n", path)
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return exitUsage
	}
	defer f.Close()

	if !requireSignedIn(d, w) {
		return exitSessionExpired
	}

	profile, err := d.client.UploadAvatar(ctx, path, f)
	if err != nil {
		return fail(w, err)
	}
	if !d.printer.Structured() {
		fmt.Fprintln(w, "Avatar updated.")
	}
	return printProfile(d, w, profile)
}

func printProfile(d *deps, w io.Writer, p *models.Profile) int {
	return d.print(w, p, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatProfileHuman(p))
		return err
	})
}

// formatProfileHuman formats the profile for human readability
func formatProfileHuman(p *models.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:          %s\n", p.Name)
	fmt.Fprintf(&sb, "Email:         %s\n", p.Email)
	if p.Phone != "" {
		fmt.Fprintf(&sb, "Phone:         %s\n", p.Phone)
	}
	if p.DateOfBirth != "" {
		fmt.Fprintf(&sb, "Date of birth: %s\n", models.FormatDate(p.DateOfBirth))
	}
	if p.Address != nil {
		if addr := formatAddress(p.Address); addr != "" {
			fmt.Fprintf(&sb, "Address:       %s\n", addr)
		}
	}
	if p.Avatar != "" {
		fmt.Fprintf(&sb, "Avatar:        %s\n", p.Avatar)
	}
	if p.MemberSince != "" {
		fmt.Fprintf(&sb, "Member since:  %s\n", models.FormatDate(p.MemberSince))
	}
	fmt.Fprintf(&sb, "Bookings:      %d\n", p.TotalBookings)
	fmt.Fprintf(&sb, "Loyalty:       %d points\n", p.LoyaltyPoints)

	if prefs := p.Preferences; prefs != nil {
		fmt.Fprintf(&sb, "Currency:      %s\n", prefs.Currency)
		fmt.Fprintf(&sb, "Language:      %s\n", prefs.Language)
		fmt.Fprintf(&sb, "Notifications: %s\n", formatNotifications(prefs.Notifications))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatAddress(a *models.Address) string {
	var parts []string
	for _, s := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func formatNotifications(n models.Notifications) string {
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
