// ABOUTME: Tests for the login, register, logout, and whoami commands
// ABOUTME: Runs each command against the fake backend with scripted prompt input

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhinavhh/hotel-booking-client/internal/client/clienttest"
	"github.com/abhinavhh/hotel-booking-client/internal/models"
	"github.com/abhinavhh/hotel-booking-client/internal/output"
)

func TestLoginCommand_Success(t *testing.T) {
	d, _ := newTestDeps(t, clienttest.Password+"\n")

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), d, &buf, clienttest.Email)

	if exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Signed in as Ada Lovelace") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if !d.client.Session().IsAuthenticated() {
		t.Error("expected session to be authenticated")
	}
}

func TestLoginCommand_PromptsForEmail(t *testing.T) {
	d, _ := newTestDeps(t, clienttest.Email+"\n"+clienttest.Password+"\n")

	if exitCode := runLogin(context.Background(), d, &bytes.Buffer{}, ""); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
}

func TestLoginCommand_WrongPassword(t *testing.T) {
	d, _ := newTestDeps(t, "wrong-password\n")

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), d, &buf, clienttest.Email)

	if exitCode != exitFailed {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Invalid email or password") {
		t.Errorf("expected backend message, got %q", buf.String())
	}
	if d.client.Session().IsAuthenticated() {
		t.Error("expected session to stay anonymous")
	}
}

func TestLoginCommand_InvalidEmailMakesNoRequest(t *testing.T) {
	d, backend := newTestDeps(t, clienttest.Password+"\n")

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), d, &buf, "not-an-email")

	if exitCode != exitUsage {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Invalid email format") {
		t.Errorf("expected validation message, got %q", buf.String())
	}
	if len(backend.Requests()) != 0 {
		t.Errorf("expected no requests, got %d", len(backend.Requests()))
	}
}

func TestLoginCommand_MissingToken(t *testing.T) {
	d, backend := newTestDeps(t, clienttest.Password+"\n")
	backend.LoginOmitsToken = true

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), d, &buf, clienttest.Email)

	if exitCode != exitFailed {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Token not found in response") {
		t.Errorf("expected contract violation message, got %q", buf.String())
	}
}

func TestLoginCommand_JSONNeverEchoesToken(t *testing.T) {
	d, _ := newTestDeps(t, clienttest.Password+"\n")
	d.printer = output.Printer{Format: output.FormatJSON}

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), d, &buf, clienttest.Email); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["signedIn"] != true {
		t.Errorf("expected signedIn true, got %v", parsed["signedIn"])
	}
	if strings.Contains(buf.String(), d.client.Session().Token()) {
		t.Error("token must not appear in output")
	}
}

func TestRegisterCommand_WithoutToken(t *testing.T) {
	d, _ := newTestDeps(t, "secret2\nsecret2\n")

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), d, &buf, "grace", "grace@example.com")

	if exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Account created for grace") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if d.client.Session().IsAuthenticated() {
		t.Error("expected session to stay anonymous without a token")
	}
}

func TestRegisterCommand_WithToken(t *testing.T) {
	d, backend := newTestDeps(t, "secret2\nsecret2\n")
	backend.RegisterIssuesToken = true

	var buf bytes.Buffer
	if exitCode := runRegister(context.Background(), d, &buf, "grace", "grace@example.com"); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Signed in as grace") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRegisterCommand_PasswordMismatch(t *testing.T) {
	d, backend := newTestDeps(t, "secret2\nsecret3\n")

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), d, &buf, "grace", "grace@example.com")

	if exitCode != exitUsage {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Passwords do not match") {
		t.Errorf("expected mismatch message, got %q", buf.String())
	}
	if len(backend.Requests()) != 0 {
		t.Error("expected no request for mismatched passwords")
	}
}

func TestRegisterCommand_Duplicate(t *testing.T) {
	d, _ := newTestDeps(t, "secret2\nsecret2\n")

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), d, &buf, "ada", clienttest.Email)

	if exitCode != exitFailed {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "User already exists") {
		t.Errorf("expected backend message, got %q", buf.String())
	}
}

func TestLogoutCommand(t *testing.T) {
	d, backend := newTestDeps(t, "")
	signIn(t, d, backend)

	var buf bytes.Buffer
	if exitCode := runLogout(context.Background(), d, &buf); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if d.client.Session().IsAuthenticated() {
		t.Error("expected session to be cleared")
	}
	if len(backend.Requests()) != 0 {
		t.Error("logout must not contact the backend")
	}
}

func TestWhoamiCommand(t *testing.T) {
	d, backend := newTestDeps(t, "")
	signIn(t, d, backend)

	var buf bytes.Buffer
	if exitCode := runWhoami(context.Background(), d, &buf); exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}

	for _, want := range []string{"Ada Lovelace", clienttest.Email, clienttest.UserID, "Expires:", "(valid)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got %q", want, buf.String())
		}
	}
}

func TestWhoamiCommand_Anonymous(t *testing.T) {
	d, _ := newTestDeps(t, "")

	if exitCode := runWhoami(context.Background(), d, &bytes.Buffer{}); exitCode != exitSessionExpired {
		t.Errorf("expected exit 3, got %d", exitCode)
	}
}

func TestWhoamiCommand_SessionExpired(t *testing.T) {
	d, backend := newTestDeps(t, "")
	signIn(t, d, backend)
	backend.ExpireSessions()

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), d, &buf)

	if exitCode != exitSessionExpired {
		t.Errorf("expected exit 3, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Session expired. Please log in again.") {
		t.Errorf("expected session expired message, got %q", buf.String())
	}
	if d.client.Session().IsAuthenticated() {
		t.Error("expected session to be cleared")
	}
}

func TestFormatAuthHuman(t *testing.T) {
	user := &models.User{Username: "grace"}

	if got := formatAuthHuman(authSummary{User: user, SignedIn: true, Profile: "work"}); got != "Signed in as grace (profile work)." {
		t.Errorf("unexpected signed-in text %q", got)
	}
	if got := formatAuthHuman(authSummary{User: user}); !strings.Contains(got, "Account created for grace") {
		t.Errorf("unexpected registration text %q", got)
	}
}
