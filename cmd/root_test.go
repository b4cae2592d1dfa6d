// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies config overrides, dependency wiring, and exit code mapping

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/client/clienttest"
	"github.com/abhinavhh/hotel-booking-client/internal/config"
	"github.com/abhinavhh/hotel-booking-client/internal/logger"
	"github.com/abhinavhh/hotel-booking-client/internal/output"
	"github.com/abhinavhh/hotel-booking-client/internal/session"
)

// newTestDeps wires a command against a fresh fake backend. input feeds the prompts.
func newTestDeps(t *testing.T, input string) (*deps, *clienttest.Backend) {
	t.Helper()

	backend := clienttest.New(t)
	lg := logger.Discard()
	sess := session.New(session.NewMemoryStore())

	return &deps{
		cfg:     &config.Config{APIURL: backend.URL(), Profile: config.DefaultProfile, TokenStore: config.StoreMemory},
		client:  client.New(backend.URL(), sess, client.WithLogger(lg)),
		printer: output.Printer{Format: output.FormatText},
		prompt:  newLinePrompter(strings.NewReader(input), nil),
		logger:  lg,
	}, backend
}

// signIn gives d a valid session without going through login
func signIn(t *testing.T, d *deps, backend *clienttest.Backend) {
	t.Helper()
	if err := d.client.Session().SetAuthenticated(context.Background(), backend.IssueToken(), nil); err != nil {
		t.Fatalf("SetAuthenticated() error: %v", err)
	}
}

// resetFlags restores the global flag variables after the test
func resetFlags(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() {
		apiURL, outputFormat, outputQuery, profileName = "", "text", "", ""
		noPersist, passwordStdin = false, false
		slog.SetDefault(prev)
	})
}

// isolateEnv runs from an empty directory with a private config dir
func isolateEnv(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv("HOTELBOOK_CONFIG_DIR", dir)
	t.Setenv("HOTELBOOK_API_URL", "http://env.example.com/api")
	t.Setenv("HOTELBOOK_TOKEN_STORE", "file")
	t.Setenv("HOTELBOOK_PROFILE", "default")
	return dir
}

func TestLoadConfig_FromEnv(t *testing.T) {
	resetFlags(t)
	isolateEnv(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIURL != "http://env.example.com/api" {
		t.Errorf("expected env API URL, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	resetFlags(t)
	isolateEnv(t)
	apiURL = "http://flag-override.example.com/api/"
	profileName = "work"
	noPersist = true

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.APIURL != "http://flag-override.example.com/api" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
	if cfg.Profile != "work" {
		t.Errorf("expected profile from flag, got %s", cfg.Profile)
	}
	if cfg.TokenStore != config.StoreMemory {
		t.Errorf("expected --no-persist to select memory store, got %s", cfg.TokenStore)
	}
}

func TestLoadConfig_InvalidURL(t *testing.T) {
	resetFlags(t)
	isolateEnv(t)
	apiURL = "ftp://files.example.com"

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for non-http API URL")
	}
}

func TestNewPrinter(t *testing.T) {
	resetFlags(t)

	outputFormat, outputQuery = "yaml", "[].id"
	p, err := newPrinter()
	if err != nil {
		t.Fatalf("newPrinter() error: %v", err)
	}
	if p.Format != output.FormatYAML || p.Query != "[].id" {
		t.Errorf("unexpected printer %+v", p)
	}

	outputFormat, outputQuery = "xml", ""
	if _, err := newPrinter(); err == nil {
		t.Error("expected error for unknown format")
	}

	outputFormat, outputQuery = "json", "[?"
	if _, err := newPrinter(); err == nil {
		t.Error("expected error for invalid query")
	}
}

func TestExecute_RestoresPersistedSession(t *testing.T) {
	resetFlags(t)
	dir := isolateEnv(t)
	backend := clienttest.New(t)
	apiURL = backend.URL()

	if err := session.NewFileStore(dir).Save(context.Background(), backend.IssueToken()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var buf bytes.Buffer
	exitCode := execute(context.Background(), &buf, io.Discard, runWhoami)

	if exitCode != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Ada Lovelace") {
		t.Errorf("expected user name in output, got %q", buf.String())
	}
}

func TestExecute_BadConfigIsUsageError(t *testing.T) {
	resetFlags(t)
	isolateEnv(t)
	t.Setenv("HOTELBOOK_TOKEN_STORE", "keychain")

	var buf bytes.Buffer
	exitCode := execute(context.Background(), &buf, io.Discard, runWhoami)

	if exitCode != exitUsage {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "unknown token store") {
		t.Errorf("expected config error, got %q", buf.String())
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"rejected", &client.Error{Kind: client.KindRejected, Message: "nope"}, exitFailed},
		{"contract", &client.Error{Kind: client.KindContract}, exitFailed},
		{"network", &client.Error{Kind: client.KindNetwork}, exitUsage},
		{"canceled", &client.Error{Kind: client.KindCanceled}, exitUsage},
		{"expired", &client.Error{Kind: client.KindRejected, Status: 401, SessionExpired: true}, exitSessionExpired},
		{"plain", errors.New("boom"), exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireSignedIn(t *testing.T) {
	d, backend := newTestDeps(t, "")

	var buf bytes.Buffer
	if requireSignedIn(d, &buf) {
		t.Error("expected anonymous session to be rejected")
	}
	if !strings.Contains(buf.String(), "hotelbook login") {
		t.Errorf("expected login hint, got %q", buf.String())
	}

	signIn(t, d, backend)
	if !requireSignedIn(d, io.Discard) {
		t.Error("expected signed-in session to pass")
	}
}

func TestLinePrompter(t *testing.T) {
	p := newLinePrompter(strings.NewReader(" ada@example.com \nsecret1\ny\n"), nil)

	email, err := p.Input("Email", nil)
	if err != nil || email != "ada@example.com" {
		t.Errorf("Input() = %q, %v", email, err)
	}
	pw, err := p.Password("Password", nil)
	if err != nil || pw != "secret1" {
		t.Errorf("Password() = %q, %v", pw, err)
	}
	ok, err := p.Confirm("Sure?")
	if err != nil || !ok {
		t.Errorf("Confirm() = %v, %v", ok, err)
	}
	if _, err := p.Input("Email", nil); err == nil {
		t.Error("expected error when input runs out")
	}
}

func TestLinePrompter_ValidationFailure(t *testing.T) {
	p := newLinePrompter(strings.NewReader("not-an-email\n"), nil)
	_, err := p.Input("Email", func(s string) error {
		if !strings.Contains(s, "@") {
			return errors.New("Invalid email format")
		}
		return nil
	})
	if err == nil || err.Error() != "Invalid email format" {
		t.Errorf("expected validation error, got %v", err)
	}
}
