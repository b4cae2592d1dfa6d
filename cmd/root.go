// ABOUTME: Root command for the hotelbook CLI
// ABOUTME: Handles global flags, configuration, and wiring of the backend gateway

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhinavhh/hotel-booking-client/internal/client"
	"github.com/abhinavhh/hotel-booking-client/internal/config"
	"github.com/abhinavhh/hotel-booking-client/internal/logger"
	"github.com/abhinavhh/hotel-booking-client/internal/output"
	"github.com/abhinavhh/hotel-booking-client/internal/session"
)

var (
	apiURL       string
	outputFormat string
	outputQuery  string
	profileName  string
	noPersist    bool
)

// Exit codes
const (
	exitOK             = 0
	exitFailed         = 1 // the backend rejected the operation
	exitUsage          = 2 // bad input, configuration, or connectivity
	exitSessionExpired = 3
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "hotelbook",
	Short: "CLI for the hotel booking service",
	Long: `hotelbook signs in to the hotel booking backend, searches hotels, and manages
bookings and your profile. Run "hotelbook tui" for the interactive interface.

Environment Variables:
  HOTELBOOK_API_URL      Backend API URL (default: http://localhost:5000/api)
  HOTELBOOK_TIMEOUT      Request timeout, 0 disables (default: 30s)
  HOTELBOOK_TOKEN_STORE  Where the session token is kept: file, redis, memory (default: file)
  HOTELBOOK_REDIS_URL    Redis URL when HOTELBOOK_TOKEN_STORE=redis
  HOTELBOOK_CONFIG_DIR   Directory for the token file and TUI log
  HOTELBOOK_PROFILE      Token slot name (default: default)
  LOG_LEVEL, LOG_FORMAT  Logging (debug|info|warn|error, text|json)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides HOTELBOOK_API_URL)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&outputQuery, "query", "", "JMESPath query applied to structured output")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Token slot name (overrides HOTELBOOK_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "Keep the session token in memory only")
}

// loadConfig reads the environment and applies flag overrides (flag beats env beats default)
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if profileName != "" {
		cfg.Profile = profileName
	}
	if noPersist {
		cfg.TokenStore = config.StoreMemory
	}
	cfg.Sanitize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPrinter builds the output printer from the global flags
func newPrinter() (output.Printer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return output.Printer{}, err
	}
	p := output.Printer{Format: format, Query: outputQuery}
	return p, p.Validate()
}

// deps bundles what every command needs
type deps struct {
	cfg     *config.Config
	client  *client.Client
	printer output.Printer
	prompt  Prompter
	logger  *slog.Logger
}

// newDeps wires configuration, logging, the token slot, and the gateway.
// The returned close function releases the token slot.
func newDeps(ctx context.Context, stderr io.Writer) (*deps, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	printer, err := newPrinter()
	if err != nil {
		return nil, nil, err
	}

	lg := logger.Init(stderr, cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open token store: %w", err)
	}
	cleanup := func() {
		if err := closeStore(); err != nil {
			lg.Warn("Failed to close token store", "error", err)
		}
	}

	sess := session.New(store)
	if err := sess.Init(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}

	c := client.New(cfg.APIURL, sess,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(lg),
	)

	return &deps{
		cfg:     cfg,
		client:  c,
		printer: printer,
		prompt:  newPrompter(os.Stdin, stderr, passwordStdin),
		logger:  lg,
	}, cleanup, nil
}

// runFunc is the body of a command once its dependencies are wired
type runFunc func(ctx context.Context, d *deps, w io.Writer) int

// runCommand builds deps with SIGINT/SIGTERM cancellation, runs fn, and exits
// with its code when non-zero
func runCommand(fn runFunc) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := execute(ctx, os.Stdout, os.Stderr, fn)
		if exitCode != exitOK {
			cancel()
			os.Exit(exitCode)
		}
	}
}

func execute(ctx context.Context, w, stderr io.Writer, fn runFunc) int {
	d, cleanup, err := newDeps(ctx, stderr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	defer cleanup()
	return fn(ctx, d, w)
}

// print renders v through the printer, falling back to human for text output
func (d *deps) print(w io.Writer, v any, human func(io.Writer) error) int {
	if err := d.printer.Print(w, v, human); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// fail reports err and maps it to an exit code
func fail(w io.Writer, err error) int {
	msg := client.Message(err)
	if client.IsSessionExpired(err) {
		msg = client.MsgSessionExpired
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
	return exitCodeFor(err)
}

// exitCodeFor maps a gateway error to an exit code
func exitCodeFor(err error) int {
	var ce *client.Error
	switch {
	case err == nil:
		return exitOK
	case client.IsSessionExpired(err):
		return exitSessionExpired
	case errors.As(err, &ce):
		switch ce.Kind {
		case client.KindNetwork, client.KindCanceled, client.KindValidation, client.KindStorage:
			return exitUsage
		}
		return exitFailed
	default:
		return exitUsage
	}
}

// requireSignedIn prints a hint and returns false when no token is held
func requireSignedIn(d *deps, w io.Writer) bool {
	if d.client.Session().IsAuthenticated() {
		return true
	}
	fmt.Fprintln(w, `Error: not signed in. Run "hotelbook login" first.`)
	return false
}
