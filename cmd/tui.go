// ABOUTME: TUI command launching the interactive terminal interface
// ABOUTME: Logs to a file in the config directory so output does not corrupt the screen

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhinavhh/hotel-booking-client/internal/logger"
	"github.com/abhinavhh/hotel-booking-client/internal/tui"
	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal interface",
	Long: `Opens a full-screen interface for signing in, searching hotels, and managing
bookings and your profile. Logs are written to debug.log in the config directory.

Set HOTELBOOK_NERD_FONTS=true to use Nerd Font icons.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := runTUI(ctx, os.Stdout); code != exitOK {
			cancel()
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI wires a file logger and the gateway, then blocks until the program exits
func runTUI(ctx context.Context, w *os.File) int {
	if !term.IsTerminal(int(w.Fd())) {
		fmt.Fprintln(w, "Error: the interactive interface needs a terminal")
		return exitUsage
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	logFile, err := logger.OpenFile(cfg.ConfigDir)
	if err != nil {
		fmt.Fprintf(w, "Error: open log file: %v\n", err)
		return exitUsage
	}
	defer logFile.Close()

	return launchTUI(ctx, w, logFile)
}

func launchTUI(ctx context.Context, w, logOut io.Writer) int {
	d, cleanup, err := newDeps(ctx, logOut)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	defer cleanup()

	if d.cfg.NerdFonts {
		icons.SetNerdFonts(true)
	}

	d.logger.Info("TUI started", "api_url", d.cfg.APIURL, "signed_in", d.client.Session().IsAuthenticated())
	if err := tui.Run(ctx, d.client, d.logger); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return exitOK
		}
		d.logger.Error("TUI exited with error", "error", err)
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}
