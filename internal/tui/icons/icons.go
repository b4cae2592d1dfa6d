// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	mu          sync.Mutex
	useNerd     bool
	nerdDecided bool
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("HOTELBOOK_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"} {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	mu.Lock()
	defer mu.Unlock()
	if !nerdDecided {
		useNerd = detectNerdFonts()
		nerdDecided = true
	}
	return useNerd
}

// SetNerdFonts overrides detection
func SetNerdFonts(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	useNerd = enabled
	nerdDecided = true
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Domain
	Hotel    = Icon{"󰋜", "⌂"} // nf-md-home_city
	Bed      = Icon{"󰋣", "▭"} // nf-md-bed
	Calendar = Icon{"󰃭", "▦"} // nf-md-calendar
	Money    = Icon{"󰄔", "$"} // nf-md-cash
	Star     = Icon{"󰓎", "★"} // nf-md-star
	User     = Icon{"󰀄", "◉"} // nf-md-account
	Key      = Icon{"󰌋", "⚿"} // nf-md-key
	Mail     = Icon{"󰇮", "✉"} // nf-md-email

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Cancel  = Icon{"󰜺", "⊘"} // nf-md-cancel

	// Application
	App      = Icon{"󰋜", "◈"}
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
