// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: The set is fixed by the output.icons setting or detected from the terminal

package icons

import (
	"os"
	"strings"
	"sync"
)

// Mode selects the icon set. ModeAuto detects Nerd Fonts from the terminal.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeNerd    Mode = "nerd"
	ModeUnicode Mode = "unicode"
)

var (
	mu       sync.Mutex
	mode     = ModeAuto
	detected *bool
)

// SetMode fixes the icon set, typically from the output.icons setting.
// Unknown values fall back to ModeAuto.
func SetMode(m Mode) {
	mu.Lock()
	defer mu.Unlock()
	switch Mode(strings.ToLower(string(m))) {
	case ModeNerd:
		mode = ModeNerd
	case ModeUnicode:
		mode = ModeUnicode
	default:
		mode = ModeAuto
	}
}

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("JOBBOARD_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	for _, t := range []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"} {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts reports whether Nerd Font glyphs are rendered
func HasNerdFonts() bool {
	mu.Lock()
	defer mu.Unlock()
	switch mode {
	case ModeNerd:
		return true
	case ModeUnicode:
		return false
	}
	if detected == nil {
		d := detectNerdFonts()
		detected = &d
	}
	return *detected
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
	// Domain objects
	Job       = Icon{"󰃖", "■"} // nf-md-briefcase
	Company   = Icon{"󰉌", "▣"} // nf-md-domain
	Location  = Icon{"󰍎", "◎"} // nf-md-map_marker
	Salary    = Icon{"󰄔", "$"} // nf-md-cash
	Deadline  = Icon{"󰃭", "◷"} // nf-md-calendar
	Applicant = Icon{"󰀄", "●"} // nf-md-account
	Document  = Icon{"󰈙", "□"} // nf-md-file_document

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Search  = Icon{"󰍉", "⌕"} // nf-md-magnify
	New     = Icon{"󰐕", "+"} // nf-md-plus
	Edit    = Icon{"󰏫", "✎"} // nf-md-pencil
	Delete  = Icon{"󰆴", "−"} // nf-md-delete
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Login   = Icon{"󰍂", "→"} // nf-md-login
	Logout  = Icon{"󰍃", "⇥"} // nf-md-logout
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App  = Icon{"󰃖", "◈"} // nf-md-briefcase
	Home = Icon{"󰋜", "⌂"} // nf-md-home
	User = Icon{"󰀉", "☺"} // nf-md-account_circle
)
