// ABOUTME: Tests for icon set selection
// ABOUTME: Covers explicit modes and environment-based detection

package icons

import "testing"

func TestSetMode(t *testing.T) {
	t.Cleanup(func() { SetMode(ModeAuto) })

	SetMode(ModeNerd)
	if !HasNerdFonts() || Job.String() != Job.NerdFont {
		t.Error("expected Nerd Font glyphs in nerd mode")
	}

	SetMode("UNICODE")
	if HasNerdFonts() || Job.String() != "■" {
		t.Errorf("expected fallback glyph, got %q", Job.String())
	}
}

func TestDetectNerdFonts(t *testing.T) {
	tests := []struct {
		name        string
		override    string
		term        string
		termProgram string
		want        bool
	}{
		{"override on", "true", "dumb", "", true},
		{"override off", "0", "xterm-kitty", "", false},
		{"kitty", "", "xterm-kitty", "", true},
		{"wezterm", "", "xterm-256color", "WezTerm", true},
		{"plain xterm", "", "xterm-256color", "Apple_Terminal", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JOBBOARD_NERD_FONTS", tt.override)
			t.Setenv("TERM", tt.term)
			t.Setenv("TERM_PROGRAM", tt.termProgram)
			t.Setenv("NERD_FONTS", "")
			if got := detectNerdFonts(); got != tt.want {
				t.Errorf("detectNerdFonts() = %v, want %v", got, tt.want)
			}
		})
	}
}
