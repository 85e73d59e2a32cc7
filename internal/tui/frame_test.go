// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}

	for _, targetWidth := range widths {
		for _, token := range []string{"", "poster-token"} {
			t.Run(fmt.Sprintf("%d/%s", targetWidth, token), func(t *testing.T) {
				app := newTestApp(t, token)
				app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})

				lines := strings.Split(app.View(), "\n")

				// Frame uses width-1 to prevent wrapping on some terminals,
				// but clamps to minimum of 80 for usability
				expectedWidth := max(targetWidth-1, 80)

				header := lines[0]
				if !strings.Contains(header, "╭") {
					t.Fatalf("Header not found in output: %q", header)
				}
				if w := lipgloss.Width(header); w != expectedWidth {
					t.Errorf("Header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
				}

				footer := lines[len(lines)-1]
				if !strings.Contains(footer, "╰") {
					t.Fatalf("Footer not found in output: %q", footer)
				}
				if w := lipgloss.Width(footer); w != expectedWidth {
					t.Errorf("Footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
					t.Logf("Footer line: %q", footer)
				}
			})
		}
	}
}

func TestFooterDropsHintsToFit(t *testing.T) {
	app := newTestApp(t, "poster-token")
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	for i := 0; i < 3; i++ {
		app.notes.Info("note")
	}

	footer := app.renderFooter()
	if w := lipgloss.Width(footer); w != 80 {
		t.Errorf("expected footer width 80, got %d", w)
	}
	if !strings.Contains(footer, "3 notifications") {
		t.Errorf("expected notification count in footer, got %q", footer)
	}
}
