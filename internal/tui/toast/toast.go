// ABOUTME: Renders live notifications as a stack of toasts under the header
// ABOUTME: Newest last, coloured by severity, trimmed to the visible limit

package toast

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/notify"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/tui/widgets"
)

// MaxVisible caps how many toasts are drawn at once
const MaxVisible = 4

// Render draws notes in insertion order. When more than MaxVisible are live
// only the newest are drawn, with a count of the hidden ones.
func Render(notes []notify.Notification, width int) string {
	if len(notes) == 0 {
		return ""
	}

	hidden := 0
	if len(notes) > MaxVisible {
		hidden = len(notes) - MaxVisible
		notes = notes[hidden:]
	}

	lineWidth := width - 4
	if lineWidth < 20 {
		lineWidth = 20
	}

	var lines []string
	if hidden > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.Muted).
			Render(plural(hidden)))
	}
	for _, n := range notes {
		level := widgets.SeverityLevel(n.Severity)
		text := n.Message
		if lipgloss.Width(text) > lineWidth-3 {
			text = truncate(text, lineWidth-3)
		}
		lines = append(lines, widgets.StatusText(text, level))
	}
	return strings.Join(lines, "\n")
}

func plural(n int) string {
	if n == 1 {
		return "+1 earlier notification"
	}
	return fmt.Sprintf("+%d earlier notifications", n)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max < 1 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
