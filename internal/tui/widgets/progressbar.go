// ABOUTME: Progress bars for pipeline displays
// ABOUTME: Renders how a set of applications is spread across hiring stages

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/client"
)

// EmptyColor fills the unfilled part of a bar
var EmptyColor = lipgloss.Color("#374151") // Dark gray

// SimpleProgressBar renders a basic colored bar without zones
func SimpleProgressBar(percent float64, width int, filledColor, emptyColor lipgloss.Color) string {
	if width <= 0 {
		width = 20
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))

	var bar strings.Builder
	bar.WriteString("[")

	filledStyle := lipgloss.NewStyle().Foreground(filledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(emptyColor)

	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString(filledStyle.Render("█"))
		} else {
			bar.WriteString(emptyStyle.Render("░"))
		}
	}

	bar.WriteString("]")
	return bar.String()
}

// StatusCounts tallies applications per status in pipeline order.
// Statuses outside the pipeline are not counted.
func StatusCounts(apps []client.Application) map[client.ApplicationStatus]int {
	counts := make(map[client.ApplicationStatus]int, len(client.ApplicationStatuses))
	for _, a := range apps {
		if a.Status.Valid() {
			counts[a.Status]++
		}
	}
	return counts
}

// PipelineBreakdown renders one bar per hiring stage, scaled to the number
// of applications. Returns "" for no applications.
func PipelineBreakdown(apps []client.Application, barWidth int) string {
	if len(apps) == 0 {
		return ""
	}
	counts := StatusCounts(apps)

	labelStyle := lipgloss.NewStyle().Foreground(BadgeNeutralBg).Width(10)
	lines := make([]string, 0, len(client.ApplicationStatuses))
	for _, s := range client.ApplicationStatuses {
		n := counts[s]
		bg, _ := colors(ApplicationLevel(s))
		percent := float64(n) / float64(len(apps)) * 100
		lines = append(lines, fmt.Sprintf("%s %s %d",
			labelStyle.Render(string(s)),
			SimpleProgressBar(percent, barWidth, bg, EmptyColor),
			n))
	}
	return strings.Join(lines, "\n")
}
