// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps application statuses, roles and notification severities to colored badges

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/notify"
	"github.com/markalston/jobboard/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// SeverityLevel maps a notification severity to a badge level
func SeverityLevel(s notify.Severity) StatusLevel {
	switch s {
	case notify.Success:
		return StatusOK
	case notify.Warning:
		return StatusWarning
	case notify.Error:
		return StatusCritical
	case notify.Info:
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// ApplicationLevel maps a hiring stage to a badge level
func ApplicationLevel(s client.ApplicationStatus) StatusLevel {
	switch s {
	case client.StatusApplied:
		return StatusInfo
	case client.StatusInterview, client.StatusOffer:
		return StatusWarning
	case client.StatusAccepted:
		return StatusOK
	case client.StatusRejected:
		return StatusCritical
	default:
		return StatusNeutral
	}
}

// ApplicationBadge renders the badge for an application status
func ApplicationBadge(s client.ApplicationStatus) string {
	if s == "" {
		return Badge("--", StatusNeutral)
	}
	return Badge(string(s), ApplicationLevel(s))
}

// RoleBadge renders the role label as a badge
func RoleBadge(r client.Role) string {
	switch r {
	case client.RolePoster:
		return Badge(r.Label(), StatusInfo)
	case client.RoleApplicant:
		return Badge(r.Label(), StatusOK)
	default:
		return Badge(r.Label(), StatusNeutral)
	}
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := colors(level)
	style := lipgloss.NewStyle().Foreground(bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := colors(level)
	textStyle := lipgloss.NewStyle().Foreground(bg)
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}
