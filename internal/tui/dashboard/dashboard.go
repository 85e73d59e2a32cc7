// ABOUTME: Shared pieces of the poster and applicant dashboards
// ABOUTME: Backend interface, dependencies, key hints and detail rendering

package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/notify"
	"github.com/markalston/jobboard/internal/tui/icons"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/tui/widgets"
	"github.com/markalston/jobboard/internal/validate"
)

// API is the part of the backend client the dashboards drive
type API interface {
	ListJobs(ctx context.Context, filter client.JobFilter) ([]client.Job, error)
	GetJob(ctx context.Context, id string) (*client.Job, error)
	CreateJob(ctx context.Context, input client.JobInput) (*client.Job, error)
	UpdateJob(ctx context.Context, id string, input client.JobInput) (*client.Job, error)
	DeleteJob(ctx context.Context, id string) (*client.MessageResponse, error)
	ListApplicants(ctx context.Context, jobID string, filter client.ApplicationFilter) ([]client.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status client.ApplicationStatus) (*client.Application, error)
	Apply(ctx context.Context, jobID string, input client.ApplicationInput) (*client.Application, error)
	MyApplications(ctx context.Context, filter client.ApplicationFilter) ([]client.Application, error)
	DeleteApplication(ctx context.Context, id string) (*client.MessageResponse, error)
}

// Deps is what a dashboard needs from the app
type Deps struct {
	API   API
	Notes *notify.Store
	Ctx   context.Context
	Now   func() time.Time
}

func (d Deps) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// failed reports an operation failure as an error notification
func (d Deps) failed(summary string, err error) {
	d.Notes.Error(fmt.Sprintf("%s: %s", summary, err.Error()))
}

// Shortcut is a key hint shown in the footer
type Shortcut struct {
	Key   string
	Label string
}

// Model is what the app needs from either dashboard
type Model interface {
	tea.Model
	SetSize(width, height int)
	// Capturing reports whether a form, filter or prompt owns the keyboard
	Capturing() bool
	Shortcuts() []Shortcut
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(validate.DateLayout)
}

func formatAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return styles.LabelStyle.Render(label) + value + "\n"
}

// renderJobDetail draws the selected job under a table
func renderJobDetail(j *client.Job, width int) string {
	if j == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(icons.Job.String() + " " + j.JobTitle))
	sb.WriteString("\n")
	sb.WriteString(field("Company", j.CompanyName))
	sb.WriteString(field("Location", j.Location))
	sb.WriteString(field("Salary", j.SalaryRange))
	sb.WriteString(field("Deadline", formatDate(j.ApplicationDeadline)))

	if desc := strings.TrimSpace(j.Description); desc != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(max(20, width-4)).Render(desc))
		sb.WriteString("\n")
	}
	if len(j.Requirements) > 0 {
		sb.WriteString("\n" + styles.KeyStyle.Render("Requirements") + "\n")
		for _, r := range j.Requirements {
			sb.WriteString("  • " + r + "\n")
		}
	}
	if len(j.Responsibilities) > 0 {
		sb.WriteString("\n" + styles.KeyStyle.Render("Responsibilities") + "\n")
		for _, r := range j.Responsibilities {
			sb.WriteString("  • " + r + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// tabs renders a row of view tabs with the active one highlighted
func tabs(names []string, active int) string {
	on := lipgloss.NewStyle().Foreground(styles.Text).Background(styles.Primary).Bold(true).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(styles.Muted).Padding(0, 1)
	var parts []string
	for i, n := range names {
		if i == active {
			parts = append(parts, on.Render(n))
		} else {
			parts = append(parts, off.Render(n))
		}
	}
	return strings.Join(parts, " ")
}

// pipeline renders the hiring-stage breakdown under an application list
func pipeline(apps []client.Application) string {
	breakdown := widgets.PipelineBreakdown(apps, 20)
	if breakdown == "" {
		return ""
	}
	return "\n\n" + styles.LabelStyle.Render("Pipeline") + "\n" + breakdown
}
