// ABOUTME: Multi-step job posting form for creating and editing jobs
// ABOUTME: Collects basics, details and deadline with huh forms and a progress panel

package jobform

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/tui/icons"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/validate"
)

var stepNames = []string{"Basics", "Details", "Deadline"}

// CompleteMsg carries the validated payload. JobID is empty for a new job.
type CompleteMsg struct {
	JobID string
	Input client.JobInput
}

// InvalidMsg is sent when the finished form fails whole-form validation
type InvalidMsg struct {
	Messages []string
}

// CancelledMsg is sent when the user leaves the form with esc
type CancelledMsg struct{}

// Form walks the user through the job fields
type Form struct {
	jobID  string
	values validate.JobInput
	errs   []string
	step   int
	form   *huh.Form
	width  int
	now    func() time.Time
}

// New creates a form. Pass an empty jobID and zero input to create a job.
func New(jobID string, initial client.JobInput, now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	f := &Form{
		jobID:  jobID,
		values: validate.JobForm(initial),
		step:   1,
		now:    now,
	}
	f.form = f.createStepForm()
	return f
}

// Editing reports whether the form updates an existing job
func (f *Form) Editing() bool {
	return f.jobID != ""
}

// Title is the heading shown above the form
func (f *Form) Title() string {
	if f.Editing() {
		return "Edit Job Posting"
	}
	return "Create New Job Posting"
}

func required(field string) func(string) error {
	return func(s string) error { return validate.Required(s, field) }
}

func (f *Form) createStepForm() *huh.Form {
	var group *huh.Group
	switch f.step {
	case 1:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Company Name").
				Placeholder("e.g., Tech Solutions Inc.").
				Value(&f.values.CompanyName).
				Validate(required("Company Name")),
			huh.NewInput().
				Title("Job Title").
				Placeholder("e.g., Software Engineer, Marketing Manager").
				Value(&f.values.JobTitle).
				Validate(required("Job Title")),
			huh.NewInput().
				Title("Location").
				Description("Defaults to "+client.DefaultJobLocation).
				Placeholder("e.g., Remote, New York, San Francisco").
				Value(&f.values.Location),
			huh.NewInput().
				Title("Salary Range").
				Description("Defaults to "+client.DefaultSalaryRange).
				Placeholder("e.g., $80,000 - $100,000 / year").
				Value(&f.values.SalaryRange),
		).Title("Job Basics")
	case 2:
		group = huh.NewGroup(
			huh.NewText().
				Title("Description").
				Placeholder("Describe the role and the team.").
				Lines(4).
				Value(&f.values.Description).
				Validate(required("Description")),
			huh.NewText().
				Title("Requirements").
				Description("One per line").
				Lines(4).
				Value(&f.values.Requirements),
			huh.NewText().
				Title("Responsibilities").
				Description("One per line").
				Lines(4).
				Value(&f.values.Responsibilities),
		).Title("Job Details")
	default:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Application Deadline").
				Description("Format "+validate.DateLayout).
				Placeholder(f.now().AddDate(0, 1, 0).Format(validate.DateLayout)).
				Value(&f.values.ApplicationDeadline).
				Validate(func(s string) error {
					return validate.DateInFuture(s, "Application Deadline", f.now())
				}),
		).Title("Application Deadline")
	}

	return huh.NewForm(group).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init focuses the first field of the current step
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards input to the current step and advances on completion
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		form, cmd := f.form.Update(msg)
		if fm, ok := form.(*huh.Form); ok {
			f.form = fm
		}
		return f, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if fm, ok := form.(*huh.Form); ok {
		f.form = fm
	}

	if f.form.State == huh.StateCompleted {
		return f.advanceStep()
	}
	return f, cmd
}

func (f *Form) advanceStep() (tea.Model, tea.Cmd) {
	if f.step < len(stepNames) {
		f.step++
		f.form = f.createStepForm()
		return f, f.form.Init()
	}

	if err := f.values.Validate(f.now()); err != nil {
		msgs := validate.Messages(err)
		f.errs = msgs
		f.step = 1
		f.form = f.createStepForm()
		return f, tea.Batch(f.form.Init(), func() tea.Msg { return InvalidMsg{Messages: msgs} })
	}

	done := CompleteMsg{JobID: f.jobID, Input: f.values.Payload()}
	return f, func() tea.Msg { return done }
}

// SetWidth sets the width for the progress panel
func (f *Form) SetWidth(width int) {
	f.width = width
}

// View renders the progress panel and the current step
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(f.Title()))
	sb.WriteString("\n")
	sb.WriteString(f.renderProgress())
	sb.WriteString("\n\n")

	if len(f.errs) > 0 {
		errStyle := lipgloss.NewStyle().Foreground(styles.Danger)
		for _, e := range f.errs {
			sb.WriteString(errStyle.Render("• " + e))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(f.form.View())
	return sb.String()
}

func (f *Form) renderProgress() string {
	width := f.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < f.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == f.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (f.step * barWidth) / len(stepNames)
	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	title := fmt.Sprintf("Step %d of %d", f.step, len(stepNames))
	topFill := max(0, width-5-lipgloss.Width(title))
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", topFill) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsRow := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"
	progressRow := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{topBorder, stepsRow, progressRow, bottomBorder}, "\n"))
}
