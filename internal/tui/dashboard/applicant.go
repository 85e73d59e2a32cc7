// ABOUTME: Job applicant dashboard: browse jobs and track applications
// ABOUTME: Applies to and withdraws from jobs behind confirmation prompts

package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/tui/filterbar"
	"github.com/markalston/jobboard/internal/tui/icons"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/tui/widgets"
)

type applicantView int

const (
	browseJobs applicantView = iota
	myApplications
)

type browseJobsMsg struct {
	jobs []client.Job
	err  error
}

type myApplicationsMsg struct {
	apps []client.Application
	err  error
}

type appliedMsg struct {
	err error
}

type withdrawnMsg struct {
	err error
}

// Applicant is the dashboard for job applicants
type Applicant struct {
	deps   Deps
	view   applicantView
	width  int
	height int
	jobs   jobList
	apps   appList
	filter *filterbar.Bar
	prompt *prompt
}

// NewApplicant creates the applicant dashboard
func NewApplicant(deps Deps) *Applicant {
	return &Applicant{
		deps: deps,
		jobs: newJobList(),
		apps: newMyApplicationsList(),
	}
}

// Init loads the job listings
func (a *Applicant) Init() tea.Cmd {
	return a.loadJobs()
}

// SetSize updates the dashboard dimensions
func (a *Applicant) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.jobs.table.SetHeight(listHeight(height))
	a.apps.table.SetHeight(listHeight(height))
}

// Capturing reports whether a filter or prompt owns the keyboard
func (a *Applicant) Capturing() bool {
	return a.prompt != nil || a.filter != nil
}

// Shortcuts returns the key hints for the current view
func (a *Applicant) Shortcuts() []Shortcut {
	switch {
	case a.prompt != nil:
		return []Shortcut{{"←→", "Choose"}, {"enter", "Confirm"}, {"esc", "Cancel"}}
	case a.filter != nil:
		return []Shortcut{{"tab", "Next"}, {"enter", "Apply"}, {"esc", "Cancel"}}
	case a.view == myApplications:
		return []Shortcut{{"tab", "Jobs"}, {"w", "Withdraw"}, {"/", "Filter"}, {"r", "Refresh"}}
	default:
		return []Shortcut{{"tab", "Applications"}, {"a", "Apply"}, {"/", "Filter"}, {"r", "Refresh"}}
	}
}

// Update implements tea.Model
func (a *Applicant) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case browseJobsMsg:
		a.jobs.loading = false
		if msg.err == nil {
			a.jobs.loaded = true
			a.jobs.set(msg.jobs)
		}
		return a, nil

	case myApplicationsMsg:
		a.apps.loading = false
		if msg.err == nil {
			a.apps.loaded = true
			a.apps.set(msg.apps)
		}
		return a, nil

	case appliedMsg:
		if msg.err == nil {
			// Refetch on the next visit
			a.apps.loaded = false
		}
		return a, nil

	case withdrawnMsg:
		if msg.err != nil {
			return a, nil
		}
		return a, a.loadApplications()

	case filterbar.AppliedMsg:
		a.filter = nil
		if a.view == myApplications {
			a.apps.applyFilter(msg.Values)
			return a, a.loadApplications()
		}
		a.jobs.applyFilter(msg.Values)
		return a, a.loadJobs()

	case filterbar.CancelledMsg:
		a.filter = nil
		return a, nil
	}

	if a.prompt != nil {
		done, cmd := a.prompt.update(msg)
		if done {
			a.prompt = nil
		}
		return a, cmd
	}
	if a.filter != nil {
		_, cmd := a.filter.Update(msg)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch key.String() {
	case "tab":
		return a, a.switchView()
	case "r":
		if a.view == myApplications {
			return a, a.loadApplications()
		}
		return a, a.loadJobs()
	case "/":
		if a.view == myApplications {
			a.filter = filterbar.New(applicationFilterFields(), a.apps.filterValues())
		} else {
			a.filter = filterbar.New(jobFilterFields(), a.jobs.filterValues())
		}
		return a, a.filter.Init()
	case "a":
		if a.view == browseJobs {
			return a, a.confirmApply()
		}
	case "w":
		if a.view == myApplications {
			return a, a.confirmWithdraw()
		}
	}

	if a.view == myApplications {
		return a, a.apps.update(key)
	}
	return a, a.jobs.update(key)
}

func (a *Applicant) switchView() tea.Cmd {
	if a.view == browseJobs {
		a.view = myApplications
		if !a.apps.loaded && !a.apps.loading {
			return a.loadApplications()
		}
		return nil
	}
	a.view = browseJobs
	return nil
}

func (a *Applicant) confirmApply() tea.Cmd {
	j := a.jobs.selected()
	if j == nil {
		return nil
	}
	id := j.ID
	a.prompt = newConfirm("Apply?", "Are you sure you want to apply for this job?", func() tea.Cmd {
		return a.apply(id)
	})
	return a.prompt.init()
}

func (a *Applicant) confirmWithdraw() tea.Cmd {
	app := a.apps.selected()
	if app == nil {
		return nil
	}
	id, title := app.ID, app.JobTitle()
	if title == "" {
		title = "this job"
	}
	a.prompt = newConfirm(
		"Withdraw application?",
		fmt.Sprintf("Are you sure you want to withdraw your application for %q?", title),
		func() tea.Cmd { return a.withdraw(id) },
	)
	return a.prompt.init()
}

func (a *Applicant) loadJobs() tea.Cmd {
	a.jobs.loading = true
	deps, filter := a.deps, a.jobs.filter
	return func() tea.Msg {
		jobs, err := deps.API.ListJobs(deps.ctx(), filter)
		if err != nil {
			deps.failed("Failed to fetch jobs", err)
		}
		return browseJobsMsg{jobs: jobs, err: err}
	}
}

func (a *Applicant) loadApplications() tea.Cmd {
	a.apps.loading = true
	deps, filter := a.deps, a.apps.filter
	return func() tea.Msg {
		apps, err := deps.API.MyApplications(deps.ctx(), filter)
		if err != nil {
			deps.failed("Failed to fetch your applications", err)
		}
		return myApplicationsMsg{apps: apps, err: err}
	}
}

func (a *Applicant) apply(jobID string) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		_, err := deps.API.Apply(deps.ctx(), jobID, client.ApplicationInput{})
		if err != nil {
			deps.failed("Failed to apply", err)
		} else {
			deps.Notes.Success("Application submitted successfully!")
		}
		return appliedMsg{err: err}
	}
}

func (a *Applicant) withdraw(id string) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		_, err := deps.API.DeleteApplication(deps.ctx(), id)
		if err != nil {
			deps.failed("Failed to withdraw application", err)
		} else {
			deps.Notes.Success("Application withdrawn successfully!")
		}
		return withdrawnMsg{err: err}
	}
}

// View implements tea.Model
func (a *Applicant) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Job.String() + " Job Applicant Dashboard"))
	sb.WriteString("\n")
	sb.WriteString(tabs([]string{"Browse Jobs", "My Applications"}, int(a.view)))
	sb.WriteString("\n\n")

	if a.filter != nil {
		sb.WriteString(a.filter.View())
		sb.WriteString("\n\n")
	}

	if a.view == myApplications {
		sb.WriteString(a.apps.view(emptyMine))
		if app := a.apps.selected(); app != nil && a.prompt == nil {
			sb.WriteString("\n\n")
			sb.WriteString(field("Status", widgets.ApplicationBadge(app.Status)))
			sb.WriteString(field("Applied", formatAgo(app.AppliedDate)))
			if app.Notes != "" {
				sb.WriteString(field("Notes", app.Notes))
			}
		}
		if a.prompt == nil {
			sb.WriteString(pipeline(a.apps.apps))
		}
	} else {
		sb.WriteString(a.jobs.view(emptyBrowse))
		if j := a.jobs.selected(); j != nil && a.prompt == nil {
			sb.WriteString("\n\n")
			sb.WriteString(renderJobDetail(j, a.width))
		}
	}

	if a.prompt != nil {
		sb.WriteString("\n\n")
		sb.WriteString(a.prompt.view())
	}

	return sb.String()
}
