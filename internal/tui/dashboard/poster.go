// ABOUTME: Job poster dashboard: list, create, edit and delete jobs
// ABOUTME: Also shows a job's applicants and updates their status

package dashboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/tui/filterbar"
	"github.com/markalston/jobboard/internal/tui/icons"
	"github.com/markalston/jobboard/internal/tui/jobform"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/tui/widgets"
	"github.com/markalston/jobboard/internal/validate"
)

type posterView int

const (
	posterJobs posterView = iota
	posterJobForm
	posterApplicants
	posterStatus
)

type postedJobsMsg struct {
	jobs []client.Job
	err  error
}

type applicantsMsg struct {
	jobID string
	apps  []client.Application
	err   error
}

type jobLoadedMsg struct {
	job *client.Job
	err error
}

type jobSavedMsg struct {
	jobID string
	input client.JobInput
	err   error
}

type jobDeletedMsg struct {
	err error
}

type statusUpdatedMsg struct {
	err error
}

// Poster is the dashboard for job posters
type Poster struct {
	deps       Deps
	view       posterView
	width      int
	height     int
	jobs       jobList
	applicants appList
	current    *client.Job
	form       *jobform.Form
	saving     bool
	filter     *filterbar.Bar
	prompt     *prompt
}

// NewPoster creates the poster dashboard
func NewPoster(deps Deps) *Poster {
	return &Poster{
		deps:       deps,
		jobs:       newJobList(),
		applicants: newApplicantList(),
	}
}

// Init loads the job list
func (p *Poster) Init() tea.Cmd {
	return p.loadJobs()
}

// SetSize updates the dashboard dimensions
func (p *Poster) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.jobs.table.SetHeight(listHeight(height))
	p.applicants.table.SetHeight(listHeight(height))
	if p.form != nil {
		p.form.SetWidth(width)
	}
}

// Capturing reports whether a form, filter or prompt owns the keyboard
func (p *Poster) Capturing() bool {
	return p.prompt != nil || p.filter != nil || p.view == posterJobForm
}

// Shortcuts returns the key hints for the current view
func (p *Poster) Shortcuts() []Shortcut {
	switch {
	case p.prompt != nil:
		return []Shortcut{{"←→", "Choose"}, {"enter", "Confirm"}, {"esc", "Cancel"}}
	case p.filter != nil:
		return []Shortcut{{"tab", "Next"}, {"enter", "Apply"}, {"esc", "Cancel"}}
	case p.view == posterJobForm:
		return []Shortcut{{"enter", "Next"}, {"esc", "Cancel"}}
	case p.view == posterApplicants:
		return []Shortcut{{"u", "Status"}, {"/", "Filter"}, {"r", "Refresh"}, {"b", "Back"}}
	default:
		return []Shortcut{{"n", "New"}, {"e", "Edit"}, {"del", "Delete"}, {"enter", "Applicants"}, {"/", "Filter"}, {"r", "Refresh"}}
	}
}

// Update implements tea.Model
func (p *Poster) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil

	case postedJobsMsg:
		p.jobs.loading = false
		if msg.err == nil {
			p.jobs.loaded = true
			p.jobs.set(msg.jobs)
		}
		return p, nil

	case applicantsMsg:
		// The applicants list belongs to one job
		if p.current == nil || msg.jobID != p.current.ID {
			return p, nil
		}
		p.applicants.loading = false
		if msg.err == nil {
			p.applicants.loaded = true
			p.applicants.set(msg.apps)
		}
		return p, nil

	case jobLoadedMsg:
		if msg.err != nil {
			return p, nil
		}
		return p, p.openForm(msg.job.ID, msg.job.Input())

	case jobSavedMsg:
		p.saving = false
		if msg.err != nil {
			return p, p.openForm(msg.jobID, msg.input)
		}
		p.form = nil
		p.view = posterJobs
		return p, p.loadJobs()

	case jobDeletedMsg:
		if msg.err != nil {
			return p, nil
		}
		return p, p.loadJobs()

	case statusUpdatedMsg:
		if msg.err != nil || p.current == nil {
			return p, nil
		}
		return p, p.loadApplicants()

	case jobform.CompleteMsg:
		return p, p.saveJob(msg)

	case jobform.CancelledMsg:
		p.form = nil
		p.view = posterJobs
		return p, nil

	case jobform.InvalidMsg:
		p.deps.Notes.Error(validate.MsgFormErrors)
		return p, nil

	case filterbar.AppliedMsg:
		p.filter = nil
		if p.view == posterApplicants {
			p.applicants.applyFilter(msg.Values)
			return p, p.loadApplicants()
		}
		p.jobs.applyFilter(msg.Values)
		return p, p.loadJobs()

	case filterbar.CancelledMsg:
		p.filter = nil
		return p, nil
	}

	if p.prompt != nil {
		done, cmd := p.prompt.update(msg)
		if done {
			p.prompt = nil
			if p.view == posterStatus {
				p.view = posterApplicants
			}
		}
		return p, cmd
	}
	if p.filter != nil {
		_, cmd := p.filter.Update(msg)
		return p, cmd
	}
	if p.view == posterJobForm {
		if p.form == nil || p.saving {
			return p, nil
		}
		_, cmd := p.form.Update(msg)
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if p.view == posterApplicants {
		return p.updateApplicants(key)
	}
	return p.updateJobs(key)
}

func (p *Poster) updateJobs(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "r":
		return p, p.loadJobs()
	case "/":
		p.filter = filterbar.New(jobFilterFields(), p.jobs.filterValues())
		return p, p.filter.Init()
	case "n":
		return p, p.openForm("", client.JobInput{})
	case "e":
		if j := p.jobs.selected(); j != nil {
			return p, p.loadJob(j.ID)
		}
		return p, nil
	case "delete", "D":
		j := p.jobs.selected()
		if j == nil {
			return p, nil
		}
		id := j.ID
		p.prompt = newConfirm(
			"Delete job posting?",
			"Are you sure you want to delete this job posting? All associated applications will also be deleted.",
			func() tea.Cmd { return p.deleteJob(id) },
		)
		return p, p.prompt.init()
	case "enter":
		j := p.jobs.selected()
		if j == nil {
			return p, nil
		}
		job := *j
		p.current = &job
		p.applicants = newApplicantList()
		p.applicants.table.SetHeight(listHeight(p.height))
		p.view = posterApplicants
		return p, p.loadApplicants()
	}
	return p, p.jobs.update(key)
}

func (p *Poster) updateApplicants(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "b":
		p.view = posterJobs
		return p, nil
	case "r":
		return p, p.loadApplicants()
	case "/":
		p.filter = filterbar.New(applicationFilterFields(), p.applicants.filterValues())
		return p, p.filter.Init()
	case "u":
		a := p.applicants.selected()
		if a == nil {
			return p, nil
		}
		id := a.ID
		p.view = posterStatus
		p.prompt = newStatusPicker(a, func(s client.ApplicationStatus) tea.Cmd {
			return p.updateStatus(id, s)
		})
		return p, p.prompt.init()
	}
	return p, p.applicants.update(key)
}

func (p *Poster) openForm(jobID string, input client.JobInput) tea.Cmd {
	p.form = jobform.New(jobID, input, p.deps.Now)
	p.form.SetWidth(p.width)
	p.view = posterJobForm
	return p.form.Init()
}

func (p *Poster) loadJobs() tea.Cmd {
	p.jobs.loading = true
	deps, filter := p.deps, p.jobs.filter
	return func() tea.Msg {
		jobs, err := deps.API.ListJobs(deps.ctx(), filter)
		if err != nil {
			deps.failed("Failed to fetch jobs", err)
		}
		return postedJobsMsg{jobs: jobs, err: err}
	}
}

func (p *Poster) loadApplicants() tea.Cmd {
	if p.current == nil {
		return nil
	}
	p.applicants.loading = true
	deps, jobID, filter := p.deps, p.current.ID, p.applicants.filter
	return func() tea.Msg {
		apps, err := deps.API.ListApplicants(deps.ctx(), jobID, filter)
		if err != nil {
			deps.failed("Failed to fetch applicants", err)
		}
		return applicantsMsg{jobID: jobID, apps: apps, err: err}
	}
}

func (p *Poster) loadJob(id string) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		job, err := deps.API.GetJob(deps.ctx(), id)
		if err != nil {
			deps.failed("Failed to load job", err)
		}
		return jobLoadedMsg{job: job, err: err}
	}
}

func (p *Poster) saveJob(msg jobform.CompleteMsg) tea.Cmd {
	p.saving = true
	deps := p.deps
	return func() tea.Msg {
		var err error
		if msg.JobID == "" {
			_, err = deps.API.CreateJob(deps.ctx(), msg.Input)
			if err != nil {
				deps.failed("Failed to create job", err)
			} else {
				deps.Notes.Success("Job created successfully!")
			}
		} else {
			_, err = deps.API.UpdateJob(deps.ctx(), msg.JobID, msg.Input)
			if err != nil {
				deps.failed("Failed to update job", err)
			} else {
				deps.Notes.Success("Job updated successfully!")
			}
		}
		return jobSavedMsg{jobID: msg.JobID, input: msg.Input, err: err}
	}
}

func (p *Poster) deleteJob(id string) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		_, err := deps.API.DeleteJob(deps.ctx(), id)
		if err != nil {
			deps.failed("Failed to delete job", err)
		} else {
			deps.Notes.Success("Job deleted successfully!")
		}
		return jobDeletedMsg{err: err}
	}
}

func (p *Poster) updateStatus(id string, status client.ApplicationStatus) tea.Cmd {
	if err := validate.Status(string(status)); err != nil {
		p.deps.Notes.Error("Invalid status selected.")
		return nil
	}
	deps := p.deps
	return func() tea.Msg {
		_, err := deps.API.UpdateApplicationStatus(deps.ctx(), id, status)
		if err != nil {
			deps.failed("Failed to update status", err)
		} else {
			deps.Notes.Success("Application status updated successfully!")
		}
		return statusUpdatedMsg{err: err}
	}
}

// View implements tea.Model
func (p *Poster) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Job.String() + " Job Poster Dashboard"))
	sb.WriteString("\n")
	active := 0
	if p.view == posterJobForm {
		active = 1
	}
	sb.WriteString(tabs([]string{"My Job Postings", "Create New Job"}, active))
	sb.WriteString("\n\n")

	switch p.view {
	case posterJobForm:
		if p.saving || p.form == nil {
			sb.WriteString(styles.Placeholder.Render("Saving job..."))
		} else {
			sb.WriteString(p.form.View())
		}

	case posterApplicants, posterStatus:
		title := ""
		if p.current != nil {
			title = p.current.JobTitle
		}
		sb.WriteString(styles.ValueStyle.Render(icons.Applicant.String() + " Applicants for " + title))
		sb.WriteString("\n\n")
		if p.filter != nil {
			sb.WriteString(p.filter.View())
			sb.WriteString("\n\n")
		}
		sb.WriteString(p.applicants.view(emptyApplicants))
		if a := p.applicants.selected(); a != nil && p.prompt == nil {
			sb.WriteString("\n\n")
			sb.WriteString(field("Status", widgets.ApplicationBadge(a.Status)))
			sb.WriteString(field("Applied", formatAgo(a.AppliedDate)))
		}
		if p.prompt == nil {
			sb.WriteString(pipeline(p.applicants.apps))
		}

	default:
		if p.filter != nil {
			sb.WriteString(p.filter.View())
			sb.WriteString("\n\n")
		}
		sb.WriteString(p.jobs.view(emptyPosted))
		if p.prompt == nil {
			if j := p.jobs.selected(); j != nil {
				sb.WriteString("\n\n")
				sb.WriteString(renderJobDetail(j, p.width))
			}
		}
	}

	if p.prompt != nil {
		sb.WriteString("\n\n")
		sb.WriteString(p.prompt.view())
	}

	return sb.String()
}
