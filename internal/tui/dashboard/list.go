// ABOUTME: Table-backed job and application lists with their own loading state
// ABOUTME: Also defines the filter fields each list offers

package dashboard

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/tui/filterbar"
	"github.com/markalston/jobboard/internal/tui/styles"
)

// Empty-state texts
const (
	emptyBrowse     = "No job postings available at the moment."
	emptyPosted     = "No job postings found. Create one to get started!"
	emptyApplicants = "No applicants for this job yet."
	emptyMine       = "You haven't applied to any jobs yet."
)

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.TableStyles())
	return t
}

func listHeight(height int) int {
	if h := height / 2; h > 5 {
		return h
	}
	return 5
}

// jobList is one independently loaded list of jobs
type jobList struct {
	loading bool
	loaded  bool
	jobs    []client.Job
	filter  client.JobFilter
	table   table.Model
}

func newJobList() jobList {
	return jobList{
		filter: client.JobFilter{Sort: client.DefaultJobSort},
		table: newTable([]table.Column{
			{Title: "Title", Width: 24},
			{Title: "Company", Width: 18},
			{Title: "Location", Width: 14},
			{Title: "Salary", Width: 16},
			{Title: "Deadline", Width: 10},
			{Title: "Posted", Width: 14},
		}),
	}
}

func (l *jobList) set(jobs []client.Job) {
	l.jobs = jobs
	rows := make([]table.Row, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, table.Row{
			j.JobTitle,
			j.CompanyName,
			j.Location,
			j.SalaryRange,
			formatDate(j.ApplicationDeadline),
			formatAgo(j.CreatedAt),
		})
	}
	l.table.SetRows(rows)
	if c := l.table.Cursor(); c >= len(rows) {
		l.table.SetCursor(max(0, len(rows)-1))
	}
}

func (l *jobList) selected() *client.Job {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.jobs) {
		return nil
	}
	return &l.jobs[i]
}

func (l *jobList) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return cmd
}

func (l *jobList) view(empty string) string {
	switch {
	case l.loading && len(l.jobs) == 0:
		return styles.Placeholder.Render("Loading jobs...")
	case len(l.jobs) == 0:
		return styles.Placeholder.Render(empty)
	}
	return l.table.View()
}

func (l *jobList) filterValues() map[string]string {
	return map[string]string{
		"search":   l.filter.Search,
		"location": l.filter.Location,
		"sort":     l.filter.Sort,
	}
}

func (l *jobList) applyFilter(values map[string]string) {
	l.filter = client.JobFilter{
		Search:   values["search"],
		Location: values["location"],
		Sort:     values["sort"],
	}
}

// appList is one independently loaded list of applications
type appList struct {
	loading bool
	loaded  bool
	apps    []client.Application
	filter  client.ApplicationFilter
	row     func(client.Application) table.Row
	table   table.Model
}

// newApplicantList lists the applicants of one job
func newApplicantList() appList {
	return appList{
		filter: client.ApplicationFilter{Sort: client.DefaultApplicationSort},
		row: func(a client.Application) table.Row {
			return table.Row{a.ApplicantEmail(), string(a.Status), formatDate(a.AppliedDate), a.Notes, a.ResumeURL}
		},
		table: newTable([]table.Column{
			{Title: "Applicant", Width: 26},
			{Title: "Status", Width: 10},
			{Title: "Applied", Width: 10},
			{Title: "Notes", Width: 24},
			{Title: "Resume", Width: 22},
		}),
	}
}

// newMyApplicationsList lists the signed-in applicant's applications
func newMyApplicationsList() appList {
	return appList{
		filter: client.ApplicationFilter{Sort: client.DefaultApplicationSort},
		row: func(a client.Application) table.Row {
			return table.Row{a.JobTitle(), a.CompanyName(), string(a.Status), formatDate(a.AppliedDate)}
		},
		table: newTable([]table.Column{
			{Title: "Job", Width: 28},
			{Title: "Company", Width: 22},
			{Title: "Status", Width: 10},
			{Title: "Applied", Width: 10},
		}),
	}
}

func (l *appList) set(apps []client.Application) {
	l.apps = apps
	rows := make([]table.Row, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, l.row(a))
	}
	l.table.SetRows(rows)
	if c := l.table.Cursor(); c >= len(rows) {
		l.table.SetCursor(max(0, len(rows)-1))
	}
}

func (l *appList) selected() *client.Application {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.apps) {
		return nil
	}
	return &l.apps[i]
}

func (l *appList) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return cmd
}

func (l *appList) view(empty string) string {
	switch {
	case l.loading && len(l.apps) == 0:
		return styles.Placeholder.Render("Loading applications...")
	case len(l.apps) == 0:
		return styles.Placeholder.Render(empty)
	}
	return l.table.View()
}

func (l *appList) filterValues() map[string]string {
	return map[string]string{
		"status": string(l.filter.Status),
		"sort":   l.filter.Sort,
	}
}

func (l *appList) applyFilter(values map[string]string) {
	l.filter = client.ApplicationFilter{
		Status: client.ApplicationStatus(values["status"]),
		Sort:   values["sort"],
	}
}

var jobSortLabels = map[string]string{
	client.SortCreatedDesc: "Newest First",
	client.SortCreatedAsc:  "Oldest First",
	client.SortTitleAsc:    "Job Title (A-Z)",
	client.SortTitleDesc:   "Job Title (Z-A)",
	client.SortCompanyAsc:  "Company (A-Z)",
	client.SortCompanyDesc: "Company (Z-A)",
}

var applicationSortLabels = map[string]string{
	client.SortAppliedDesc: "Newest First",
	client.SortAppliedAsc:  "Oldest First",
	client.SortStatusAsc:   "Status (A-Z)",
	client.SortStatusDesc:  "Status (Z-A)",
}

func sortChoices(keys []string, labels map[string]string) []filterbar.Choice {
	out := make([]filterbar.Choice, 0, len(keys))
	for _, k := range keys {
		out = append(out, filterbar.Choice{Label: labels[k], Value: k})
	}
	return out
}

func jobFilterFields() []filterbar.Field {
	return []filterbar.Field{
		{Key: "search", Label: "Search", Placeholder: "Search jobs..."},
		{Key: "location", Label: "Location", Placeholder: "Filter by location..."},
		{Key: "sort", Label: "Sort By", Choices: sortChoices(client.JobSorts, jobSortLabels)},
	}
}

func applicationFilterFields() []filterbar.Field {
	statuses := []filterbar.Choice{{Label: "All Statuses", Value: ""}}
	for _, s := range client.ApplicationStatuses {
		statuses = append(statuses, filterbar.Choice{Label: string(s), Value: string(s)})
	}
	return []filterbar.Field{
		{Key: "status", Label: "Status", Choices: statuses},
		{Key: "sort", Label: "Sort By", Choices: sortChoices(client.ApplicationSorts, applicationSortLabels)},
	}
}
