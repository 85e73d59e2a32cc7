// ABOUTME: Inline huh prompts used by the dashboards
// ABOUTME: Yes/no confirmations and the application status picker

package dashboard

import (
	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/tui/styles"
)

// prompt is a one-question huh form that runs submit once answered
type prompt struct {
	form      *huh.Form
	question  string
	confirmed *bool
	submit    func() tea.Cmd
}

func newConfirm(title, description string, onYes func() tea.Cmd) *prompt {
	answer := new(bool)
	p := &prompt{question: description, confirmed: answer}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(answer),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	p.submit = func() tea.Cmd {
		if *answer {
			return onYes()
		}
		return nil
	}
	return p
}

func newStatusPicker(app *client.Application, onPick func(client.ApplicationStatus) tea.Cmd) *prompt {
	status := app.Status
	if !status.Valid() {
		status = client.StatusApplied
	}
	var opts []huh.Option[client.ApplicationStatus]
	for _, s := range client.ApplicationStatuses {
		opts = append(opts, huh.NewOption(string(s), s))
	}

	p := &prompt{question: "Applicant: " + app.ApplicantEmail()}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[client.ApplicationStatus]().
				Title("Update Application Status").
				Description("Applicant: "+app.ApplicantEmail()).
				Options(opts...).
				Value(&status),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	p.submit = func() tea.Cmd { return onPick(status) }
	return p
}

func (p *prompt) init() tea.Cmd {
	return p.form.Init()
}

// update reports done once the prompt is answered or dismissed with esc
func (p *prompt) update(msg tea.Msg) (bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return true, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		return true, p.submit()
	case huh.StateAborted:
		return true, nil
	}
	return false, cmd
}

func (p *prompt) view() string {
	return styles.ActivePanel.Render(p.form.View())
}
