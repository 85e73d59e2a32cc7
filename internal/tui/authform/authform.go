// ABOUTME: Login and signup forms for the TUI
// ABOUTME: Validates input with internal/validate and emits SubmitMsg for the app to authenticate

package authform

import (
	"strings"

	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/validate"
)

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// SubmitMsg carries a validated form
type SubmitMsg struct {
	Mode     Mode
	Email    string
	Password string
	Role     client.Role
}

// InvalidMsg is sent when the completed form fails whole-form validation
type InvalidMsg struct {
	Messages []string
}

// CancelledMsg is sent when the user leaves the form with esc
type CancelledMsg struct{}

// Form is a login or signup form
type Form struct {
	mode     Mode
	email    string
	password string
	confirm  string
	role     client.Role
	errs     []string
	form     *huh.Form
}

// NewLogin creates the login form, prefilled with email
func NewLogin(email string) *Form {
	f := &Form{mode: ModeLogin, email: email}
	f.form = f.build()
	return f
}

// NewSignup creates the signup form, prefilled with email
func NewSignup(email string) *Form {
	f := &Form{mode: ModeSignup, email: email, role: client.RoleApplicant}
	f.form = f.build()
	return f
}

// Mode reports which form this is
func (f *Form) Mode() Mode {
	return f.mode
}

func (f *Form) build() *huh.Form {
	email := huh.NewInput().
		Title("Email Address").
		Placeholder("you@example.com").
		Value(&f.email).
		Validate(validate.Email)

	if f.mode == ModeLogin {
		return huh.NewForm(
			huh.NewGroup(
				email,
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&f.password).
					Validate(func(s string) error { return validate.Required(s, "Password") }),
			).Title("Login to Your Account"),
		).WithTheme(styles.FormTheme()).WithShowHelp(false)
	}

	var roles []huh.Option[client.Role]
	for _, r := range client.Roles {
		roles = append(roles, huh.NewOption(r.Label(), r))
	}

	return huh.NewForm(
		huh.NewGroup(
			email,
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(func(s string) error { return validate.Password(s, validate.MinPasswordLength) }),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.confirm).
				Validate(func(s string) error { return validate.ConfirmPassword(f.password, s) }),
			huh.NewSelect[client.Role]().
				Title("I am a").
				Options(roles...).
				Value(&f.role),
		).Title("Create an Account"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// check runs whole-form validation on the current values
func (f *Form) check() error {
	if f.mode == ModeLogin {
		return validate.LoginInput{Email: f.email, Password: f.password}.Validate()
	}
	return validate.SignupInput{
		Email:           f.email,
		Password:        f.password,
		ConfirmPassword: f.confirm,
		Role:            string(f.role),
	}.Validate()
}

// Init focuses the first field
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards input to the form and reports submission
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if fm, ok := form.(*huh.Form); ok {
		f.form = fm
	}

	if f.form.State != huh.StateCompleted {
		return f, cmd
	}

	if err := f.check(); err != nil {
		msgs := validate.Messages(err)
		f.errs = msgs
		f.password, f.confirm = "", ""
		f.form = f.build()
		return f, tea.Batch(f.form.Init(), func() tea.Msg { return InvalidMsg{Messages: msgs} })
	}

	f.errs = nil
	submit := SubmitMsg{
		Mode:     f.mode,
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
		Role:     f.role,
	}
	return f, func() tea.Msg { return submit }
}

// View renders the form with any whole-form errors above it
func (f *Form) View() string {
	var sb strings.Builder
	if len(f.errs) > 0 {
		errStyle := lipgloss.NewStyle().Foreground(styles.Danger)
		for _, e := range f.errs {
			sb.WriteString(errStyle.Render("• " + e))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(f.form.View())

	hint := "Don't have an account? Press esc, then s to sign up."
	if f.mode == ModeSignup {
		hint = "Already have an account? Press esc, then l to log in."
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(hint))
	return sb.String()
}
