// ABOUTME: Home screen menu offering the routes open to the current session
// ABOUTME: Embeds a huh select and emits SelectedMsg once a route is chosen

package menu

import (
	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/jobboard/internal/router"
	"github.com/markalston/jobboard/internal/session"
	"github.com/markalston/jobboard/internal/tui/styles"
)

// SelectedMsg is sent when the user picks a route
type SelectedMsg struct {
	Route router.Route
}

type option struct {
	label string
	route router.Route
}

// Menu represents the home screen route selection
type Menu struct {
	options  []option
	selected router.Route
	form     *huh.Form
}

// Label returns the menu text for a route
func Label(r router.Route) string {
	switch r {
	case router.RouteHome:
		return "Home"
	case router.RouteLogin:
		return "Login"
	case router.RouteSignup:
		return "Sign Up"
	case router.RouteDashboard:
		return "Go to Dashboard"
	case router.RouteProfile:
		return "Profile"
	default:
		return string(r)
	}
}

// New builds the menu from the routes allowed for snap, home excluded
func New(snap session.Snapshot) *Menu {
	m := &Menu{}
	for _, r := range router.Allowed(snap) {
		if r == router.RouteHome {
			continue
		}
		m.options = append(m.options, option{label: Label(r), route: r})
	}
	if len(m.options) > 0 {
		m.selected = m.options[0].route
	}

	var opts []huh.Option[router.Route]
	for _, opt := range m.options {
		opts = append(opts, huh.NewOption(opt.label, opt.route))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[router.Route]().
				Title("Where would you like to go?").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)

	return m
}

// Init focuses the select
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update forwards input to the select and reports the choice
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		route := m.selected
		return m, func() tea.Msg { return SelectedMsg{Route: route} }
	}
	return m, cmd
}

// View renders the select
func (m *Menu) View() string {
	return m.form.View()
}
