// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Resolves the current view from session state and routes input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/markalston/jobboard/internal/credential"
	"github.com/markalston/jobboard/internal/logger"
	"github.com/markalston/jobboard/internal/notify"
	"github.com/markalston/jobboard/internal/router"
	"github.com/markalston/jobboard/internal/session"
	"github.com/markalston/jobboard/internal/tui/authform"
	"github.com/markalston/jobboard/internal/tui/dashboard"
	"github.com/markalston/jobboard/internal/tui/icons"
	"github.com/markalston/jobboard/internal/tui/menu"
	"github.com/markalston/jobboard/internal/tui/recentlogins"
	"github.com/markalston/jobboard/internal/tui/styles"
	"github.com/markalston/jobboard/internal/tui/toast"
	"github.com/markalston/jobboard/internal/tui/widgets"
	"github.com/markalston/jobboard/internal/validate"
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	panelPadding     = 6  // Panel border plus horizontal padding
	frameOverhead    = 8  // Header, footer, panel border and padding
)

// sessionInitMsg is sent when the persisted session has been checked
type sessionInitMsg struct {
	err error
}

// authDoneMsg is sent when a login or registration request returns
type authDoneMsg struct {
	err error
}

// sessionChangedMsg is sent by the session observer
type sessionChangedMsg struct{}

// notesChangedMsg is sent by the notification observer
type notesChangedMsg struct{}

// Deps are the stores and backend the TUI runs against
type Deps struct {
	Client  dashboard.API
	Session *session.Store
	Notes   *notify.Store
	Recent  *recentlogins.RecentLogins
	Logger  *slog.Logger
	Ctx     context.Context
	Now     func() time.Time
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

// App is the root model for the TUI
type App struct {
	deps      Deps
	route     router.Route
	view      router.View
	snap      session.Snapshot
	width     int
	height    int
	lastEmail string

	// Child models. At most one is set, matching view.
	menu *menu.Menu
	auth *authform.Form
	dash dashboard.Model
}

// New creates a new TUI application
func New(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	snap := deps.Session.Snapshot()
	app := &App{
		deps:  deps,
		route: router.RouteHome,
		snap:  snap,
		view:  router.Resolve(snap, router.RouteHome),
	}
	if deps.Recent != nil {
		app.lastEmail = deps.Recent.Last()
	}
	return app
}

// Init starts the session check
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.initSession(), a.sync())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dash != nil {
			a.dash.SetSize(a.contentWidth(), a.contentHeight())
		}
		return a, a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturing() {
			if cmd, ok := a.globalKey(msg); ok {
				return a, cmd
			}
		}
		return a, a.forward(msg)

	case sessionInitMsg:
		if msg.err != nil {
			a.deps.Logger.Debug("session restore failed", "error", msg.err)
		}
		return a, a.sync()

	case sessionChangedMsg:
		return a, a.sync()

	case notesChangedMsg:
		return a, nil

	case authDoneMsg:
		// A finished form is rebuilt if the view stays on it
		a.auth = nil
		return a, a.sync()

	case menu.SelectedMsg:
		return a, a.navigate(msg.Route)

	case authform.SubmitMsg:
		return a, a.submit(msg)

	case authform.InvalidMsg:
		a.deps.Notes.Error(validate.MsgFormErrors)
		return a, nil

	case authform.CancelledMsg:
		return a, a.navigate(router.RouteHome)
	}

	return a, a.forward(msg)
}

func (a *App) capturing() bool {
	if a.auth != nil {
		return true
	}
	return a.dash != nil && a.dash.Capturing()
}

func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "h":
		return a.navigate(router.RouteHome), true
	case "d":
		return a.navigate(router.RouteDashboard), true
	case "p":
		return a.navigate(router.RouteProfile), true
	case "l":
		return a.navigate(router.RouteLogin), true
	case "s":
		return a.navigate(router.RouteSignup), true
	case "o":
		if !a.snap.Authenticated() {
			return nil, true
		}
		a.deps.Session.Logout()
		return a.sync(), true
	case "x":
		notes := a.deps.Notes.List()
		if len(notes) > 0 {
			a.deps.Notes.Remove(notes[len(notes)-1].ID)
		}
		return nil, true
	}
	return nil, false
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	switch {
	case a.auth != nil:
		model, cmd := a.auth.Update(msg)
		a.auth = model.(*authform.Form)
		return cmd
	case a.menu != nil:
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return cmd
	case a.dash != nil:
		_, cmd := a.dash.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) navigate(route router.Route) tea.Cmd {
	a.route = route
	return a.sync()
}

// sync re-reads the session and shows the view it resolves to. Losing the
// session sends the user to login; gaining one leaves the auth forms for the
// dashboard.
func (a *App) sync() tea.Cmd {
	prev := a.snap
	a.snap = a.deps.Session.Snapshot()

	switch {
	case prev.Authenticated() && a.snap.Status == session.Anonymous:
		a.route = router.RouteLogin
	case !prev.Authenticated() && a.snap.Authenticated():
		if a.route == router.RouteLogin || a.route == router.RouteSignup {
			a.route = router.RouteDashboard
		}
	}

	return a.show(router.Resolve(a.snap, a.route))
}

func (a *App) show(view router.View) tea.Cmd {
	if view == a.view && a.hasChild(view) {
		return nil
	}
	a.view = view
	a.menu, a.auth, a.dash = nil, nil, nil

	switch view {
	case router.Home:
		a.menu = menu.New(a.snap)
		return a.menu.Init()
	case router.Login:
		a.auth = authform.NewLogin(a.lastEmail)
		return a.auth.Init()
	case router.Signup:
		a.auth = authform.NewSignup(a.lastEmail)
		return a.auth.Init()
	case router.PosterDashboard:
		a.dash = dashboard.NewPoster(a.dashboardDeps())
	case router.ApplicantDashboard:
		a.dash = dashboard.NewApplicant(a.dashboardDeps())
	default:
		return nil
	}
	a.dash.SetSize(a.contentWidth(), a.contentHeight())
	return a.dash.Init()
}

func (a *App) hasChild(view router.View) bool {
	switch view {
	case router.Home:
		return a.menu != nil
	case router.Login, router.Signup:
		return a.auth != nil
	case router.PosterDashboard, router.ApplicantDashboard:
		return a.dash != nil
	default:
		return true
	}
}

func (a *App) dashboardDeps() dashboard.Deps {
	return dashboard.Deps{
		API:   a.deps.Client,
		Notes: a.deps.Notes,
		Ctx:   a.deps.Ctx,
		Now:   a.deps.Now,
	}
}

// initSession restores the persisted session
func (a *App) initSession() tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		return sessionInitMsg{err: deps.Session.Initialize(deps.ctx())}
	}
}

// submit runs login or registration for a completed auth form
func (a *App) submit(msg authform.SubmitMsg) tea.Cmd {
	a.lastEmail = msg.Email
	deps := a.deps
	return func() tea.Msg {
		var err error
		if msg.Mode == authform.ModeSignup {
			_, err = deps.Session.Register(deps.ctx(), msg.Email, msg.Password, msg.Role)
		} else {
			_, err = deps.Session.Login(deps.ctx(), msg.Email, msg.Password)
		}
		if err == nil && deps.Recent != nil {
			if saveErr := deps.Recent.Add(msg.Email); saveErr != nil {
				deps.Logger.Warn("saving recent login failed", "error", saveErr)
			}
		}
		return authDoneMsg{err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.view {
	case router.Loading:
		content = styles.Placeholder.Render("Loading...")
	case router.Home:
		content = a.viewHome()
	case router.Login, router.Signup:
		if a.auth != nil {
			content = a.auth.View()
		} else {
			content = styles.Placeholder.Render("Signing in...")
		}
	case router.PosterDashboard, router.ApplicantDashboard:
		if a.dash != nil {
			content = a.dash.View()
		}
	case router.Profile:
		content = a.viewProfile()
	default:
		content = a.viewNotFound()
	}

	return a.wrapWithFrame(styles.ActivePanel.Width(a.frameWidth() - 2).Render(content))
}

func (a *App) viewHome() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Home.String() + " Welcome to the Job Portal!"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Your ultimate destination for finding and posting jobs."))
	sb.WriteString("\n\n")
	if a.menu != nil {
		sb.WriteString(a.menu.View())
	}
	return sb.String()
}

func (a *App) viewProfile() string {
	sess := a.snap.Session
	if sess == nil {
		return styles.StatusCritical.Render("You need to be logged in to view your profile.")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " My Profile"))
	sb.WriteString("\n\n")
	sb.WriteString(profileRow("Email", sess.Email))
	sb.WriteString(profileRow("User ID", sess.UserID))
	sb.WriteString(profileRow("Role", widgets.RoleBadge(sess.Role)))
	if exp, ok := credential.Expiry(sess.Credential); ok {
		sb.WriteString(profileRow("Session", "expires "+humanize.RelTime(exp, a.deps.now(), "ago", "from now")))
	}
	return sb.String()
}

func profileRow(label, value string) string {
	return styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value) + "\n"
}

func (a *App) viewNotFound() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusCritical.Render("404 Page Not Found"))
	sb.WriteString("\n\n")
	sb.WriteString("The page you are looking for does not exist.")
	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("Press h to go home"))
	return sb.String()
}

// frameWidth is the terminal width less one column, so the frame never wraps
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentWidth is the width available inside the content panel
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight is the height available inside the content panel
func (a *App) contentHeight() int {
	return a.height - frameOverhead
}

// renderHeader creates the header bar with app branding and the signed in user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Job Portal"))

	right := ""
	if sess := a.snap.Session; a.snap.Authenticated() && sess != nil {
		right = " " + contextStyle.Render(sess.Email) + " " + widgets.RoleBadge(sess.Role) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(left) - lipgloss.Width(right) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		right = ""
		fillWidth = max(width-4-lipgloss.Width(left), 0)
	}

	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fillWidth)) + right + borderStyle.Render("─╮")
}

// shortcuts lists the footer key hints for the current view
func (a *App) shortcuts() []dashboard.Shortcut {
	var out []dashboard.Shortcut
	switch {
	case a.auth != nil:
		out = append(out, dashboard.Shortcut{Key: "enter", Label: "Next"}, dashboard.Shortcut{Key: "esc", Label: "Back"})
	case a.dash != nil:
		out = append(out, a.dash.Shortcuts()...)
		if a.dash.Capturing() {
			return out
		}
	case a.menu != nil:
		out = append(out, dashboard.Shortcut{Key: "↑↓", Label: "Navigate"}, dashboard.Shortcut{Key: "enter", Label: "Select"})
	}

	if a.snap.Authenticated() {
		out = append(out, dashboard.Shortcut{Key: "d", Label: "Dashboard"}, dashboard.Shortcut{Key: "p", Label: "Profile"}, dashboard.Shortcut{Key: "o", Label: "Logout"})
	} else if a.auth == nil {
		out = append(out, dashboard.Shortcut{Key: "h", Label: "Home"}, dashboard.Shortcut{Key: "l", Label: "Login"}, dashboard.Shortcut{Key: "s", Label: "Sign Up"})
	}
	if len(a.deps.Notes.List()) > 0 && a.auth == nil {
		out = append(out, dashboard.Shortcut{Key: "x", Label: "Dismiss"})
	}
	if a.auth == nil {
		out = append(out, dashboard.Shortcut{Key: "q", Label: "Quit"})
	}
	return out
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	right := ""
	if n := len(a.deps.Notes.List()); n > 0 {
		right = statusStyle.Render(fmt.Sprintf("%d %s", n, plural(n, "notification"))) + " "
	}

	// Drop hints from the end until the footer fits
	shortcuts := a.shortcuts()
	var left string
	for {
		var parts []string
		for _, s := range shortcuts {
			parts = append(parts, keyStyle.Render(s.Key)+" "+labelStyle.Render(s.Label))
		}
		left = " " + strings.Join(parts, "  ") + " "
		if len(shortcuts) == 0 || lipgloss.Width(left)+lipgloss.Width(right)+4 <= width {
			break
		}
		shortcuts = shortcuts[:len(shortcuts)-1]
	}

	fillWidth := width - 4 - lipgloss.Width(left) - lipgloss.Width(right) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		right = ""
		fillWidth = max(width-4-lipgloss.Width(left), 0)
	}

	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fillWidth)) + right + borderStyle.Render("─╯")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// wrapWithFrame wraps content with header, notifications and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	if notes := toast.Render(a.deps.Notes.List(), a.frameWidth()); notes != "" {
		sb.WriteString(notes)
		sb.WriteString("\n")
	}
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, deps Deps) error {
	if deps.Ctx == nil {
		deps.Ctx = ctx
	}
	app := New(deps)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// Observers fire inside store calls made from Update, so they must not
	// block on the program's message channel.
	unsubSession := deps.Session.Subscribe(func(session.Snapshot) {
		go p.Send(sessionChangedMsg{})
	})
	defer unsubSession()
	unsubNotes := deps.Notes.Subscribe(func([]notify.Notification) {
		go p.Send(notesChangedMsg{})
	})
	defer unsubNotes()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
