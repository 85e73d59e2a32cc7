// ABOUTME: Tests for the home menu
// ABOUTME: Validates the offered routes for anonymous and signed-in sessions

package menu

import (
	"testing"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/router"
	"github.com/markalston/jobboard/internal/session"
)

func routes(m *Menu) []router.Route {
	var out []router.Route
	for _, opt := range m.options {
		out = append(out, opt.route)
	}
	return out
}

func TestMenuOptions_Anonymous(t *testing.T) {
	m := New(session.Snapshot{Status: session.Anonymous})

	got := routes(m)
	if len(got) != 2 || got[0] != router.RouteLogin || got[1] != router.RouteSignup {
		t.Errorf("expected login and signup, got %v", got)
	}
	if m.selected != router.RouteLogin {
		t.Errorf("expected login preselected, got %q", m.selected)
	}
	if m.options[1].label != "Sign Up" {
		t.Errorf("expected 'Sign Up' label, got %q", m.options[1].label)
	}
}

func TestMenuOptions_Authenticated(t *testing.T) {
	m := New(session.Snapshot{
		Status:  session.Authenticated,
		Session: &session.Session{Email: "a@example.com", Role: client.RoleApplicant},
	})

	got := routes(m)
	if len(got) != 2 || got[0] != router.RouteDashboard || got[1] != router.RouteProfile {
		t.Errorf("expected dashboard and profile, got %v", got)
	}
}

func TestMenuOptions_Loading(t *testing.T) {
	m := New(session.Snapshot{Status: session.Checking})
	if len(m.options) != 0 {
		t.Errorf("expected no options while checking, got %v", routes(m))
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		route router.Route
		want  string
	}{
		{router.RouteHome, "Home"},
		{router.RouteLogin, "Login"},
		{router.RouteSignup, "Sign Up"},
		{router.RouteDashboard, "Go to Dashboard"},
		{router.RouteProfile, "Profile"},
		{router.Route("admin"), "admin"},
	}
	for _, tt := range tests {
		if got := Label(tt.route); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.route, got, tt.want)
		}
	}
}
