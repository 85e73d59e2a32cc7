// ABOUTME: View router and role gate
// ABOUTME: Maps (session state, requested route) to exactly one view

package router

import (
	"strings"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/session"
)

// Route is a view the user asked for
type Route string

const (
	RouteHome      Route = "home"
	RouteLogin     Route = "login"
	RouteSignup    Route = "signup"
	RouteDashboard Route = "dashboard"
	RouteProfile   Route = "profile"
)

// Routes lists every known route
var Routes = []Route{RouteHome, RouteLogin, RouteSignup, RouteDashboard, RouteProfile}

// ParseRoute normalizes a route name. Unknown names are kept as-is and
// resolve to NotFound.
func ParseRoute(s string) Route {
	return Route(strings.ToLower(strings.Trim(strings.TrimSpace(s), "/")))
}

// View is what gets rendered
type View int

const (
	Loading View = iota
	Home
	Login
	Signup
	PosterDashboard
	ApplicantDashboard
	Profile
	NotFound
)

// Views lists every view
var Views = []View{Loading, Home, Login, Signup, PosterDashboard, ApplicantDashboard, Profile, NotFound}

func (v View) String() string {
	switch v {
	case Loading:
		return "loading"
	case Home:
		return "home"
	case Login:
		return "login"
	case Signup:
		return "signup"
	case PosterDashboard:
		return "poster-dashboard"
	case ApplicantDashboard:
		return "applicant-dashboard"
	case Profile:
		return "profile"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Resolve picks the view for a route given the session state. Authenticated
// users asking for login or signup get NotFound.
func Resolve(snap session.Snapshot, route Route) View {
	switch snap.Status {
	case session.Uninitialized, session.Checking:
		return Loading
	case session.Anonymous:
		return resolveAnonymous(route)
	case session.Authenticated:
		if snap.Session == nil {
			return NotFound
		}
		return resolveAuthenticated(snap.Session.Role, route)
	default:
		return NotFound
	}
}

func resolveAnonymous(route Route) View {
	switch route {
	case RouteHome:
		return Home
	case RouteLogin:
		return Login
	case RouteSignup:
		return Signup
	default:
		return NotFound
	}
}

func resolveAuthenticated(role client.Role, route Route) View {
	switch route {
	case RouteHome, RouteDashboard:
		return Dashboard(role)
	case RouteProfile:
		return Profile
	default:
		return NotFound
	}
}

// Dashboard returns the dashboard variant for role
func Dashboard(role client.Role) View {
	switch role {
	case client.RolePoster:
		return PosterDashboard
	case client.RoleApplicant:
		return ApplicantDashboard
	default:
		return NotFound
	}
}

// Allowed lists the routes that resolve to a real view for the snapshot
func Allowed(snap session.Snapshot) []Route {
	var out []Route
	for _, r := range Routes {
		switch Resolve(snap, r) {
		case Loading, NotFound:
			continue
		}
		out = append(out, r)
	}
	return out
}
