// Package guard gates navigation on session state.
//
// A guard never performs navigation itself; it returns a decision the
// command or view layer acts on. While the initial session restore is in
// flight both guard variants decide ShowLoading, so a protected view never
// flashes the login screen and a public view never flashes a redirect.
package guard

// Routes the guards redirect between. The login route is public-only and the
// landing route is protected, so a redirect from one can never bounce back
// without the session state changing in between.
const (
	RouteLogin   = "login"
	RouteLanding = "dashboard"
)

// State is the session snapshot a guard decides on.
type State struct {
	Loading       bool
	Authenticated bool
}

// Outcome is what the navigation layer should do.
type Outcome int

const (
	// ShowLoading renders a neutral loading state: no content, no redirect.
	ShowLoading Outcome = iota
	// Render shows the requested view.
	Render
	// Redirect navigates to Decision.Target instead.
	Redirect
)

// String returns a readable outcome name.
func (o Outcome) String() string {
	switch o {
	case ShowLoading:
		return "loading"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is a guard's verdict for one navigation attempt.
type Decision struct {
	Outcome Outcome
	// Target is the route to navigate to when Outcome is Redirect.
	Target string
	// From preserves the originally requested route across a redirect to
	// login, so the caller can return there after authentication.
	From string
}

// Protected gates a view that requires authentication.
func Protected(s State, requested string) Decision {
	if s.Loading {
		return Decision{Outcome: ShowLoading}
	}
	if !s.Authenticated {
		return Decision{Outcome: Redirect, Target: RouteLogin, From: requested}
	}
	return Decision{Outcome: Render}
}

// PublicOnly gates a view reserved for logged-out users (login,
// registration entry points).
func PublicOnly(s State) Decision {
	if s.Loading {
		return Decision{Outcome: ShowLoading}
	}
	if s.Authenticated {
		return Decision{Outcome: Redirect, Target: RouteLanding}
	}
	return Decision{Outcome: Render}
}
