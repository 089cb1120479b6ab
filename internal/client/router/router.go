// Package router parses hash routes and gates page rendering on the
// session state. Guard is a pure function: each navigation event is
// evaluated from scratch and either renders or issues one redirect, which
// triggers exactly one further evaluation.
package router

import "strings"

// Route is the parsed form of a hash fragment: a resource segment and an
// optional id segment. "/story/<id>" is the only parameterized route; all
// other routes are exact matches.
type Route struct {
	Resource string
	ID       string
}

// ParseHash parses a location hash ("#/story/abc-123") into a Route. The
// leading "#" and "/" are optional; the resource is lowercased.
func ParseHash(hash string) Route {
	trimmed := strings.TrimPrefix(hash, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")

	parts := strings.SplitN(trimmed, "/", 2)
	r := Route{Resource: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		r.ID = parts[1]
	}
	return r
}

// Pattern renders the route in registry form: "/" for the root,
// "/story/:id" when an id is present, "/<resource>" otherwise.
func (r Route) Pattern() string {
	if r.Resource == "" {
		return "/"
	}
	if r.ID != "" {
		return "/" + r.Resource + "/:id"
	}
	return "/" + r.Resource
}

// Action is what the guard decided for a navigation event.
type Action int

const (
	// Render allows the page matching the route to mount.
	Render Action = iota
	// Redirect replaces the route with Target and re-evaluates once.
	Redirect
)

// Decision is the guard's verdict. ClearSession asks the caller to drop
// the session record before following the redirect.
type Decision struct {
	Action       Action
	Target       string
	ClearSession bool
}

// protected routes require a signed-in session.
var protected = map[string]bool{
	"/home":      true,
	"/add":       true,
	"/bookmarks": true,
	"/story/:id": true,
}

// entry routes are inverted: a signed-in user is sent home instead.
var entry = map[string]bool{
	"/login":    true,
	"/register": true,
}

// Guard decides the action for a route given the session state.
func Guard(route Route, signedIn bool) Decision {
	pattern := route.Pattern()

	switch {
	case pattern == "/":
		return Decision{Action: Redirect, Target: "/login"}
	case pattern == "/logout":
		return Decision{Action: Redirect, Target: "/login", ClearSession: true}
	case protected[pattern]:
		if !signedIn {
			return Decision{Action: Redirect, Target: "/login"}
		}
		return Decision{Action: Render}
	case entry[pattern]:
		if signedIn {
			return Decision{Action: Redirect, Target: "/home"}
		}
		return Decision{Action: Render}
	// /about is public: it renders regardless of session state.
	case pattern == "/about", pattern == "/404":
		return Decision{Action: Render}
	default:
		return Decision{Action: Redirect, Target: "/404"}
	}
}
