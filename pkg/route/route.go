// Package route decides what a client renders for a path given the
// current session state.
package route

import (
	"strings"

	"github.com/aussiebroadwan/devconnect/pkg/session"
)

// Kind is the access class of a route.
type Kind int

const (
	Public Kind = iota
	Protected
)

func (k Kind) String() string {
	if k == Protected {
		return "protected"
	}
	return "public"
}

// Route binds a path pattern to a view. Pattern segments starting with ':'
// match any single segment.
type Route struct {
	Pattern string
	Kind    Kind
	View    string
}

// Action is what the client should do for a request.
type Action int

const (
	// RenderNothing holds the screen blank while the session resolves.
	RenderNothing Action = iota
	RenderView
	Redirect
)

// Decision is the outcome of Guard.Resolve.
type Decision struct {
	Action     Action
	View       string
	RedirectTo string
}

// DefaultLoginPath is where unauthenticated visitors of protected routes go.
const DefaultLoginPath = "/login"

// Guard gates protected routes on the session state.
type Guard struct {
	LoginPath string
}

// Resolve is a pure function of the route and state. Public routes always
// render. Protected routes render nothing until the session has resolved,
// then render for an authenticated session and redirect otherwise.
func (g Guard) Resolve(r Route, st session.State) Decision {
	switch r.Kind {
	case Public:
		return Decision{Action: RenderView, View: r.View}
	case Protected:
		switch st.Status {
		case session.Authenticated:
			return Decision{Action: RenderView, View: r.View}
		case session.Unauthenticated:
			return Decision{Action: Redirect, RedirectTo: g.loginPath()}
		default:
			return Decision{Action: RenderNothing}
		}
	default:
		return Decision{Action: RenderNothing}
	}
}

func (g Guard) loginPath() string {
	if g.LoginPath == "" {
		return DefaultLoginPath
	}
	return g.LoginPath
}

// Table is an ordered route list; the first match wins.
type Table []Route

// Match finds the route for path and returns the values of its ':' params.
func (t Table) Match(path string) (Route, map[string]string, bool) {
	want := split(path)
	for _, r := range t {
		if params, ok := match(split(r.Pattern), want); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

func match(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pattern {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if path[i] == "" {
				return nil, false
			}
			params[name] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// DevConnect is the client route table.
var DevConnect = Table{
	{Pattern: "/", Kind: Public, View: "landing"},
	{Pattern: "/register", Kind: Public, View: "register"},
	{Pattern: "/login", Kind: Public, View: "login"},
	{Pattern: "/profiles", Kind: Public, View: "profiles"},
	{Pattern: "/profile/:id", Kind: Public, View: "profile"},
	{Pattern: "/dashboard", Kind: Protected, View: "dashboard"},
	{Pattern: "/create-profile", Kind: Protected, View: "create-profile"},
	{Pattern: "/edit-profile", Kind: Protected, View: "edit-profile"},
	{Pattern: "/add-experience", Kind: Protected, View: "add-experience"},
	{Pattern: "/add-education", Kind: Protected, View: "add-education"},
	{Pattern: "/posts", Kind: Protected, View: "posts"},
	{Pattern: "/posts/:id", Kind: Protected, View: "post"},
}
