package router

import "net/url"

// Meta tags a route. Tags are inherited by nested routes.
type Meta struct {
	RequiresAuth bool
	GuestOnly    bool
}

// Merge ORs the tags of m and o.
func (m Meta) Merge(o Meta) Meta {
	return Meta{
		RequiresAuth: m.RequiresAuth || o.RequiresAuth,
		GuestOnly:    m.GuestOnly || o.GuestOnly,
	}
}

type Action int

const (
	Proceed Action = iota
	RedirectLogin
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Proceed:
		return "proceed"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Route names the guard redirects to.
const (
	LoginRoute = "login"
	HomeRoute  = "home"
)

// RedirectParam is the query parameter carrying the path a login redirect
// should return to.
const RedirectParam = "redirect"

// Decision is the outcome of a navigation attempt. Target is the route name
// to go to instead; TargetPath is filled in by Router.Navigate. Redirect is
// set on login redirects only.
type Decision struct {
	Action     Action
	Target     string
	TargetPath string
	Redirect   string
}

// Location renders where the navigation ends up, with the return path as a
// query parameter on login redirects.
func (d Decision) Location() string {
	if d.Action == Proceed {
		return ""
	}
	if d.Redirect == "" {
		return d.TargetPath
	}
	q := url.Values{}
	q.Set(RedirectParam, d.Redirect)
	return d.TargetPath + "?" + q.Encode()
}

// Decide applies the guard table. RequiresAuth is checked before GuestOnly,
// so a route carrying both tags behaves as auth-only.
func Decide(meta Meta, authenticated bool, fullPath string) Decision {
	switch {
	case meta.RequiresAuth && !authenticated:
		return Decision{Action: RedirectLogin, Target: LoginRoute, Redirect: fullPath}
	case meta.RequiresAuth:
		return Decision{Action: Proceed}
	case meta.GuestOnly && authenticated:
		return Decision{Action: RedirectHome, Target: HomeRoute}
	}
	return Decision{Action: Proceed}
}
