package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/logging"
)

var ErrNoRoute = errors.New("no route matches path")

// Route is one node of the route table. Child paths are relative to the
// parent; an empty child path matches the parent path itself. Only named
// routes can be navigated to.
type Route struct {
	Name     string
	Path     string
	Meta     Meta
	Children []Route
}

// Match is a resolved path: the route, its ancestors (outermost first,
// ending with the route itself) and the full path that was asked for,
// including its query string.
type Match struct {
	Route    Route
	Chain    []Route
	FullPath string
}

// Meta ORs the tags of every route in the chain.
func (m Match) Meta() Meta {
	var out Meta
	for _, r := range m.Chain {
		out = out.Merge(r.Meta)
	}
	return out
}

// AuthChecker reports whether the user is logged in.
// *session.Session implements it.
type AuthChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

type entry struct {
	path  string
	chain []Route
}

type Router struct {
	byPath map[string]entry
	byName map[string]string
	log    logging.Logger
}

type Option func(*Router)

func WithLogger(l logging.Logger) Option {
	return func(r *Router) { r.log = logging.Component(l, logging.ComponentRouter) }
}

// NewRouter flattens the route tree. Two named routes with the same name or
// the same full path are an error.
func NewRouter(routes []Route, opts ...Option) (*Router, error) {
	r := &Router{
		byPath: make(map[string]entry),
		byName: make(map[string]string),
		log:    logging.Component(nil, logging.ComponentRouter),
	}
	for _, o := range opts {
		o(r)
	}
	for _, rt := range routes {
		if err := r.add("", nil, rt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Router) add(parent string, chain []Route, rt Route) error {
	full := joinPath(parent, rt.Path)
	chain = append(chain[:len(chain):len(chain)], rt)

	if rt.Name != "" {
		if _, dup := r.byName[rt.Name]; dup {
			return fmt.Errorf("duplicate route name %q", rt.Name)
		}
		if prev, dup := r.byPath[full]; dup {
			return fmt.Errorf("route %q: path %s already taken by %q", rt.Name, full, prev.chain[len(prev.chain)-1].Name)
		}
		r.byName[rt.Name] = full
		r.byPath[full] = entry{path: full, chain: chain}
	}
	for _, c := range rt.Children {
		if err := r.add(full, chain, c); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, p string) string {
	if strings.HasPrefix(p, "/") {
		return normalize(p)
	}
	if p == "" {
		return normalize(parent)
	}
	return normalize(strings.TrimRight(parent, "/") + "/" + p)
}

// normalize gives a path a leading slash and drops trailing ones.
func normalize(p string) string {
	p = "/" + strings.Trim(p, "/")
	return p
}

// Resolve finds the named route for path. A query string is ignored for
// matching and kept in Match.FullPath.
func (r *Router) Resolve(path string) (Match, error) {
	clean, _, _ := strings.Cut(path, "?")
	e, ok := r.byPath[normalize(clean)]
	if !ok {
		return Match{}, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}
	full := path
	if !strings.HasPrefix(full, "/") {
		full = "/" + full
	}
	return Match{Route: e.chain[len(e.chain)-1], Chain: e.chain, FullPath: full}, nil
}

// PathFor returns the full path of the named route.
func (r *Router) PathFor(name string) (string, error) {
	p, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: name %q", ErrNoRoute, name)
	}
	return p, nil
}

// Navigate resolves path and runs the guard against auth.
func (r *Router) Navigate(ctx context.Context, path string, auth AuthChecker) (Decision, Match, error) {
	m, err := r.Resolve(path)
	if err != nil {
		return Decision{}, Match{}, err
	}

	d := Decide(m.Meta(), auth.IsAuthenticated(ctx), m.FullPath)
	if d.Action != Proceed {
		if d.TargetPath, err = r.PathFor(d.Target); err != nil {
			return Decision{}, m, err
		}
	}
	r.log.Debug(ctx, "navigation",
		logging.FieldRoute, m.Route.Name,
		logging.FieldPath, m.FullPath,
		"decision", d.Action.String())
	return d, m, nil
}

// Names returns the route names, sorted.
func (r *Router) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// DefaultRoutes is the application's route table.
func DefaultRoutes() []Route {
	return []Route{
		{
			Path: "/",
			Meta: Meta{RequiresAuth: true},
			Children: []Route{
				{Name: HomeRoute, Path: ""},
				{Name: "about", Path: "about"},
				{Name: "balance-sheet", Path: "balance-sheet"},
				{Name: "monthly-overview", Path: "monthly-overview"},
				{Name: "reports", Path: "reports"},
				{Name: "queries", Path: "queries"},
				{Name: "investment-performance", Path: "investment-performance"},
				{Name: "fire-simulations", Path: "fire-simulations"},
				{Name: "data-sync", Path: "data-sync"},
				{Name: "preferences", Path: "preferences"},
				{Name: "income", Path: "income"},
				{Name: "expenses", Path: "expenses"},
				{Name: "profile", Path: "profile"},
			},
		},
		{
			Path: "/auth",
			Children: []Route{
				{Name: LoginRoute, Path: "login", Meta: Meta{GuestOnly: true}},
				{Name: "signup", Path: "signup", Meta: Meta{GuestOnly: true}},
			},
		},
	}
}
