package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAuth bool

func (f fixedAuth) IsAuthenticated(context.Context) bool { return bool(f) }

func newDefault(t *testing.T) *Router {
	t.Helper()
	r, err := NewRouter(DefaultRoutes())
	require.NoError(t, err)
	return r
}

func TestResolve_NestedChildren(t *testing.T) {
	r := newDefault(t)

	m, err := r.Resolve("/")
	require.NoError(t, err)
	assert.Equal(t, HomeRoute, m.Route.Name)
	assert.Len(t, m.Chain, 2)
	assert.True(t, m.Meta().RequiresAuth)

	m, err = r.Resolve("/balance-sheet/")
	require.NoError(t, err)
	assert.Equal(t, "balance-sheet", m.Route.Name)

	m, err = r.Resolve("/auth/login?redirect=%2F")
	require.NoError(t, err)
	assert.Equal(t, LoginRoute, m.Route.Name)
	assert.Equal(t, "/auth/login?redirect=%2F", m.FullPath)
	assert.Equal(t, Meta{GuestOnly: true}, m.Meta())
}

func TestResolve_Unknown(t *testing.T) {
	r := newDefault(t)

	_, err := r.Resolve("/nope")
	assert.ErrorIs(t, err, ErrNoRoute)

	// the /auth layout has no page of its own
	_, err = r.Resolve("/auth")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestPathFor(t *testing.T) {
	r := newDefault(t)

	p, err := r.PathFor(LoginRoute)
	require.NoError(t, err)
	assert.Equal(t, "/auth/login", p)

	p, err = r.PathFor(HomeRoute)
	require.NoError(t, err)
	assert.Equal(t, "/", p)

	_, err = r.PathFor("missing")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestNavigate(t *testing.T) {
	r := newDefault(t)
	ctx := context.Background()

	d, m, err := r.Navigate(ctx, "/monthly-overview", fixedAuth(false))
	require.NoError(t, err)
	assert.Equal(t, "monthly-overview", m.Route.Name)
	assert.Equal(t, RedirectLogin, d.Action)
	assert.Equal(t, "/auth/login", d.TargetPath)
	assert.Equal(t, "/monthly-overview", d.Redirect)
	assert.Equal(t, "/auth/login?redirect=%2Fmonthly-overview", d.Location())

	d, _, err = r.Navigate(ctx, "/monthly-overview", fixedAuth(true))
	require.NoError(t, err)
	assert.Equal(t, Proceed, d.Action)

	d, _, err = r.Navigate(ctx, "/auth/signup", fixedAuth(true))
	require.NoError(t, err)
	assert.Equal(t, RedirectHome, d.Action)
	assert.Equal(t, "/", d.TargetPath)

	d, _, err = r.Navigate(ctx, "/auth/login", fixedAuth(false))
	require.NoError(t, err)
	assert.Equal(t, Proceed, d.Action)

	_, _, err = r.Navigate(ctx, "/missing", fixedAuth(true))
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestNavigate_MetaInheritedFromParent(t *testing.T) {
	r, err := NewRouter([]Route{
		{Path: "/admin", Meta: Meta{RequiresAuth: true}, Children: []Route{
			{Path: "users", Children: []Route{{Name: "user-list", Path: ""}}},
		}},
		{Name: LoginRoute, Path: "/login", Meta: Meta{GuestOnly: true}},
		{Name: HomeRoute, Path: "/"},
	})
	require.NoError(t, err)

	d, m, err := r.Navigate(context.Background(), "/admin/users", fixedAuth(false))
	require.NoError(t, err)
	assert.Len(t, m.Chain, 3)
	assert.Equal(t, RedirectLogin, d.Action)
	assert.Equal(t, "/login", d.TargetPath)
}

func TestNewRouter_Duplicates(t *testing.T) {
	_, err := NewRouter([]Route{{Name: "a", Path: "/x"}, {Name: "a", Path: "/y"}})
	assert.Error(t, err)

	_, err = NewRouter([]Route{{Name: "a", Path: "/x"}, {Name: "b", Path: "x/"}})
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	r := newDefault(t)
	names := r.Names()
	assert.Contains(t, names, "fire-simulations")
	assert.Contains(t, names, "signup")
	assert.IsNonDecreasing(t, names)
}
