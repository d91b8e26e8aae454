package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nfa-dashboard/go-dashboard-client/guard"
	"github.com/nfa-dashboard/go-dashboard-client/guard/navfake"
)

// fakeSession is a minimal guard.Session for unit tests.
type fakeSession struct {
	authenticated bool
	persisted     bool // InitFromStorage authenticates when true
	loadedProfile bool
	loading       bool
	permissions   map[string]bool

	loadErr   error
	initCalls int
	loadCalls int
}

var _ guard.Session = (*fakeSession)(nil)

func (s *fakeSession) IsAuthenticated() bool  { return s.authenticated }
func (s *fakeSession) HasLoadedProfile() bool { return s.loadedProfile }
func (s *fakeSession) LoadingProfile() bool   { return s.loading }

func (s *fakeSession) InitFromStorage() error {
	s.initCalls++
	if s.persisted {
		s.authenticated = true
	}
	return nil
}

func (s *fakeSession) LoadProfile(ctx context.Context) error {
	s.loadCalls++
	if s.loadErr != nil {
		return s.loadErr
	}
	s.loadedProfile = true
	return nil
}

func (s *fakeSession) HasAnyPermission(names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if s.permissions[name] {
			return true
		}
	}
	return false
}

func newGuard(s *fakeSession, opts ...guard.GuardOption) *guard.Guard {
	return guard.New(guard.DefaultRoutes(), s, opts...)
}

func TestUnauthenticatedRedirectsToLoginWithReturnTarget(t *testing.T) {
	g := newGuard(&fakeSession{})

	decision := g.Evaluate(context.Background(), "/settlement")
	require.False(t, decision.Allowed)
	require.Equal(t, guard.LoginPath, decision.Redirect)
	require.Equal(t, "/settlement", decision.Query.Get(guard.RedirectParam))
}

func TestRedirectKeepsTargetQuery(t *testing.T) {
	g := newGuard(&fakeSession{})

	decision := g.Evaluate(context.Background(), "/settlement?page=2")
	require.Equal(t, "/settlement?page=2", decision.Query.Get(guard.RedirectParam))
}

func TestPublicRouteBypassesAllChecks(t *testing.T) {
	s := &fakeSession{}
	g := newGuard(s)

	decision := g.Evaluate(context.Background(), guard.LoginPath)
	require.True(t, decision.Allowed)
	require.Zero(t, s.loadCalls, "public routes never trigger a profile load")
}

func TestHydratesPersistedSessionBeforeDeciding(t *testing.T) {
	s := &fakeSession{persisted: true, loadedProfile: true, permissions: map[string]bool{"traffic.read": true}}
	g := newGuard(s)

	decision := g.Evaluate(context.Background(), "/traffic")
	require.True(t, decision.Allowed)
	require.Equal(t, 1, s.initCalls)
}

func TestMissingPermissionRedirectsToForbidden(t *testing.T) {
	s := &fakeSession{authenticated: true, loadedProfile: true, permissions: map[string]bool{"traffic.read": true}}
	g := newGuard(s)

	decision := g.Evaluate(context.Background(), "/settlement")
	require.False(t, decision.Allowed)
	require.Equal(t, guard.ForbiddenPath, decision.Redirect)
	require.Nil(t, decision.Query)
}

func TestProfileLoadedOnceWhenMissing(t *testing.T) {
	s := &fakeSession{authenticated: true, permissions: map[string]bool{"traffic.read": true}}
	g := newGuard(s)

	decision := g.Evaluate(context.Background(), "/traffic")
	require.True(t, decision.Allowed)
	require.Equal(t, 1, s.loadCalls)
}

func TestProfileNotLoadedWhileInFlight(t *testing.T) {
	s := &fakeSession{authenticated: true, loading: true, permissions: map[string]bool{"traffic.read": true}}
	g := newGuard(s)

	g.Evaluate(context.Background(), "/traffic")
	require.Zero(t, s.loadCalls)
}

func TestProfileLoadFailureDegradesToPermissionCheck(t *testing.T) {
	s := &fakeSession{authenticated: true, loadErr: errors.New("backend down")}
	g := newGuard(s)

	// Navigation is not blocked by the failed load; the empty permission
	// set simply fails the permission check.
	decision := g.Evaluate(context.Background(), "/settlement")
	require.False(t, decision.Allowed)
	require.Equal(t, guard.ForbiddenPath, decision.Redirect)

	// An unrestricted route still allows navigation.
	decision = g.Evaluate(context.Background(), "/")
	require.True(t, decision.Allowed)
}

func TestTitleSetter(t *testing.T) {
	var titles []string
	s := &fakeSession{authenticated: true, loadedProfile: true, permissions: map[string]bool{"traffic.read": true}}
	g := newGuard(s, guard.WithTitleSetter(func(title string) { titles = append(titles, title) }))

	g.Evaluate(context.Background(), "/traffic")
	g.Evaluate(context.Background(), "/unknown-path")

	require.Equal(t, []string{"Traffic Monitor", guard.DefaultTitle}, titles)
}

func TestUnknownRouteIsProtectedButUnrestricted(t *testing.T) {
	g := newGuard(&fakeSession{})
	decision := g.Evaluate(context.Background(), "/unknown-path")
	require.False(t, decision.Allowed)
	require.Equal(t, guard.LoginPath, decision.Redirect)

	s := &fakeSession{authenticated: true, loadedProfile: true}
	decision = newGuard(s).Evaluate(context.Background(), "/unknown-path")
	require.True(t, decision.Allowed)
}

func TestResolvePerformsDecidedNavigation(t *testing.T) {
	nav := navfake.NewFakeNavigator("/")

	g := newGuard(&fakeSession{})
	require.NoError(t, g.Resolve(context.Background(), nav, "/settlement"))
	require.Equal(t, guard.LoginPath+"?redirect=%2Fsettlement", nav.CurrentPath())

	s := &fakeSession{authenticated: true, loadedProfile: true, permissions: map[string]bool{"settlement.read": true}}
	require.NoError(t, guard.New(guard.DefaultRoutes(), s).Resolve(context.Background(), nav, "/settlement"))
	require.Equal(t, "/settlement", nav.CurrentPath())
}
