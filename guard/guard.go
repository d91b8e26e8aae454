// Package guard gates navigation on authentication state and route-level
// permission requirements.
package guard

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// DefaultTitle is used when a route declares no title of its own.
const DefaultTitle = "School Traffic Monitoring"

// Session is the slice of the session controller the guard consults. A
// fake implementation is enough to unit-test the guard.
type Session interface {
	IsAuthenticated() bool
	HasLoadedProfile() bool
	LoadingProfile() bool
	InitFromStorage() error
	LoadProfile(ctx context.Context) error
	HasAnyPermission(names []string) bool
}

// Decision is the outcome of evaluating a navigation.
type Decision struct {
	Allowed  bool
	Redirect string
	Query    url.Values
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(path string, query url.Values) Decision {
	return Decision{Redirect: path, Query: query}
}

// Guard evaluates every route transition before it completes.
type Guard struct {
	routes   Routes
	session  Session
	setTitle func(title string)
	log      zerolog.Logger
}

// GuardOption modifies a Guard.
type GuardOption func(*Guard)

// WithTitleSetter installs the page-title side effect.
func WithTitleSetter(fn func(title string)) GuardOption {
	return func(g *Guard) { g.setTitle = fn }
}

// WithGuardLogger sets the logger. Defaults to a no-op logger.
func WithGuardLogger(log zerolog.Logger) GuardOption {
	return func(g *Guard) { g.log = log }
}

// New creates a navigation guard over the given route table and session.
func New(routes Routes, session Session, options ...GuardOption) *Guard {
	g := &Guard{
		routes:   routes,
		session:  session,
		setTitle: func(string) {},
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Evaluate decides whether navigating to target (a path, optionally with a
// query) may proceed. The steps run strictly in order: title, hydration,
// public bypass, authentication, profile load, permission check.
func (g *Guard) Evaluate(ctx context.Context, target string) Decision {
	route, _ := g.routes.Match(target)

	title := route.Meta.Title
	if title == "" {
		title = DefaultTitle
	}
	g.setTitle(title)

	// A full reload reconstructs the session empty; pick up a persisted
	// token before deciding anything.
	if !g.session.IsAuthenticated() {
		if err := g.session.InitFromStorage(); err != nil {
			g.log.Debug().Err(err).Msg("credential hydration failed")
		}
	}

	if route.Meta.Public {
		return allow()
	}

	if !g.session.IsAuthenticated() {
		g.log.Debug().Str("target", target).Msg("unauthenticated, redirecting to login")
		return redirect(LoginPath, LoginRedirect(target))
	}

	// A failed profile load degrades to an empty permission set; it never
	// blocks navigation by itself.
	if !g.session.HasLoadedProfile() && !g.session.LoadingProfile() {
		if err := g.session.LoadProfile(ctx); err != nil {
			g.log.Debug().Err(err).Msg("profile load failed")
		}
	}

	if len(route.Meta.Permissions) > 0 && !g.session.HasAnyPermission(route.Meta.Permissions) {
		g.log.Debug().
			Str("target", target).
			Strs("required", route.Meta.Permissions).
			Msg("permission denied, redirecting to forbidden")
		return redirect(ForbiddenPath, nil)
	}

	return allow()
}

// Resolve evaluates target and performs the resulting navigation on nav:
// either to the target itself or to the decided redirect.
func (g *Guard) Resolve(ctx context.Context, nav Navigator, target string) error {
	decision := g.Evaluate(ctx, target)
	if decision.Allowed {
		return nav.Navigate(target, nil)
	}
	return nav.Navigate(decision.Redirect, decision.Query)
}
