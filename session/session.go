// Package session owns the authenticated session lifecycle: login, logout,
// profile loading, and the permission predicates consulted by the
// navigation guard.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/guard"
)

// AuthAPI is the slice of the backend API the controller needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (credentials.Grant, error)
	Profile(ctx context.Context) (credentials.Profile, error)
}

// Controller is the session controller. It holds no credential state of its
// own; the Keeper is the single owner, shared with the transport pipeline so
// refreshes and logins can never diverge.
type Controller struct {
	keeper *credentials.Keeper
	auth   AuthAPI
	nav    guard.Navigator
	log    zerolog.Logger

	lock           sync.Mutex
	loadingProfile bool
}

// ControllerOption modifies a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.log = log }
}

// NewController creates a session controller. nav may be nil; logout then
// only clears state without redirecting.
func NewController(keeper *credentials.Keeper, auth AuthAPI, nav guard.Navigator, options ...ControllerOption) (*Controller, error) {
	if keeper == nil {
		return nil, errors.New("[NewController] keeper is required")
	}
	if auth == nil {
		return nil, errors.New("[NewController] auth API is required")
	}

	c := &Controller{
		keeper: keeper,
		auth:   auth,
		nav:    nav,
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// InitFromStorage hydrates the in-memory credential from persisted storage.
// Idempotent; when already hydrated it overwrites with the persisted values.
func (c *Controller) InitFromStorage() error {
	return c.keeper.Hydrate()
}

// Login authenticates against the backend and installs the resulting grant.
// On failure the existing credential is left untouched.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	grant, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return errors.Wrap(err, "login")
	}
	if err := c.keeper.Apply(grant); err != nil {
		return errors.Wrap(err, "store login credentials")
	}

	c.log.Info().Str("username", username).Msg("logged in")
	return nil
}

// LoadProfile fetches the current user and permission set. It is a no-op
// without an access token, and concurrent callers do not issue duplicate
// fetches: while a load is in flight, later calls return immediately.
func (c *Controller) LoadProfile(ctx context.Context) error {
	if c.keeper.AccessToken() == "" {
		return nil
	}

	c.lock.Lock()
	if c.loadingProfile {
		c.lock.Unlock()
		return nil
	}
	c.loadingProfile = true
	c.lock.Unlock()

	defer func() {
		c.lock.Lock()
		c.loadingProfile = false
		c.lock.Unlock()
	}()

	profile, err := c.auth.Profile(ctx)
	if err != nil {
		return errors.Wrap(err, "load profile")
	}
	if err := c.keeper.SetProfile(profile.User, profile.Permissions); err != nil {
		return errors.Wrap(err, "store profile")
	}
	return nil
}

// LoadingProfile reports whether a profile load is currently in flight.
func (c *Controller) LoadingProfile() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.loadingProfile
}

// Logout clears the credential in memory and storage, then navigates to the
// login page carrying the current location as a return target. Skipped when
// already on the login path.
func (c *Controller) Logout() error {
	if err := c.keeper.Clear(); err != nil {
		return errors.Wrap(err, "logout")
	}
	c.log.Info().Msg("logged out")

	if c.nav == nil {
		return nil
	}
	current := c.nav.CurrentPath()
	if strings.HasPrefix(current, guard.LoginPath) {
		return nil
	}
	if err := c.nav.Navigate(guard.LoginPath, guard.LoginRedirect(current)); err != nil {
		c.log.Debug().Err(err).Msg("logout redirect failed")
	}
	return nil
}

// IsAuthenticated reports whether an access token is present.
func (c *Controller) IsAuthenticated() bool {
	return c.keeper.AccessToken() != ""
}

// User returns the loaded user identity, or nil.
func (c *Controller) User() *credentials.UserIdentity {
	return c.keeper.Current().User
}

// Permissions returns the current flattened permission names.
func (c *Controller) Permissions() []string {
	return c.keeper.Current().Permissions
}

// HasLoadedProfile reports whether a user and a non-empty permission set
// have been loaded into the session.
func (c *Controller) HasLoadedProfile() bool {
	cred := c.keeper.Current()
	return cred.User != nil && len(cred.Permissions) > 0
}

// HasPermission reports whether the session holds the named permission.
func (c *Controller) HasPermission(name string) bool {
	for _, p := range c.keeper.Current().Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the session holds at least one of the
// named permissions. An empty or nil requirement means unrestricted.
func (c *Controller) HasAnyPermission(names []string) bool {
	if len(names) == 0 {
		return true
	}
	held := c.keeper.Current().Permissions
	for _, name := range names {
		for _, p := range held {
			if p == name {
				return true
			}
		}
	}
	return false
}
