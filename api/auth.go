package api

import (
	"context"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/transport"
)

// AuthAPI wraps the authentication endpoints. Login and refresh respond
// flat (no data envelope); the interceptor exempts both paths from refresh
// recovery by path, so they can safely ride the shared pipeline.
type AuthAPI struct {
	tc *transport.Client
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges a username and password for a credential grant.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (credentials.Grant, error) {
	var grant credentials.Grant
	err := a.tc.Post(ctx, transport.LoginEndpoint, loginRequest{Username: username, Password: password}, &grant)
	return grant, err
}

// Profile fetches the current user and permission set.
func (a *AuthAPI) Profile(ctx context.Context) (credentials.Profile, error) {
	var profile credentials.Profile
	err := a.tc.Get(ctx, transport.ProfileEndpoint, nil, &profile)
	return profile, err
}
