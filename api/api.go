// Package api provides typed wrappers over the backend's REST endpoints.
// Every call goes through the shared authenticated transport pipeline, so
// token refresh and authorization redirects happen transparently.
package api

import (
	"github.com/pkg/errors"

	"github.com/nfa-dashboard/go-dashboard-client/transport"
)

// Client aggregates the per-resource API groups.
type Client struct {
	Auth       *AuthAPI
	Schools    *SchoolsAPI
	Traffic    *TrafficAPI
	Settlement *SettlementAPI
}

// New creates the API client over an authenticated transport.
func New(tc *transport.Client) (*Client, error) {
	if tc == nil {
		return nil, errors.New("[api.New] transport client is required")
	}
	return &Client{
		Auth:       &AuthAPI{tc: tc},
		Schools:    &SchoolsAPI{tc: tc},
		Traffic:    &TrafficAPI{tc: tc},
		Settlement: &SettlementAPI{tc: tc},
	}, nil
}
