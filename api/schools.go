package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nfa-dashboard/go-dashboard-client/transport"
)

// SchoolsAPI wraps the school, region, and CP listings.
type SchoolsAPI struct {
	tc *transport.Client
}

// SchoolFilter narrows the school listing.
type SchoolFilter struct {
	Region string
	CP     string
	Limit  int
	Offset int
}

func (f SchoolFilter) query() url.Values {
	q := url.Values{}
	if f.Region != "" {
		q.Set("region", f.Region)
	}
	if f.CP != "" {
		q.Set("cp", f.CP)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// List returns the paginated school listing.
func (s *SchoolsAPI) List(ctx context.Context, filter SchoolFilter) (SchoolList, error) {
	var list SchoolList
	err := s.tc.Get(ctx, "/api/v1/schools", filter.query(), &list)
	return list, err
}

// Regions returns all known regions.
func (s *SchoolsAPI) Regions(ctx context.Context) ([]string, error) {
	var regions []string
	err := s.tc.Get(ctx, "/api/v1/regions", nil, &regions)
	return regions, err
}

// CPs returns all known content providers.
func (s *SchoolsAPI) CPs(ctx context.Context) ([]string, error) {
	var cps []string
	err := s.tc.Get(ctx, "/api/v1/cps", nil, &cps)
	return cps, err
}
