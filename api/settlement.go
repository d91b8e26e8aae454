package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nfa-dashboard/go-dashboard-client/transport"
)

// SettlementAPI wraps the settlement task, data, and rate endpoints.
type SettlementAPI struct {
	tc *transport.Client
}

// SettlementFilter narrows the settlement data listing.
type SettlementFilter struct {
	SchoolID string
	Region   string
	CP       string
	Date     string // YYYY-MM-DD
	Limit    int
	Offset   int
}

func (f SettlementFilter) query() url.Values {
	q := url.Values{}
	if f.SchoolID != "" {
		q.Set("school_id", f.SchoolID)
	}
	if f.Region != "" {
		q.Set("region", f.Region)
	}
	if f.CP != "" {
		q.Set("cp", f.CP)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// Tasks returns the settlement task listing.
func (s *SettlementAPI) Tasks(ctx context.Context) (TaskList, error) {
	var list TaskList
	err := s.tc.Get(ctx, "/api/v1/settlement/tasks", nil, &list)
	return list, err
}

// Data returns settlement values matching the filter.
func (s *SettlementAPI) Data(ctx context.Context, filter SettlementFilter) (SettlementList, error) {
	var list SettlementList
	err := s.tc.Get(ctx, "/api/v1/settlement/data", filter.query(), &list)
	return list, err
}

// Results returns computed settlement results matching the filter.
func (s *SettlementAPI) Results(ctx context.Context, filter SettlementFilter) (SettlementList, error) {
	var list SettlementList
	err := s.tc.Get(ctx, "/api/v1/settlement/results", filter.query(), &list)
	return list, err
}

// CustomerRates returns the per-customer settlement rates.
func (s *SettlementAPI) CustomerRates(ctx context.Context) ([]CustomerRate, error) {
	var rates []CustomerRate
	err := s.tc.Get(ctx, "/api/v1/settlement/rates/customer", nil, &rates)
	return rates, err
}
