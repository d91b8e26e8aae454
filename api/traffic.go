package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/nfa-dashboard/go-dashboard-client/transport"
)

// TrafficAPI wraps the traffic data endpoints.
type TrafficAPI struct {
	tc *transport.Client
}

// TrafficFilter narrows a traffic query.
type TrafficFilter struct {
	SchoolID  string
	Region    string
	CP        string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

func (f TrafficFilter) query() url.Values {
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
	if !f.StartTime.IsZero() {
		q.Set("start_time", f.StartTime.Format(time.RFC3339))
	}
	if !f.EndTime.IsZero() {
		q.Set("end_time", f.EndTime.Format(time.RFC3339))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// Data returns raw traffic samples matching the filter.
func (t *TrafficAPI) Data(ctx context.Context, filter TrafficFilter) ([]TrafficData, error) {
	var data []TrafficData
	err := t.tc.Get(ctx, "/api/v1/traffic", filter.query(), &data)
	return data, err
}

// Summary returns aggregated traffic rows matching the filter.
func (t *TrafficAPI) Summary(ctx context.Context, filter TrafficFilter) ([]TrafficSummary, error) {
	var summary []TrafficSummary
	err := t.tc.Get(ctx, "/api/v1/traffic/summary", filter.query(), &summary)
	return summary, err
}
