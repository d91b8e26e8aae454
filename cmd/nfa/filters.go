package main

import "github.com/nfa-dashboard/go-dashboard-client/api"

// Default listing windows for the CLI views.

func apiTrafficFilter() api.TrafficFilter {
	return api.TrafficFilter{Limit: 20}
}

func apiSchoolFilter() api.SchoolFilter {
	return api.SchoolFilter{Limit: 20}
}
