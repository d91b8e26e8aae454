package guard

import "strings"

// Meta is the authorization requirement attached to a route.
type Meta struct {
	Title  string
	Public bool

	// Permissions gates access when non-empty: the session must hold at
	// least one of the listed names (OR semantics).
	Permissions []string
}

// Route is a navigable dashboard destination.
type Route struct {
	Path string
	Name string
	Meta Meta
}

// Routes is an ordered route table with exact-path lookup.
type Routes []Route

// Match finds the route for a target path. Query strings are ignored. The
// second return is false for unknown paths, which are treated by the guard
// as protected but unrestricted.
func (rs Routes) Match(target string) (Route, bool) {
	path := target
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, r := range rs {
		if r.Path == path {
			return r, true
		}
	}
	return Route{Path: path}, false
}

// DefaultRoutes is the dashboard's route table with the backend's
// permission names attached.
func DefaultRoutes() Routes {
	return Routes{
		{Path: "/", Name: "home", Meta: Meta{Title: "Home"}},
		{Path: "/traffic", Name: "traffic", Meta: Meta{Title: "Traffic Monitor", Permissions: []string{"traffic.read"}}},
		{Path: "/schools", Name: "schools", Meta: Meta{Title: "Schools", Permissions: []string{"school.read"}}},
		{Path: "/settlement", Name: "settlement", Meta: Meta{Title: "Settlement", Permissions: []string{"settlement.read"}}},
		{Path: LoginPath, Name: "login", Meta: Meta{Title: "Login", Public: true}},
		{Path: ForbiddenPath, Name: "forbidden", Meta: Meta{Title: "Forbidden", Public: true}},
	}
}
