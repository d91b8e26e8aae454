package guard

import "net/url"

// Well-known dashboard paths used as redirect targets.
const (
	LoginPath     = "/login"
	ForbiddenPath = "/403"

	// RedirectParam carries the originally intended destination to the
	// login page so it can forward the user back after authenticating.
	RedirectParam = "redirect"
)

// Navigator abstracts the navigation surface: the current location and the
// ability to move to another path. The CLI implements it over its command
// loop; tests implement it in memory.
type Navigator interface {
	// CurrentPath returns the current full path including query.
	CurrentPath() string

	// Navigate moves to the given path with the given query parameters.
	Navigate(path string, query url.Values) error
}

// LoginRedirect builds the login path query carrying the given destination.
func LoginRedirect(destination string) url.Values {
	return url.Values{RedirectParam: {destination}}
}
