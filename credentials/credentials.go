package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserIdentity is the authenticated user as returned by the backend.
type UserIdentity struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Status      int    `json:"status,omitempty"`
}

// Credential is the in-memory authentication state. The zero value means
// "unauthenticated". AccessToken, User and Permissions are always updated
// together; a Credential never mixes fields from different grants.
type Credential struct {
	AccessToken  string
	RefreshToken string
	User         *UserIdentity
	Permissions  []string
}

// Grant is the response shape of the login and refresh endpoints. The backend
// returns it flat (no data envelope) and rotates both tokens on refresh.
type Grant struct {
	AccessToken  string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         *UserIdentity `json:"user"`
	Permissions  []Permission `json:"permissions"`
}

// Profile is the response shape of the profile endpoint: the user and their
// permissions, with no tokens.
type Profile struct {
	User        *UserIdentity `json:"user"`
	Permissions []Permission  `json:"permissions"`
}

// IsAuthenticated reports whether an access token is present.
func (c Credential) IsAuthenticated() bool {
	return c.AccessToken != ""
}

// AccessTokenExpiry peeks at the access token's exp claim without verifying
// the signature. Verification is the backend's job; the client only uses the
// expiry for diagnostics. Returns false if the token is absent or opaque.
func (c Credential) AccessTokenExpiry() (time.Time, bool) {
	if c.AccessToken == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
