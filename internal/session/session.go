// Package session holds the client's record of authentication state and its
// durable persistence.
//
// A Session pairs the bearer token with the cached user profile. The two are
// always present or absent together; callers replace the whole value rather
// than mutating fields, so no reader ever observes a half-updated session.
package session

import (
	"time"

	"github.com/carelane/carectl/internal/authz"
)

// UserProfile is the cached identity of the signed-in user.
//
// Replaced wholesale on login, never partially mutated.
type UserProfile struct {
	// ID is not returned by the login endpoint. It stays empty until a
	// profile refresh populates it from /auth/me.
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      authz.Role `json:"role"`
	IsActive  bool       `json:"isActive"`
	// CreatedAt carries the login response's token-expiration timestamp as a
	// placeholder, matching the backend auth contract. A profile refresh
	// replaces it with the real creation time.
	CreatedAt time.Time `json:"createdAt"`
}

// FullName returns the user's display name.
func (p UserProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Session is the client's authentication state.
//
// Invariant: User is non-nil iff Token is non-empty.
type Session struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// Empty returns the logged-out session.
func Empty() Session {
	return Session{}
}

// IsAuthenticated reports whether the session holds a credential.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Valid reports whether the session satisfies the token/user invariant.
func (s Session) Valid() bool {
	return (s.Token == "") == (s.User == nil)
}

// Role returns the session user's role, or authz.RoleUnknown when logged
// out. Keeping this total lets permission checks run without nil guards.
func (s Session) Role() authz.Role {
	if s.User == nil {
		return authz.RoleUnknown
	}
	return s.User.Role
}
