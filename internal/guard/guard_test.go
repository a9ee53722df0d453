package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtected_LoadingNeverRedirects(t *testing.T) {
	// Regardless of the authenticated flag, loading renders the neutral
	// state: the login screen must not flash during session restore.
	for _, authenticated := range []bool{true, false} {
		d := Protected(State{Loading: true, Authenticated: authenticated}, "patients")
		assert.Equal(t, ShowLoading, d.Outcome)
		assert.Empty(t, d.Target)
	}
}

func TestProtected_UnauthenticatedRedirectsRememberingOrigin(t *testing.T) {
	d := Protected(State{Loading: false, Authenticated: false}, "appointments")
	assert.Equal(t, Redirect, d.Outcome)
	assert.Equal(t, RouteLogin, d.Target)
	assert.Equal(t, "appointments", d.From)
}

func TestProtected_AuthenticatedRenders(t *testing.T) {
	d := Protected(State{Loading: false, Authenticated: true}, "appointments")
	assert.Equal(t, Render, d.Outcome)
}

func TestPublicOnly_LoadingNeverRedirects(t *testing.T) {
	for _, authenticated := range []bool{true, false} {
		d := PublicOnly(State{Loading: true, Authenticated: authenticated})
		assert.Equal(t, ShowLoading, d.Outcome)
	}
}

func TestPublicOnly_AuthenticatedRedirectsToLanding(t *testing.T) {
	d := PublicOnly(State{Authenticated: true})
	assert.Equal(t, Redirect, d.Outcome)
	assert.Equal(t, RouteLanding, d.Target)
}

func TestPublicOnly_UnauthenticatedRenders(t *testing.T) {
	d := PublicOnly(State{})
	assert.Equal(t, Render, d.Outcome)
}

func TestNoRedirectLoop(t *testing.T) {
	// The protected guard sends unauthenticated users to login; the
	// public-only guard renders login for those same users. And vice versa
	// for authenticated users on the landing route. Neither chain can
	// bounce without a session state change.
	unauthed := State{Authenticated: false}
	d := Protected(unauthed, RouteLanding)
	assert.Equal(t, Redirect, d.Outcome)
	assert.Equal(t, Render, PublicOnly(unauthed).Outcome)

	authed := State{Authenticated: true}
	d = PublicOnly(authed)
	assert.Equal(t, Redirect, d.Outcome)
	assert.Equal(t, Render, Protected(authed, d.Target).Outcome)
}
