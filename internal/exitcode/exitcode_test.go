package exitcode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/appointment"
	"github.com/carelane/carectl/internal/auth"
	"github.com/carelane/carectl/internal/authz"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain", errors.New("boom"), GeneralError},
		{"validation", appointment.ValidateDuration(10), ValidationError},
		{"permission", authz.Require(authz.RoleDoctor, authz.ActionCreatePatient), ForbiddenError},
		{"transition", &appointment.TransitionError{Status: appointment.StatusCompleted, Action: authz.ActionCancelAppointment}, ValidationError},
		{"auth", auth.NewError(auth.ErrInvalidCredentials, "nope"), AuthError},
		{"wrapped auth", fmt.Errorf("login: %w", auth.NewError(auth.ErrLoginFailed, "x")), AuthError},
		{"api 401", &api.Error{StatusCode: http.StatusUnauthorized}, AuthError},
		{"api 403", &api.Error{StatusCode: http.StatusForbidden}, ForbiddenError},
		{"api 502", &api.Error{StatusCode: http.StatusBadGateway}, NetworkError},
		{"api 404", &api.Error{StatusCode: http.StatusNotFound}, GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}
