// Package appointment encodes the appointment status state machine and the
// combined role/state gate that decides which actions the client may offer
// or attempt.
//
// The gate here is a local guard in front of the backend's own enforcement:
// an action that is illegal for the current status must be rejected before
// any request is issued, regardless of who is asking.
package appointment

import (
	"fmt"

	"github.com/carelane/carectl/internal/authz"
)

// Status is an appointment's lifecycle state.
type Status string

// Appointment statuses. Completed and Cancelled are terminal.
const (
	StatusScheduled   Status = "Scheduled"
	StatusRescheduled Status = "Rescheduled"
	StatusCompleted   Status = "Completed"
	StatusCancelled   Status = "Cancelled"

	// StatusUnknown is the fallback for status strings the client does not
	// recognize. Treated as terminal: no transition is offered from it.
	StatusUnknown Status = ""
)

// ParseStatus maps a backend status string to a Status. Unrecognized values
// map to StatusUnknown.
func ParseStatus(s string) Status {
	switch s {
	case string(StatusScheduled):
		return StatusScheduled
	case string(StatusRescheduled):
		return StatusRescheduled
	case string(StatusCompleted):
		return StatusCompleted
	case string(StatusCancelled):
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if s == StatusUnknown {
		return "Unknown"
	}
	return string(s)
}

// Terminal reports whether no further transition is legal from the status.
func (s Status) Terminal() bool {
	return s != StatusScheduled && s != StatusRescheduled
}

// transitions lists the statuses each mutating action is legal from.
// Reschedule loops on Rescheduled; complete and cancel end the lifecycle.
var transitions = map[authz.Action]map[Status]bool{
	authz.ActionRescheduleAppointment: {StatusScheduled: true, StatusRescheduled: true},
	authz.ActionCompleteAppointment:   {StatusScheduled: true, StatusRescheduled: true},
	authz.ActionCancelAppointment:     {StatusScheduled: true, StatusRescheduled: true},
}

// StatusPermits reports whether the action is a legal transition from the
// current status, ignoring who is attempting it.
func StatusPermits(status Status, action authz.Action) bool {
	set, ok := transitions[action]
	if !ok {
		return false
	}
	return set[status]
}

// Can reports whether the action may be offered or attempted: the role must
// hold the permission AND the current status must permit the transition.
// Either check failing means the request is never issued.
func Can(role authz.Role, action authz.Action, status Status) bool {
	return authz.Allowed(role, action) && StatusPermits(status, action)
}

// TransitionError reports an action rejected because the appointment's
// current status does not permit it. Raised locally; the request is never
// issued.
type TransitionError struct {
	Status Status
	Action authz.Action
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("appointment is %s; %s is not permitted from that status", e.Status, e.Action)
}

// Check combines the role-permission and state-transition gates, returning a
// typed error naming whichever one failed.
func Check(role authz.Role, action authz.Action, status Status) error {
	if err := authz.Require(role, action); err != nil {
		return err
	}
	if !StatusPermits(status, action) {
		return &TransitionError{Status: status, Action: action}
	}
	return nil
}

// Available returns the transitions to offer for an appointment in the given
// status to a user with the given role. Terminal statuses yield nothing for
// every role.
func Available(role authz.Role, status Status) []authz.Action {
	if status.Terminal() {
		return nil
	}
	var out []authz.Action
	for _, action := range []authz.Action{
		authz.ActionRescheduleAppointment,
		authz.ActionCompleteAppointment,
		authz.ActionCancelAppointment,
	} {
		if Can(role, action, status) {
			out = append(out, action)
		}
	}
	return out
}

// Next returns the status an appointment enters after the action. The second
// return is false when the action is not a legal transition from the status.
func Next(status Status, action authz.Action) (Status, bool) {
	if !StatusPermits(status, action) {
		return status, false
	}
	switch action {
	case authz.ActionRescheduleAppointment:
		return StatusRescheduled, true
	case authz.ActionCompleteAppointment:
		return StatusCompleted, true
	case authz.ActionCancelAppointment:
		return StatusCancelled, true
	default:
		return status, false
	}
}
