// Package authz implements the role-based authorization policy for the
// hospital administration client.
//
// Every permission gate in the application consults this single table.
// Commands and views must never re-derive role checks with ad hoc boolean
// combinations; two call sites disagreeing on who may reschedule is exactly
// the drift this package exists to prevent.
package authz

import "fmt"

// Role identifies a staff role returned by the backend.
//
// The backend transmits roles as strings. Anything that does not match a
// known role parses to RoleUnknown, which holds no permissions.
type Role string

// Staff roles recognized by the policy.
const (
	RoleAdmin            Role = "Admin"
	RoleDoctor           Role = "Doctor"
	RoleHospitalEmployee Role = "HospitalEmployee"

	// RoleUnknown is the fail-closed fallback for unrecognized role strings.
	RoleUnknown Role = ""
)

// ParseRole maps a backend role string to a Role.
//
// Unrecognized values map to RoleUnknown rather than passing through, so a
// misspelled or future role can never accidentally match a permission grant.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleDoctor):
		return RoleDoctor
	case string(RoleHospitalEmployee):
		return RoleHospitalEmployee
	default:
		return RoleUnknown
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if r == RoleUnknown {
		return "Unknown"
	}
	return string(r)
}

// Known reports whether the role is one of the recognized staff roles.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RoleHospitalEmployee
}

// Action identifies an operation a user may attempt through the client.
type Action string

// Actions gated by the policy.
const (
	ActionViewPatients          Action = "patients:view"
	ActionCreatePatient         Action = "patients:create"
	ActionEditPatient           Action = "patients:edit"
	ActionDeletePatient         Action = "patients:delete"
	ActionViewDoctors           Action = "doctors:view"
	ActionCreateDoctor          Action = "doctors:create"
	ActionDeleteDoctor          Action = "doctors:delete"
	ActionViewAppointments      Action = "appointments:view"
	ActionCreateAppointment     Action = "appointments:create"
	ActionRescheduleAppointment Action = "appointments:reschedule"
	ActionCompleteAppointment   Action = "appointments:complete"
	ActionCancelAppointment     Action = "appointments:cancel"
	ActionRegisterUser          Action = "users:register"
	ActionViewAdminNav          Action = "nav:admin"
)

// Actions returns every action the policy knows about.
func Actions() []Action {
	return []Action{
		ActionViewPatients,
		ActionCreatePatient,
		ActionEditPatient,
		ActionDeletePatient,
		ActionViewDoctors,
		ActionCreateDoctor,
		ActionDeleteDoctor,
		ActionViewAppointments,
		ActionCreateAppointment,
		ActionRescheduleAppointment,
		ActionCompleteAppointment,
		ActionCancelAppointment,
		ActionRegisterUser,
		ActionViewAdminNav,
	}
}

// grants is the authoritative permission table.
//
// A role absent from an action's set is denied. RoleUnknown appears in no
// set, so unrecognized roles are denied everything.
var grants = map[Action]map[Role]bool{
	ActionViewPatients:          {RoleAdmin: true, RoleDoctor: true, RoleHospitalEmployee: true},
	ActionCreatePatient:         {RoleAdmin: true, RoleHospitalEmployee: true},
	ActionEditPatient:           {RoleAdmin: true, RoleHospitalEmployee: true},
	ActionDeletePatient:         {RoleAdmin: true},
	ActionViewDoctors:           {RoleAdmin: true, RoleDoctor: true, RoleHospitalEmployee: true},
	ActionCreateDoctor:          {RoleAdmin: true},
	ActionDeleteDoctor:          {RoleAdmin: true},
	ActionViewAppointments:      {RoleAdmin: true, RoleDoctor: true, RoleHospitalEmployee: true},
	ActionCreateAppointment:     {RoleAdmin: true, RoleHospitalEmployee: true},
	ActionRescheduleAppointment: {RoleAdmin: true, RoleHospitalEmployee: true},
	ActionCompleteAppointment:   {RoleAdmin: true, RoleDoctor: true},
	ActionCancelAppointment:     {RoleAdmin: true, RoleDoctor: true, RoleHospitalEmployee: true},
	ActionRegisterUser:          {RoleAdmin: true, RoleHospitalEmployee: true},
	ActionViewAdminNav:          {RoleAdmin: true},
}

// Allowed reports whether the role may perform the action.
//
// Total over all inputs: an unknown role or unknown action is denied, never
// an error or a panic.
func Allowed(role Role, action Action) bool {
	set, ok := grants[action]
	if !ok {
		return false
	}
	return set[role]
}

// PermissionError reports an action denied by the policy before any request
// was issued.
type PermissionError struct {
	Role   Role
	Action Action
}

// Error implements the error interface.
func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %s is not permitted to perform %s", e.Role, e.Action)
}

// Require returns a PermissionError when the role may not perform the
// action, nil otherwise.
func Require(role Role, action Action) error {
	if Allowed(role, action) {
		return nil
	}
	return &PermissionError{Role: role, Action: action}
}

// AllowedAll reports whether the role may perform every listed action.
func AllowedAll(role Role, actions ...Action) bool {
	for _, a := range actions {
		if !Allowed(role, a) {
			return false
		}
	}
	return true
}

// PermittedActions returns the actions the role may perform, in the stable
// order of Actions.
func PermittedActions(role Role) []Action {
	var out []Action
	for _, a := range Actions() {
		if Allowed(role, a) {
			out = append(out, a)
		}
	}
	return out
}
