package appointment

import (
	"fmt"
	"time"
)

// Duration bounds for an appointment, in minutes. A UX convenience mirroring
// the backend's own validation, not a security boundary.
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
)

// ValidationError is a client-side input rejection. It blocks submission and
// never reaches the backend.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateDuration checks the duration bound [MinDurationMinutes,
// MaxDurationMinutes].
func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return newValidationError("durationMinutes",
			"must be between %d and %d minutes, got %d",
			MinDurationMinutes, MaxDurationMinutes, minutes)
	}
	return nil
}

// ValidateDate checks that the value parses as an RFC 3339 timestamp and
// returns it. The backend owns any further rules about the date itself.
func ValidateDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, newValidationError("appointmentDate", "is required")
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, newValidationError("appointmentDate",
			"must be an RFC 3339 timestamp (e.g. 2026-09-01T14:30:00Z): %v", err)
	}
	return ts, nil
}

// ValidateCreate checks the locally-enforced fields of a new appointment.
func ValidateCreate(patientID, doctorID, date string, durationMinutes int, reason string) error {
	if patientID == "" {
		return newValidationError("patientId", "is required")
	}
	if doctorID == "" {
		return newValidationError("doctorId", "is required")
	}
	if _, err := ValidateDate(date); err != nil {
		return err
	}
	if err := ValidateDuration(durationMinutes); err != nil {
		return err
	}
	if reason == "" {
		return newValidationError("reason", "is required")
	}
	return nil
}

// ValidateReschedule checks a reschedule payload.
func ValidateReschedule(newDate string, newDurationMinutes int) error {
	if _, err := ValidateDate(newDate); err != nil {
		return err
	}
	return ValidateDuration(newDurationMinutes)
}
