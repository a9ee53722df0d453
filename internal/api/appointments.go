package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/carelane/carectl/internal/appointment"
)

// Appointment is an appointment record as served by the backend.
type Appointment struct {
	ID              string `json:"id"`
	PatientID       string `json:"patientId"`
	DoctorID        string `json:"doctorId"`
	PatientName     string `json:"patientName"`
	DoctorName      string `json:"doctorName"`
	AppointmentDate string `json:"appointmentDate"`
	DurationMinutes int    `json:"durationMinutes"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes,omitempty"`
	Status          string `json:"status"`
}

// LifecycleStatus parses the record's status field.
func (a Appointment) LifecycleStatus() appointment.Status {
	return appointment.ParseStatus(a.Status)
}

// CreateAppointmentRequest is the payload for scheduling an appointment.
// New appointments start in the Scheduled status.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patientId"`
	DoctorID        string `json:"doctorId"`
	AppointmentDate string `json:"appointmentDate"`
	DurationMinutes int    `json:"durationMinutes"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes,omitempty"`
}

// RescheduleAppointmentRequest is the payload for rescheduling.
type RescheduleAppointmentRequest struct {
	NewDate            string `json:"newDate"`
	NewDurationMinutes int    `json:"newDurationMinutes"`
}

// ListAppointments retrieves all appointments.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/appointments", nil, nil)
	if err != nil {
		return nil, err
	}

	var appointments []Appointment
	if err := parseResponse(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// GetAppointment retrieves an appointment by ID.
func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/appointments/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var appt Appointment
	if err := parseResponse(resp, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAppointmentsByPatient retrieves a patient's appointments.
func (c *Client) ListAppointmentsByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	path := fmt.Sprintf("/appointments/patient/%s", patientID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var appointments []Appointment
	if err := parseResponse(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListAppointmentsByDoctor retrieves a doctor's appointments.
func (c *Client) ListAppointmentsByDoctor(ctx context.Context, doctorID string) ([]Appointment, error) {
	path := fmt.Sprintf("/appointments/doctor/%s", doctorID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var appointments []Appointment
	if err := parseResponse(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// CreateAppointment schedules a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/appointments", nil, req)
	if err != nil {
		return nil, err
	}

	var appt Appointment
	if err := parseResponse(resp, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// CancelAppointment cancels an appointment with an optional free-text
// reason. The reason travels as a query parameter per the backend contract.
func (c *Client) CancelAppointment(ctx context.Context, id, reason string) error {
	var query url.Values
	if reason != "" {
		query = url.Values{"reason": {reason}}
	}
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/appointments/%s/cancel", id), query, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// CompleteAppointment marks an appointment completed with optional free-text
// notes.
func (c *Client) CompleteAppointment(ctx context.Context, id, notes string) error {
	var query url.Values
	if notes != "" {
		query = url.Values{"notes": {notes}}
	}
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/appointments/%s/complete", id), query, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// RescheduleAppointment moves an appointment to a new date and duration.
func (c *Client) RescheduleAppointment(ctx context.Context, id string, req RescheduleAppointmentRequest) (*Appointment, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/appointments/%s/reschedule", id), nil, req)
	if err != nil {
		return nil, err
	}

	var appt Appointment
	if err := parseResponse(resp, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}
