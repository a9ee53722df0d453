package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Patient is a patient record as served by the backend.
type Patient struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
}

// CreatePatientRequest is the payload for creating a patient.
type CreatePatientRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
}

// UpdatePatientRequest is the payload for updating a patient's contact
// details. Identity fields are immutable on the backend.
type UpdatePatientRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// ListPatients retrieves all patients.
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/patients", nil, nil)
	if err != nil {
		return nil, err
	}

	var patients []Patient
	if err := parseResponse(resp, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient retrieves a patient by ID.
func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/patients/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var patient Patient
	if err := parseResponse(resp, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// SearchPatients retrieves patients matching a name.
func (c *Client) SearchPatients(ctx context.Context, name string) ([]Patient, error) {
	query := url.Values{"name": {name}}
	resp, err := c.doRequest(ctx, http.MethodGet, "/patients/search", query, nil)
	if err != nil {
		return nil, err
	}

	var patients []Patient
	if err := parseResponse(resp, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// CreatePatient creates a patient record.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/patients", nil, req)
	if err != nil {
		return nil, err
	}

	var patient Patient
	if err := parseResponse(resp, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// UpdatePatient updates a patient's contact details.
func (c *Client) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/patients/%s", id), nil, req)
	if err != nil {
		return nil, err
	}

	var patient Patient
	if err := parseResponse(resp, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// DeletePatient deletes a patient record.
func (c *Client) DeletePatient(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/patients/%s", id), nil, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}
