package api

import (
	"context"
	"fmt"
	"net/http"
)

// Doctor is a doctor record as served by the backend.
type Doctor struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"licenseNumber"`
}

// CreateDoctorRequest is the payload for creating a doctor.
type CreateDoctorRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"licenseNumber"`
}

// ListDoctors retrieves all doctors.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/doctors", nil, nil)
	if err != nil {
		return nil, err
	}

	var doctors []Doctor
	if err := parseResponse(resp, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetDoctor retrieves a doctor by ID.
func (c *Client) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/doctors/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var doctor Doctor
	if err := parseResponse(resp, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListDoctorsBySpecialization retrieves doctors with the given
// specialization.
func (c *Client) ListDoctorsBySpecialization(ctx context.Context, specialization string) ([]Doctor, error) {
	path := fmt.Sprintf("/doctors/specialization/%s", specialization)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var doctors []Doctor
	if err := parseResponse(resp, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// CreateDoctor creates a doctor record.
func (c *Client) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/doctors", nil, req)
	if err != nil {
		return nil, err
	}

	var doctor Doctor
	if err := parseResponse(resp, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// DeleteDoctor deletes a doctor record.
func (c *Client) DeleteDoctor(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/doctors/%s", id), nil, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}
