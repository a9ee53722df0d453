package api

import (
	"context"
	"net/http"
	"time"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the new-user registration payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// AuthResponse is the backend's response to login and register. Note that it
// carries no user ID; Expiration is the token's expiry, not an account
// timestamp.
type AuthResponse struct {
	Token      string    `json:"token"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       string    `json:"role"`
	Expiration time.Time `json:"expiration"`
}

// CurrentUser is the full profile returned by the me endpoint.
type CurrentUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChangePasswordRequest is the change-password payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest is the reset-password payload.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Login authenticates with the backend. It does not touch the client's token
// source; the session layer decides what to do with the credential.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, req)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := parseResponse(resp, &authResp); err != nil {
		return nil, err
	}
	return &authResp, nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := parseResponse(resp, &authResp); err != nil {
		return nil, err
	}
	return &authResp, nil
}

// GetCurrentUser retrieves the authenticated user's full profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*CurrentUser, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user CurrentUser
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/auth/change-password", nil, req)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// ResetPassword resets a user's password.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/auth/reset-password", nil, req)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}
