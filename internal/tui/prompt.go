// Package tui contains the interactive terminal surfaces: input forms and
// the appointments browser.
package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/carelane/carectl/internal/auth"
	"github.com/carelane/carectl/internal/authz"
)

// PromptForString displays an interactive prompt and returns the user's input
func PromptForString(title, placeholder string, required bool) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if required && value == "" {
		return "", fmt.Errorf("value is required")
	}
	return value, nil
}

// PromptForPassword displays a masked prompt for a secret value
func PromptForPassword(title string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if value == "" {
		return "", fmt.Errorf("value is required")
	}
	return value, nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// LoginForm collects credentials interactively. Fields already filled (from
// flags) are kept and not asked again.
func LoginForm(creds *auth.Credentials) error {
	var fields []huh.Field
	if creds.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@hospital.example").
			Value(&creds.Email))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password))
	}
	if len(fields) == 0 {
		return nil
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("login form failed: %w", err)
	}
	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

// RegisterForm collects a new user's details interactively.
func RegisterForm(user *auth.NewUser) error {
	role := string(user.Role)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(&user.Email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&user.Password),
		huh.NewInput().Title("First name").Value(&user.FirstName),
		huh.NewInput().Title("Last name").Value(&user.LastName),
		huh.NewSelect[string]().
			Title("Role").
			Options(
				huh.NewOption("Hospital employee", string(authz.RoleHospitalEmployee)),
				huh.NewOption("Doctor", string(authz.RoleDoctor)),
				huh.NewOption("Admin", string(authz.RoleAdmin)),
			).
			Value(&role),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("registration form failed: %w", err)
	}

	user.Role = authz.ParseRole(role)
	if user.Email == "" || user.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}
