package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/auth"
	"github.com/carelane/carectl/internal/authz"
	"github.com/carelane/carectl/internal/guard"
	"github.com/carelane/carectl/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the login session",
	Long: `Manage the login session against the hospital backend.

Sessions persist in the state directory between runs. Logging in replaces
any existing session; logging out removes it.

Subcommands:
  login            Sign in with email and password
  logout           Sign out and remove the stored session
  status           Show who is signed in and when the token expires
  register         Register a new user account (admins and employees)
  change-password  Change your own password
  reset-password   Reset a user's password by email

Examples:
  carectl auth login --email user@hospital.example
  carectl auth status
  carectl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd signs the user in. Missing credentials are collected
// interactively with the password masked.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Sign in to the hospital backend with your email and password.

Credentials not supplied as flags are collected interactively. On success
the session token and profile are stored locally and reused by every other
command until logout or expiry.

Examples:
  carectl auth login
  carectl auth login --email user@hospital.example`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		// A live session short-circuits the login flow entirely.
		decision := guard.PublicOnly(guard.State{
			Loading:       app.Auth.IsLoading(),
			Authenticated: app.Auth.IsAuthenticated(),
		})
		if decision.Outcome == guard.Redirect {
			sess := app.Auth.Current()
			fmt.Printf("Already signed in as %s (%s).\n", sess.User.Email, sess.User.Role)
			fmt.Println("Run 'carectl auth logout' first to switch accounts.")
			return nil
		}

		creds := auth.Credentials{}
		creds.Email, _ = cmd.Flags().GetString("email")
		creds.Password, _ = cmd.Flags().GetString("password")

		if err := tui.LoginForm(&creds); err != nil {
			return err
		}

		if err := app.Auth.Login(cmd.Context(), creds); err != nil {
			return err
		}

		sess := app.Auth.Current()
		fmt.Printf("Signed in as %s %s (%s).\n", sess.User.FirstName, sess.User.LastName, sess.User.Role)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if !app.Auth.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		email := app.Auth.Current().User.Email
		if err := app.Auth.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}

		fmt.Printf("Signed out %s.\n", email)
		return nil
	},
}

// AuthStatus is the session summary printed by 'auth status'.
type AuthStatus struct {
	Authenticated bool      `json:"authenticated"`
	Email         string    `json:"email,omitempty"`
	Name          string    `json:"name,omitempty"`
	Role          string    `json:"role,omitempty"`
	TokenExpires  time.Time `json:"token_expires,omitempty"`
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show whether a session is stored, which user it belongs to, and when
the token expires. The expiry is read from the token itself without
verifying its signature; only the backend can do that.

With --refresh the stored profile is replaced by the backend's current
one, which also fills in fields the login response leaves out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
			if err := app.requireAuth("auth status"); err != nil {
				return err
			}
			if err := app.Auth.RefreshProfile(cmd.Context()); err != nil {
				return fmt.Errorf("profile refresh failed: %w", err)
			}
		}

		status := AuthStatus{Authenticated: app.Auth.IsAuthenticated()}
		if status.Authenticated {
			sess := app.Auth.Current()
			status.Email = sess.User.Email
			status.Name = sess.User.FirstName + " " + sess.User.LastName
			status.Role = sess.User.Role.String()
			status.TokenExpires = tokenExpiry(sess.Token)
		}

		if !app.textOutput() {
			formatter, err := app.formatter()
			if err != nil {
				return err
			}
			return formatter.Format(status)
		}

		if !status.Authenticated {
			fmt.Println("Not signed in.")
			fmt.Println("Run 'carectl auth login' to sign in.")
			return nil
		}

		fmt.Printf("Signed in as: %s (%s)\n", status.Email, status.Name)
		fmt.Printf("Role:         %s\n", status.Role)
		if !status.TokenExpires.IsZero() {
			fmt.Printf("Token expires: %s", status.TokenExpires.Format(time.RFC3339))
			if remaining := time.Until(status.TokenExpires); remaining > 0 {
				fmt.Printf(" (in %s)", remaining.Round(time.Minute))
			} else {
				fmt.Print(" (expired)")
			}
			fmt.Println()
		}
		return nil
	},
}

// tokenExpiry extracts the exp claim without verifying the signature. A
// token that is not a parseable JWT yields a zero time.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account on the backend.

Only admins and hospital employees may register users. Details not supplied
as flags are collected interactively.

Examples:
  carectl auth register
  carectl auth register --email d.house@hospital.example --role Doctor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("auth register", authz.ActionRegisterUser); err != nil {
			return err
		}

		user := auth.NewUser{}
		user.Email, _ = cmd.Flags().GetString("email")
		user.Password, _ = cmd.Flags().GetString("password")
		user.FirstName, _ = cmd.Flags().GetString("first-name")
		user.LastName, _ = cmd.Flags().GetString("last-name")
		roleFlag, _ := cmd.Flags().GetString("role")
		user.Role = authz.ParseRole(roleFlag)

		if user.Email == "" || user.Password == "" || !user.Role.Known() {
			if err := tui.RegisterForm(&user); err != nil {
				return err
			}
		}
		if !user.Role.Known() {
			return fmt.Errorf("unknown role %q", roleFlag)
		}

		// Registration signs in as the new account, replacing the
		// operator's session, mirroring the backend's auth contract.
		if err := app.Auth.Register(cmd.Context(), user); err != nil {
			return err
		}

		sess := app.Auth.Current()
		fmt.Printf("Registered %s (%s).\n", sess.User.Email, sess.User.Role)
		fmt.Println("You are now signed in as the new account.")
		return nil
	},
}

var authChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your own password",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAuth("auth change-password"); err != nil {
			return err
		}

		current, _ := cmd.Flags().GetString("current")
		if current == "" {
			if current, err = tui.PromptForPassword("Current password"); err != nil {
				return err
			}
		}
		next, _ := cmd.Flags().GetString("new")
		if next == "" {
			if next, err = tui.PromptForPassword("New password"); err != nil {
				return err
			}
		}

		err = app.Client.ChangePassword(cmd.Context(), api.ChangePasswordRequest{
			CurrentPassword: current,
			NewPassword:     next,
		})
		if err != nil {
			return fmt.Errorf("password change failed: %w", err)
		}

		fmt.Println("Password changed.")
		return nil
	},
}

var authResetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a user's password by email",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			return fmt.Errorf("--email is required")
		}
		next, _ := cmd.Flags().GetString("new")
		if next == "" {
			if next, err = tui.PromptForPassword("New password"); err != nil {
				return err
			}
		}

		err = app.Client.ResetPassword(cmd.Context(), api.ResetPasswordRequest{
			Email:       email,
			NewPassword: next,
		})
		if err != nil {
			return fmt.Errorf("password reset failed: %w", err)
		}

		fmt.Printf("Password reset for %s.\n", email)
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authChangePasswordCmd)
	authCmd.AddCommand(authResetPasswordCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password (prompted when omitted)")

	authStatusCmd.Flags().Bool("refresh", false, "Refresh the stored profile from the backend")

	authRegisterCmd.Flags().String("email", "", "Email address")
	authRegisterCmd.Flags().String("password", "", "Password (prompted when omitted)")
	authRegisterCmd.Flags().String("first-name", "", "First name")
	authRegisterCmd.Flags().String("last-name", "", "Last name")
	authRegisterCmd.Flags().String("role", "", "Role (Admin, Doctor, HospitalEmployee)")

	authChangePasswordCmd.Flags().String("current", "", "Current password (prompted when omitted)")
	authChangePasswordCmd.Flags().String("new", "", "New password (prompted when omitted)")

	authResetPasswordCmd.Flags().String("email", "", "Email of the account to reset (required)")
	authResetPasswordCmd.Flags().String("new", "", "New password (prompted when omitted)")

	rootCmd.AddCommand(authCmd)
}
