package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/authz"
	"github.com/carelane/carectl/internal/tui"
	"github.com/carelane/carectl/internal/ux"
)

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "Manage doctor records",
	Long: `List, inspect, and manage doctor records.

All roles may view doctors. Creating and deleting requires admin
permissions.

Examples:
  carectl doctors list
  carectl doctors list --specialization Cardiology
  carectl doctors get 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var doctorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List doctors, optionally by specialization",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("doctors list", authz.ActionViewDoctors); err != nil {
			return err
		}

		specialization, _ := cmd.Flags().GetString("specialization")

		var doctors []api.Doctor
		if specialization != "" {
			// Filtered listings bypass the cache; it holds the full set.
			doctors, err = app.Client.ListDoctorsBySpecialization(cmd.Context(), specialization)
		} else {
			doctors, err = app.doctors.Get(cmd.Context(), func(ctx context.Context) ([]api.Doctor, error) {
				return app.Client.ListDoctors(ctx)
			})
		}
		if err != nil {
			return err
		}

		if len(doctors) == 0 && specialization != "" {
			fmt.Printf("No doctors with specialization %q.\n", specialization)
			return nil
		}
		return app.outputDoctors(doctors)
	},
}

var doctorsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one doctor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("doctors get", authz.ActionViewDoctors); err != nil {
			return err
		}

		doctor, err := app.Client.GetDoctor(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return app.outputDoctors([]api.Doctor{*doctor})
	},
}

var doctorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a doctor record",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("doctors create", authz.ActionCreateDoctor); err != nil {
			return err
		}

		req := api.CreateDoctorRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Specialization, _ = cmd.Flags().GetString("specialization")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Phone, _ = cmd.Flags().GetString("phone")
		req.LicenseNumber, _ = cmd.Flags().GetString("license-number")

		if err := promptIfMissing("First name", &req.FirstName); err != nil {
			return err
		}
		if err := promptIfMissing("Last name", &req.LastName); err != nil {
			return err
		}
		if err := promptIfMissing("Specialization", &req.Specialization); err != nil {
			return err
		}
		if err := promptIfMissing("Email", &req.Email); err != nil {
			return err
		}
		if err := promptIfMissing("Phone", &req.Phone); err != nil {
			return err
		}
		if err := promptIfMissing("License number", &req.LicenseNumber); err != nil {
			return err
		}

		doctor, err := app.Client.CreateDoctor(cmd.Context(), req)
		if err != nil {
			return err
		}
		app.doctors.Invalidate()

		fmt.Printf("Created doctor %s %s (id %s).\n", doctor.FirstName, doctor.LastName, doctor.ID)
		return nil
	},
}

var doctorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a doctor record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("doctors delete", authz.ActionDeleteDoctor); err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			confirmed, err := tui.PromptForConfirmation(
				fmt.Sprintf("Delete doctor %s? This cannot be undone.", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := app.Client.DeleteDoctor(cmd.Context(), args[0]); err != nil {
			return err
		}
		app.doctors.Invalidate()

		fmt.Printf("Deleted doctor %s.\n", args[0])
		return nil
	},
}

func (a *App) outputDoctors(doctors []api.Doctor) error {
	if !a.textOutput() {
		formatter, err := a.formatter()
		if err != nil {
			return err
		}
		return formatter.Format(doctors)
	}

	table := ux.Table{
		Headers: []string{"ID", "Name", "Specialization", "Email", "Phone", "License"},
	}
	for _, d := range doctors {
		table.Rows = append(table.Rows, []string{
			d.ID,
			d.FirstName + " " + d.LastName,
			d.Specialization,
			d.Email,
			d.Phone,
			d.LicenseNumber,
		})
	}
	fmt.Println(table.String())
	return nil
}

func init() {
	doctorsCmd.AddCommand(doctorsListCmd)
	doctorsCmd.AddCommand(doctorsGetCmd)
	doctorsCmd.AddCommand(doctorsCreateCmd)
	doctorsCmd.AddCommand(doctorsDeleteCmd)

	doctorsListCmd.Flags().String("specialization", "", "Only doctors with this specialization")

	doctorsCreateCmd.Flags().String("first-name", "", "First name")
	doctorsCreateCmd.Flags().String("last-name", "", "Last name")
	doctorsCreateCmd.Flags().String("specialization", "", "Medical specialization")
	doctorsCreateCmd.Flags().String("email", "", "Email address")
	doctorsCreateCmd.Flags().String("phone", "", "Phone number")
	doctorsCreateCmd.Flags().String("license-number", "", "Medical license number")

	doctorsDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(doctorsCmd)
}
