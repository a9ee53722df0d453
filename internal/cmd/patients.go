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

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage patient records",
	Long: `List, inspect, and manage patient records.

All roles may view patients. Creating and editing requires admin or
hospital-employee permissions; deleting requires admin.

Examples:
  carectl patients list
  carectl patients search --name Smith
  carectl patients get 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("patients list", authz.ActionViewPatients); err != nil {
			return err
		}

		patients, err := app.patients.Get(cmd.Context(), func(ctx context.Context) ([]api.Patient, error) {
			return app.Client.ListPatients(ctx)
		})
		if err != nil {
			return err
		}

		return app.outputPatients(patients)
	},
}

var patientsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("patients get", authz.ActionViewPatients); err != nil {
			return err
		}

		patient, err := app.Client.GetPatient(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return app.outputPatients([]api.Patient{*patient})
	},
}

var patientsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search patients by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("patients search", authz.ActionViewPatients); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		patients, err := app.Client.SearchPatients(cmd.Context(), name)
		if err != nil {
			return err
		}

		if len(patients) == 0 {
			fmt.Printf("No patients matching %q.\n", name)
			return nil
		}
		return app.outputPatients(patients)
	},
}

var patientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a patient record",
	Long: `Create a patient record. Details not supplied as flags are collected
interactively.

Examples:
  carectl patients create --first-name Jane --last-name Doe \
    --date-of-birth 1987-04-12 --email jane@example.com --phone 555-0134`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("patients create", authz.ActionCreatePatient); err != nil {
			return err
		}

		req := api.CreatePatientRequest{}
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.DateOfBirth, _ = cmd.Flags().GetString("date-of-birth")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Phone, _ = cmd.Flags().GetString("phone")
		req.Address, _ = cmd.Flags().GetString("address")

		if err := promptIfMissing("First name", &req.FirstName); err != nil {
			return err
		}
		if err := promptIfMissing("Last name", &req.LastName); err != nil {
			return err
		}
		if err := promptIfMissing("Date of birth (YYYY-MM-DD)", &req.DateOfBirth); err != nil {
			return err
		}
		if err := promptIfMissing("Email", &req.Email); err != nil {
			return err
		}
		if err := promptIfMissing("Phone", &req.Phone); err != nil {
			return err
		}

		patient, err := app.Client.CreatePatient(cmd.Context(), req)
		if err != nil {
			return err
		}
		app.patients.Invalidate()

		fmt.Printf("Created patient %s %s (id %s).\n", patient.FirstName, patient.LastName, patient.ID)
		return nil
	},
}

var patientsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a patient's contact details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("patients update", authz.ActionEditPatient); err != nil {
			return err
		}

		// Start from the current record so unspecified fields keep their
		// values.
		current, err := app.Client.GetPatient(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		req := api.UpdatePatientRequest{
			Email:   current.Email,
			Phone:   current.Phone,
			Address: current.Address,
		}
		if v, _ := cmd.Flags().GetString("email"); v != "" {
			req.Email = v
		}
		if v, _ := cmd.Flags().GetString("phone"); v != "" {
			req.Phone = v
		}
		if v, _ := cmd.Flags().GetString("address"); v != "" {
			req.Address = v
		}

		patient, err := app.Client.UpdatePatient(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		app.patients.Invalidate()

		fmt.Printf("Updated patient %s %s.\n", patient.FirstName, patient.LastName)
		return nil
	},
}

var patientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a patient record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("patients delete", authz.ActionDeletePatient); err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			confirmed, err := tui.PromptForConfirmation(
				fmt.Sprintf("Delete patient %s? This cannot be undone.", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := app.Client.DeletePatient(cmd.Context(), args[0]); err != nil {
			return err
		}
		app.patients.Invalidate()

		fmt.Printf("Deleted patient %s.\n", args[0])
		return nil
	},
}

func (a *App) outputPatients(patients []api.Patient) error {
	if !a.textOutput() {
		formatter, err := a.formatter()
		if err != nil {
			return err
		}
		return formatter.Format(patients)
	}

	table := ux.Table{
		Headers: []string{"ID", "Name", "Date of birth", "Email", "Phone"},
	}
	for _, p := range patients {
		table.Rows = append(table.Rows, []string{
			p.ID,
			p.FirstName + " " + p.LastName,
			p.DateOfBirth,
			p.Email,
			p.Phone,
		})
	}
	fmt.Println(table.String())
	return nil
}

// promptIfMissing fills a required field interactively when its flag was
// not provided.
func promptIfMissing(title string, value *string) error {
	if *value != "" {
		return nil
	}
	v, err := tui.PromptForString(title, "", true)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func init() {
	patientsCmd.AddCommand(patientsListCmd)
	patientsCmd.AddCommand(patientsGetCmd)
	patientsCmd.AddCommand(patientsSearchCmd)
	patientsCmd.AddCommand(patientsCreateCmd)
	patientsCmd.AddCommand(patientsUpdateCmd)
	patientsCmd.AddCommand(patientsDeleteCmd)

	patientsSearchCmd.Flags().String("name", "", "Name or name fragment to search for (required)")

	patientsCreateCmd.Flags().String("first-name", "", "First name")
	patientsCreateCmd.Flags().String("last-name", "", "Last name")
	patientsCreateCmd.Flags().String("date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	patientsCreateCmd.Flags().String("email", "", "Email address")
	patientsCreateCmd.Flags().String("phone", "", "Phone number")
	patientsCreateCmd.Flags().String("address", "", "Postal address")

	patientsUpdateCmd.Flags().String("email", "", "New email address")
	patientsUpdateCmd.Flags().String("phone", "", "New phone number")
	patientsUpdateCmd.Flags().String("address", "", "New postal address")

	patientsDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(patientsCmd)
}
