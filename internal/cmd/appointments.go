package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/appointment"
	"github.com/carelane/carectl/internal/authz"
	"github.com/carelane/carectl/internal/tui"
	"github.com/carelane/carectl/internal/ux"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appts"},
	Short:   "Manage the appointment lifecycle",
	Long: `Schedule, reschedule, complete, and cancel appointments.

Appointments move through a lifecycle: Scheduled and Rescheduled
appointments are live and can still change; Completed and Cancelled are
terminal. An action that your role may not perform, or that the
appointment's status does not permit, is rejected locally before any
request is sent.

Examples:
  carectl appointments list
  carectl appointments list --patient 42
  carectl appointments cancel 19 --reason "patient request"
  carectl appointments browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments, optionally filtered by patient or doctor",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("appointments list", authz.ActionViewAppointments); err != nil {
			return err
		}

		patientID, _ := cmd.Flags().GetString("patient")
		doctorID, _ := cmd.Flags().GetString("doctor")
		if patientID != "" && doctorID != "" {
			return fmt.Errorf("--patient and --doctor are mutually exclusive")
		}

		appointments, err := app.fetchAppointments(cmd.Context(), patientID, doctorID)
		if err != nil {
			return err
		}

		return app.outputAppointments(appointments)
	},
}

var appointmentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("appointments get", authz.ActionViewAppointments); err != nil {
			return err
		}

		appt, err := app.Client.GetAppointment(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return app.outputAppointments([]api.Appointment{*appt})
	},
}

var appointmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a new appointment",
	Long: `Schedule a new appointment. The date is RFC 3339 and the duration is
between 15 and 240 minutes.

Examples:
  carectl appointments create --patient 42 --doctor 7 \
    --date 2026-09-15T10:30:00Z --duration 30 --reason "annual checkup"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("appointments create", authz.ActionCreateAppointment); err != nil {
			return err
		}

		req := api.CreateAppointmentRequest{}
		req.PatientID, _ = cmd.Flags().GetString("patient")
		req.DoctorID, _ = cmd.Flags().GetString("doctor")
		req.AppointmentDate, _ = cmd.Flags().GetString("date")
		req.DurationMinutes, _ = cmd.Flags().GetInt("duration")
		req.Reason, _ = cmd.Flags().GetString("reason")
		req.Notes, _ = cmd.Flags().GetString("notes")

		if err := promptIfMissing("Patient ID", &req.PatientID); err != nil {
			return err
		}
		if err := promptIfMissing("Doctor ID", &req.DoctorID); err != nil {
			return err
		}
		if err := promptIfMissing("Date (RFC 3339, e.g. 2026-09-15T10:30:00Z)", &req.AppointmentDate); err != nil {
			return err
		}
		if err := promptIfMissing("Reason", &req.Reason); err != nil {
			return err
		}

		if err := appointment.ValidateCreate(req.PatientID, req.DoctorID,
			req.AppointmentDate, req.DurationMinutes, req.Reason); err != nil {
			return err
		}

		appt, err := app.Client.CreateAppointment(cmd.Context(), req)
		if err != nil {
			return err
		}
		app.appointments.Invalidate()

		fmt.Printf("Scheduled appointment %s for %s with %s at %s.\n",
			appt.ID, appt.PatientName, appt.DoctorName, appt.AppointmentDate)
		return nil
	},
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		appt, err := app.gatedAppointment(cmd, args[0], "appointments cancel", authz.ActionCancelAppointment)
		if err != nil {
			return err
		}

		reason, _ := cmd.Flags().GetString("reason")
		if err := promptIfMissing("Cancellation reason", &reason); err != nil {
			return err
		}

		if err := app.Client.CancelAppointment(cmd.Context(), appt.ID, reason); err != nil {
			return err
		}
		app.appointments.Invalidate()

		fmt.Printf("Cancelled appointment %s.\n", appt.ID)
		return nil
	},
}

var appointmentsCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark an appointment as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		appt, err := app.gatedAppointment(cmd, args[0], "appointments complete", authz.ActionCompleteAppointment)
		if err != nil {
			return err
		}

		notes, _ := cmd.Flags().GetString("notes")

		if err := app.Client.CompleteAppointment(cmd.Context(), appt.ID, notes); err != nil {
			return err
		}
		app.appointments.Invalidate()

		fmt.Printf("Completed appointment %s.\n", appt.ID)
		return nil
	},
}

var appointmentsRescheduleCmd = &cobra.Command{
	Use:   "reschedule <id>",
	Short: "Move an appointment to a new date",
	Long: `Move an appointment to a new date and duration. Only live
appointments (Scheduled or Rescheduled) can move; a rescheduled
appointment can be rescheduled again.

Examples:
  carectl appointments reschedule 19 --date 2026-09-20T14:00:00Z --duration 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		appt, err := app.gatedAppointment(cmd, args[0], "appointments reschedule", authz.ActionRescheduleAppointment)
		if err != nil {
			return err
		}

		req := api.RescheduleAppointmentRequest{}
		req.NewDate, _ = cmd.Flags().GetString("date")
		req.NewDurationMinutes, _ = cmd.Flags().GetInt("duration")

		if err := promptIfMissing("New date (RFC 3339)", &req.NewDate); err != nil {
			return err
		}
		if req.NewDurationMinutes == 0 {
			// Keep the current duration unless a new one was given.
			req.NewDurationMinutes = appt.DurationMinutes
		}

		if err := appointment.ValidateReschedule(req.NewDate, req.NewDurationMinutes); err != nil {
			return err
		}

		updated, err := app.Client.RescheduleAppointment(cmd.Context(), appt.ID, req)
		if err != nil {
			return err
		}
		app.appointments.Invalidate()

		fmt.Printf("Rescheduled appointment %s to %s (%d minutes).\n",
			updated.ID, updated.AppointmentDate, updated.DurationMinutes)
		return nil
	},
}

var appointmentsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse appointments interactively",
	Long: `Browse appointments in an interactive table. The actions offered on
the selected appointment depend on your role and the appointment's
status; keys for unavailable actions do nothing.

Keys:
  r  reschedule    d  mark completed    x  cancel    q  quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		if err := app.requireAction("appointments browse", authz.ActionViewAppointments); err != nil {
			return err
		}

		for {
			appointments, err := app.fetchAppointments(cmd.Context(), "", "")
			if err != nil {
				return err
			}
			if len(appointments) == 0 {
				fmt.Println("No appointments.")
				return nil
			}

			result, err := tui.RunBrowse(appointments, app.Auth.Role())
			if err != nil {
				return err
			}
			if result.Quit {
				return nil
			}

			if err := app.applyBrowseAction(cmd.Context(), result); err != nil {
				return err
			}
			app.appointments.Invalidate()
		}
	},
}

// applyBrowseAction performs the action chosen in the browser, collecting
// any extra input it needs. The browser only offers actions the combined
// gate already allowed.
func (a *App) applyBrowseAction(ctx context.Context, result tui.BrowseResult) error {
	appt := result.Appointment

	switch result.Action {
	case authz.ActionCancelAppointment:
		reason, err := tui.PromptForString("Cancellation reason", "", true)
		if err != nil {
			return err
		}
		if err := a.Client.CancelAppointment(ctx, appt.ID, reason); err != nil {
			return err
		}
		fmt.Printf("Cancelled appointment %s.\n", appt.ID)

	case authz.ActionCompleteAppointment:
		notes, err := tui.PromptForString("Completion notes (optional)", "", false)
		if err != nil {
			return err
		}
		if err := a.Client.CompleteAppointment(ctx, appt.ID, notes); err != nil {
			return err
		}
		fmt.Printf("Completed appointment %s.\n", appt.ID)

	case authz.ActionRescheduleAppointment:
		newDate, err := tui.PromptForString("New date (RFC 3339)", appt.AppointmentDate, true)
		if err != nil {
			return err
		}
		if err := appointment.ValidateReschedule(newDate, appt.DurationMinutes); err != nil {
			return err
		}
		req := api.RescheduleAppointmentRequest{
			NewDate:            newDate,
			NewDurationMinutes: appt.DurationMinutes,
		}
		if _, err := a.Client.RescheduleAppointment(ctx, appt.ID, req); err != nil {
			return err
		}
		fmt.Printf("Rescheduled appointment %s to %s.\n", appt.ID, newDate)

	default:
		return fmt.Errorf("unsupported action %q", result.Action)
	}
	return nil
}

// gatedAppointment loads an appointment and applies the combined
// role-permission and status-transition gate for the requested action.
func (a *App) gatedAppointment(cmd *cobra.Command, id, route string, action authz.Action) (*api.Appointment, error) {
	if err := a.requireAuth(route); err != nil {
		return nil, err
	}

	appt, err := a.Client.GetAppointment(cmd.Context(), id)
	if err != nil {
		return nil, err
	}

	if err := appointment.Check(a.Auth.Role(), action, appt.LifecycleStatus()); err != nil {
		return nil, err
	}
	return appt, nil
}

// fetchAppointments returns the appointment listing for the given filter.
// The unfiltered listing is served through the cache; filtered listings go
// straight to the backend.
func (a *App) fetchAppointments(ctx context.Context, patientID, doctorID string) ([]api.Appointment, error) {
	switch {
	case patientID != "":
		return a.Client.ListAppointmentsByPatient(ctx, patientID)
	case doctorID != "":
		return a.Client.ListAppointmentsByDoctor(ctx, doctorID)
	default:
		return a.appointments.Get(ctx, func(ctx context.Context) ([]api.Appointment, error) {
			return a.Client.ListAppointments(ctx)
		})
	}
}

func (a *App) outputAppointments(appointments []api.Appointment) error {
	if !a.textOutput() {
		formatter, err := a.formatter()
		if err != nil {
			return err
		}
		return formatter.Format(appointments)
	}

	table := ux.Table{
		Headers: []string{"ID", "Patient", "Doctor", "Date", "Min", "Status"},
	}
	for _, appt := range appointments {
		table.Rows = append(table.Rows, []string{
			appt.ID,
			appt.PatientName,
			appt.DoctorName,
			appt.AppointmentDate,
			strconv.Itoa(appt.DurationMinutes),
			ux.StatusBadge(appt.LifecycleStatus()),
		})
	}
	fmt.Println(table.String())
	return nil
}

func init() {
	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsCmd.AddCommand(appointmentsGetCmd)
	appointmentsCmd.AddCommand(appointmentsCreateCmd)
	appointmentsCmd.AddCommand(appointmentsCancelCmd)
	appointmentsCmd.AddCommand(appointmentsCompleteCmd)
	appointmentsCmd.AddCommand(appointmentsRescheduleCmd)
	appointmentsCmd.AddCommand(appointmentsBrowseCmd)

	appointmentsListCmd.Flags().String("patient", "", "Only appointments for this patient ID")
	appointmentsListCmd.Flags().String("doctor", "", "Only appointments for this doctor ID")

	appointmentsCreateCmd.Flags().String("patient", "", "Patient ID")
	appointmentsCreateCmd.Flags().String("doctor", "", "Doctor ID")
	appointmentsCreateCmd.Flags().String("date", "", "Appointment date (RFC 3339)")
	appointmentsCreateCmd.Flags().Int("duration", 30, "Duration in minutes (15-240)")
	appointmentsCreateCmd.Flags().String("reason", "", "Reason for the visit")
	appointmentsCreateCmd.Flags().String("notes", "", "Additional notes")

	appointmentsCancelCmd.Flags().String("reason", "", "Cancellation reason (prompted when omitted)")

	appointmentsCompleteCmd.Flags().String("notes", "", "Completion notes")

	appointmentsRescheduleCmd.Flags().String("date", "", "New date (RFC 3339)")
	appointmentsRescheduleCmd.Flags().Int("duration", 0, "New duration in minutes (keeps current when omitted)")

	rootCmd.AddCommand(appointmentsCmd)
}
