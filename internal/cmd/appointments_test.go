package cmd

import (
	"testing"
)

// TestAppointmentsSubcommands tests that all appointment subcommands are registered
func TestAppointmentsSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"list":       false,
		"get":        false,
		"create":     false,
		"cancel":     false,
		"complete":   false,
		"reschedule": false,
		"browse":     false,
	}

	for _, cmd := range appointmentsCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found in appointments command", name)
		}
	}
}

// TestAppointmentsListFlags tests the filter flags on appointments list
func TestAppointmentsListFlags(t *testing.T) {
	listCmd := findSubcommand(appointmentsCmd, "list")
	if listCmd == nil {
		t.Fatal("list subcommand not found")
	}

	if listCmd.Flags().Lookup("patient") == nil {
		t.Error("flag 'patient' not found on appointments list command")
	}
	if listCmd.Flags().Lookup("doctor") == nil {
		t.Error("flag 'doctor' not found on appointments list command")
	}
}

// TestAppointmentsCreateFlags tests the flags on appointments create
func TestAppointmentsCreateFlags(t *testing.T) {
	createCmd := findSubcommand(appointmentsCmd, "create")
	if createCmd == nil {
		t.Fatal("create subcommand not found")
	}

	for _, flag := range []string{"patient", "doctor", "date", "duration", "reason", "notes"} {
		if createCmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag '%s' not found on appointments create command", flag)
		}
	}
}

// TestAppointmentsRescheduleFlags tests the flags on appointments reschedule
func TestAppointmentsRescheduleFlags(t *testing.T) {
	rescheduleCmd := findSubcommand(appointmentsCmd, "reschedule")
	if rescheduleCmd == nil {
		t.Fatal("reschedule subcommand not found")
	}

	if rescheduleCmd.Flags().Lookup("date") == nil {
		t.Error("flag 'date' not found on appointments reschedule command")
	}
	if rescheduleCmd.Flags().Lookup("duration") == nil {
		t.Error("flag 'duration' not found on appointments reschedule command")
	}
}

// TestAppointmentsAlias tests the appts alias is registered
func TestAppointmentsAlias(t *testing.T) {
	found := false
	for _, alias := range appointmentsCmd.Aliases {
		if alias == "appts" {
			found = true
		}
	}
	if !found {
		t.Error("alias 'appts' not found on appointments command")
	}
}
