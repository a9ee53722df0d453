package cmd

import (
	"testing"
)

// TestPatientsSubcommands tests that all patient subcommands are registered
func TestPatientsSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"list":   false,
		"get":    false,
		"search": false,
		"create": false,
		"update": false,
		"delete": false,
	}

	for _, cmd := range patientsCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found in patients command", name)
		}
	}
}

// TestPatientsSearchFlags tests the search flag
func TestPatientsSearchFlags(t *testing.T) {
	searchCmd := findSubcommand(patientsCmd, "search")
	if searchCmd == nil {
		t.Fatal("search subcommand not found")
	}

	if searchCmd.Flags().Lookup("name") == nil {
		t.Error("flag 'name' not found on patients search command")
	}
}

// TestPatientsCreateFlags tests the flags on patients create
func TestPatientsCreateFlags(t *testing.T) {
	createCmd := findSubcommand(patientsCmd, "create")
	if createCmd == nil {
		t.Fatal("create subcommand not found")
	}

	for _, flag := range []string{"first-name", "last-name", "date-of-birth", "email", "phone", "address"} {
		if createCmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag '%s' not found on patients create command", flag)
		}
	}
}

// TestPatientsDeleteFlags tests the force flag on patients delete
func TestPatientsDeleteFlags(t *testing.T) {
	deleteCmd := findSubcommand(patientsCmd, "delete")
	if deleteCmd == nil {
		t.Fatal("delete subcommand not found")
	}

	if deleteCmd.Flags().Lookup("force") == nil {
		t.Error("flag 'force' not found on patients delete command")
	}
}

// TestDoctorsSubcommands tests that all doctor subcommands are registered
func TestDoctorsSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"list":   false,
		"get":    false,
		"create": false,
		"delete": false,
	}

	for _, cmd := range doctorsCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found in doctors command", name)
		}
	}
}

// TestDoctorsListFlags tests the specialization filter flag
func TestDoctorsListFlags(t *testing.T) {
	listCmd := findSubcommand(doctorsCmd, "list")
	if listCmd == nil {
		t.Fatal("list subcommand not found")
	}

	if listCmd.Flags().Lookup("specialization") == nil {
		t.Error("flag 'specialization' not found on doctors list command")
	}
}

// TestRootPersistentFlags tests the global flags on the root command
func TestRootPersistentFlags(t *testing.T) {
	for _, flag := range []string{"config", "api-url", "format", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag '%s' not found on root command", flag)
		}
	}
}
