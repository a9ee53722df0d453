package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carectl",
	Short: "Hospital administration from the terminal",
	Long: `carectl is a terminal client for the hospital administration backend.
It manages patients, doctors, and the appointment lifecycle, enforcing the
same role-based permissions the backend does so that forbidden actions are
rejected locally before any request is sent.

Sign in with 'carectl auth login'. Your session persists between runs until
you log out or the backend rejects your token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context. The context
// is cancelled on interrupt so in-flight requests and prompts abort cleanly.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.carectl/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().String("format", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}
