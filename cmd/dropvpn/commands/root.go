// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dropvpn/internal/logging"
)

// Root returns the root command for the dropvpn CLI.
//
// Errors are printed by main, which also picks the exit code, so cobra is
// told to stay quiet about them.
func Root() *cobra.Command {
	var (
		verbose   bool
		logFormat string
	)

	cmd := &cobra.Command{
		Use:           "dropvpn",
		Short:         "Deploy a personal OpenVPN server on a fresh cloud instance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(logging.Options{
				Format:  logging.Format(logFormat),
				Verbose: verbose,
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: tint, text or json (default: tint on a terminal)")

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Init())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Key())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
