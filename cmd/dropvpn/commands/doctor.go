package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dropvpn/cmd/dropvpn/handlers"
)

// Doctor returns the command that checks whether a deploy can run.
func Doctor() *cobra.Command {
	var opts handlers.DoctorOptions

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check local tools, credentials and files",
		Long: `Check that a deploy can run on this machine.

Checks:
  - ansible-playbook is installed (ssh is reported but optional)
  - the configuration file is valid
  - an API token for the provider is set
  - the playbook exists
  - whether a deployment SSH key already exists`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: dropvpn.yaml)")
	cmd.Flags().StringVar(&opts.Provider, "provider", "", "Cloud provider to check credentials for")

	return cmd
}
