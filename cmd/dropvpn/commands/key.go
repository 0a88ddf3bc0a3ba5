package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dropvpn/cmd/dropvpn/handlers"
)

// Key returns the command that shows or registers the deployment SSH key.
//
// Flags:
//
//	--provider: digitalocean or hetzner
//	--key-dir: Directory holding the deployment SSH key
//	--register: Generate and register the key when missing
func Key() *cobra.Command {
	var opts handlers.KeyOptions

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the provider ID of the deployment SSH key",
		Long: `Show the provider ID of the deployment SSH key (VPN-Deployer).

Without --register the key is only looked up and the command fails when it
is not registered. With --register the local key pair is generated if needed
and uploaded unless the provider already knows it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Key(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: dropvpn.yaml)")
	cmd.Flags().StringVar(&opts.Provider, "provider", "", "Cloud provider: digitalocean or hetzner")
	cmd.Flags().StringVar(&opts.KeyDir, "key-dir", "", "SSH key directory (default: playbook/env)")
	cmd.Flags().BoolVar(&opts.Register, "register", false, "Generate and register the key when missing")

	return cmd
}
