package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dropvpn/cmd/dropvpn/handlers"
	"github.com/imamik/dropvpn/internal/config"
)

// Init returns the command for interactively creating a configuration file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a dropvpn configuration",
		Long: `Interactively create a dropvpn configuration file.

The wizard asks for the provider first and then offers the regions and
images available there. API tokens are never written to the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
