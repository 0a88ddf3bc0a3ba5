package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/dropvpn/internal/config"
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "%s %s already exists and will be overwritten.\n\n", render(warningStyle, warnMark), outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := saveConfig(cfg, outputPath); err != nil {
		return err
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, render(titleStyle, "dropvpn - personal OpenVPN server"))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard writes a configuration for 'dropvpn deploy'.")
	fmt.Fprintln(stdout, "API tokens stay in your environment and are never saved.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints a summary and the next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Configuration saved to %s\n", render(readyStyle, checkMark), outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  Provider: %s\n", cfg.Provider)
	fmt.Fprintf(stdout, "  Name:     %s\n", cfg.Name)
	fmt.Fprintf(stdout, "  Region:   %s\n", cfg.Region)
	fmt.Fprintf(stdout, "  Image:    %s\n", cfg.Image)
	if cfg.Email != "" {
		fmt.Fprintf(stdout, "  Email:    %s\n", cfg.Email)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintf(stdout, "  export %s=<your token>\n", config.TokenEnvVars(cfg.Provider)[0])
	fmt.Fprintln(stdout, "  dropvpn doctor")
	fmt.Fprintln(stdout, "  dropvpn deploy")
}
