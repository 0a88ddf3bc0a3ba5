// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/util/naming"
)

// DeployOptions holds the deploy flags. Empty fields keep the value from the
// configuration file.
type DeployOptions struct {
	ConfigPath  string
	Provider    string
	Name        string
	Region      string
	Image       string
	Size        string
	Email       string
	ClientIP    string
	Playbook    string
	KeyDir      string
	MetricsFile string
	SkipVerify  bool
}

func (o DeployOptions) overrides() overrides {
	return overrides{
		Provider:    o.Provider,
		Name:        o.Name,
		Region:      o.Region,
		Image:       o.Image,
		Size:        o.Size,
		Email:       o.Email,
		ClientIP:    o.ClientIP,
		Playbook:    o.Playbook,
		KeyDir:      o.KeyDir,
		MetricsFile: o.MetricsFile,
		SkipVerify:  o.SkipVerify,
	}
}

// Deploy creates a VPN server and prints the client profile URL.
//
// The workflow:
//  1. Loads the configuration and applies flag overrides
//  2. Checks that ansible-playbook is installed
//  3. Connects to the provider with the token from the environment
//  4. Detects the caller's public IP unless one was given
//  5. Runs the access, compute and deploy phases
//  6. Writes run metrics when a metrics file is configured
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.overrides())
	if err != nil {
		return err
	}

	if results := checkDefaultPrereqs(); results.HasErrors() {
		return results.Error()
	}

	provider, err := connect(cfg.Provider)
	if err != nil {
		return err
	}

	clientIP := cfg.ClientIP
	if clientIP == "" {
		printStep("Detecting your public IP address")
		clientIP, err = detectPublicIP(ctx)
		if err != nil {
			return err
		}
	}

	cfg.Name = naming.Instance(cfg.Name, now())
	printPlan(cfg, clientIP)

	pctx := provisioning.NewContext(ctx, cfg, provider)
	pctx.State.ClientIP = clientIP

	runErr := provisioning.RunPhases(pctx, newPhases())
	pctx.Metrics.RecordRun(runErr == nil, now())
	if cfg.MetricsFile != "" {
		if err := pctx.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}
	if runErr != nil {
		printFailure(pctx)
		return runErr
	}

	printDeploySuccess(pctx.State)
	return nil
}

// printStep announces an operation that talks to a remote system.
func printStep(msg string) {
	fmt.Fprintf(stdout, "%s %s...\n", render(dimStyle, "=>"), msg)
}

// printPlan prints what is about to be created.
func printPlan(cfg *config.Config, clientIP string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, render(titleStyle, "Deploying VPN server"))
	fmt.Fprintf(stdout, "  Provider:  %s\n", cfg.Provider)
	fmt.Fprintf(stdout, "  Name:      %s\n", cfg.Name)
	fmt.Fprintf(stdout, "  Region:    %s\n", cfg.Region)
	fmt.Fprintf(stdout, "  Image:     %s\n", cfg.Image)
	fmt.Fprintf(stdout, "  Size:      %s\n", cfg.Size)
	fmt.Fprintf(stdout, "  Client IP: %s\n", clientIP)
	fmt.Fprintln(stdout)
	printStep("Creating the instance; this usually takes a few minutes")
}

// printFailure points at the instance left behind by a failed run.
func printFailure(pctx *provisioning.Context) {
	fmt.Fprintln(stdout)
	stage := pctx.Tracker.Stage()
	if history := pctx.Tracker.History(); stage == provisioning.StageFailed && len(history) > 0 {
		stage = history[len(history)-1].From
	}
	fmt.Fprintf(stdout, "%s Deploy failed at stage %s\n", render(failedStyle, crossMark), stage)
	if reason := pctx.Tracker.Reason(); reason != "" {
		fmt.Fprintf(stdout, "  Reason: %s\n", reason)
	}
	if inst := pctx.State.Instance; inst != nil {
		fmt.Fprintf(stdout, "  Instance %s (ID %d) was created and is still running; delete it in the %s console.\n",
			inst.Name, inst.ID, pctx.Provider.Name())
	}
}

// printDeploySuccess prints the client profile URL.
func printDeploySuccess(state *provisioning.State) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s VPN server is ready at %s\n", render(readyStyle, checkMark), state.Address)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Download your client profile:")
	fmt.Fprintf(stdout, "  %s\n", render(urlStyle, state.ConfigURL))
}
