// Package main is the entry point for the dropvpn CLI.
//
// dropvpn creates a throwaway VPN server on DigitalOcean or Hetzner Cloud,
// waits until it accepts SSH logins, configures OpenVPN on it with ansible
// and prints the link to the client profile.
//
// Commands: deploy, init, doctor, key, version, completion.
//
// For detailed usage information, run:
//
//	dropvpn --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/dropvpn/cmd/dropvpn/commands"
	"github.com/imamik/dropvpn/internal/provisioning"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(provisioning.ExitCode(err))
	}
}
