package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the polling schedule and call timeouts of a run.
type Timeouts struct {
	AddressInterval time.Duration // Wait between instance listings
	AddressAttempts int           // Listings before giving up on the address
	ShellInterval   time.Duration // Wait between SSH handshakes
	ShellAttempts   int           // Handshakes before giving up
	SSHDialTimeout  time.Duration // Per-handshake connect timeout
	VerifyInterval  time.Duration // Wait between client.ovpn downloads
	VerifyAttempts  int           // Downloads before giving up
	APITimeout      time.Duration // Per-request timeout for provider calls
	Playbook        time.Duration // Upper bound for the ansible run
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - DROPVPN_ADDRESS_INTERVAL (default: 2s)
//   - DROPVPN_ADDRESS_ATTEMPTS (default: 10)
//   - DROPVPN_SHELL_INTERVAL (default: 20s)
//   - DROPVPN_SHELL_ATTEMPTS (default: 5)
//   - DROPVPN_SSH_DIAL_TIMEOUT (default: 10s)
//   - DROPVPN_VERIFY_INTERVAL (default: 20s)
//   - DROPVPN_VERIFY_ATTEMPTS (default: 5)
//   - DROPVPN_API_TIMEOUT (default: 30s)
//   - DROPVPN_PLAYBOOK_TIMEOUT (default: 30m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		AddressInterval: parseDuration("DROPVPN_ADDRESS_INTERVAL", 2*time.Second),
		AddressAttempts: parseInt("DROPVPN_ADDRESS_ATTEMPTS", 10),
		ShellInterval:   parseDuration("DROPVPN_SHELL_INTERVAL", 20*time.Second),
		ShellAttempts:   parseInt("DROPVPN_SHELL_ATTEMPTS", 5),
		SSHDialTimeout:  parseDuration("DROPVPN_SSH_DIAL_TIMEOUT", 10*time.Second),
		VerifyInterval:  parseDuration("DROPVPN_VERIFY_INTERVAL", 20*time.Second),
		VerifyAttempts:  parseInt("DROPVPN_VERIFY_ATTEMPTS", 5),
		APITimeout:      parseDuration("DROPVPN_API_TIMEOUT", 30*time.Second),
		Playbook:        parseDuration("DROPVPN_PLAYBOOK_TIMEOUT", 30*time.Minute),
	}
}

// parseDuration parses a positive duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses a positive integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}

	return i
}
