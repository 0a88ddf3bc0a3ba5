package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/platform/digitalocean"
	"github.com/imamik/dropvpn/internal/platform/hcloud"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/provisioning/access"
	"github.com/imamik/dropvpn/internal/provisioning/compute"
	"github.com/imamik/dropvpn/internal/provisioning/deploy"
	"github.com/imamik/dropvpn/internal/util/netutil"
	"github.com/imamik/dropvpn/internal/util/prerequisites"
)

var appVersion = "dev"

// SetVersion sets the version reported to the provider APIs.
func SetVersion(v string) {
	appVersion = v
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newProvider creates the API client for a provider.
	newProvider = defaultNewProvider

	// lookupToken reads the API token from the environment.
	lookupToken = config.Token

	// detectPublicIP returns the caller's public IPv4 address.
	detectPublicIP = func(ctx context.Context) (string, error) {
		return netutil.NewIPDetector().PublicIP(ctx)
	}

	// newPhases returns the deploy phases in order.
	newPhases = func() []provisioning.Phase {
		return []provisioning.Phase{
			access.NewProvisioner(),
			compute.NewProvisioner(),
			deploy.NewProvisioner(),
		}
	}

	// newAccessManager creates the SSH key manager used by the key command.
	newAccessManager = func(p cloud.Provider) keyManager {
		return access.NewManager(p)
	}

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// checkAllPrereqs runs required and optional prerequisite checks.
	checkAllPrereqs = prerequisites.CheckAll

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds dropvpn.yaml in the working directory.
	findConfigFile = config.FindConfigFile

	// saveConfig writes the config to a file.
	saveConfig = config.Save

	// runWizard runs the init wizard.
	runWizard = config.RunWizard

	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// stdout receives all user-facing output.
	stdout io.Writer = os.Stdout

	// now returns the current time.
	now = time.Now
)

// keyManager is the part of access.Manager the key command needs.
type keyManager interface {
	EnsureKeyRegistered(ctx context.Context, publicKey []byte) (int64, error)
	LookupFingerprint(ctx context.Context) (int64, error)
	KeyName() string
}

func defaultNewProvider(p config.Provider, token string) (cloud.Provider, error) {
	switch p {
	case config.ProviderDigitalOcean:
		c, err := digitalocean.NewClient(token, digitalocean.WithUserAgent("dropvpn/"+appVersion))
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderHetzner:
		c, err := hcloud.NewClient(token, hcloud.WithApplication("dropvpn", appVersion))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("provider %q is not supported", p)
	}
}

// connect reads the token for p and creates its client. A missing token is
// reported as an authentication failure.
func connect(p config.Provider) (cloud.Provider, error) {
	token, err := lookupToken(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provisioning.ErrAuth, err)
	}
	provider, err := newProvider(p, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", p, err)
	}
	return provider, nil
}
