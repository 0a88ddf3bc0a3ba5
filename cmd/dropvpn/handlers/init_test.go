package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dropvpn/internal/config"
)

func TestInit_SavesWizardResult(t *testing.T) {
	out := saveAndRestoreFactories(t)
	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{
			Provider: config.ProviderHetzner,
			Name:     "VPN",
			Region:   "hel1",
			Image:    "debian-12",
			Email:    "me@example.com",
			Playbook: config.DefaultPlaybook,
		}, nil
	}
	var saved *config.Config
	var savedPath string
	saveConfig = func(cfg *config.Config, path string) error {
		saved, savedPath = cfg, path
		return nil
	}

	err := Init(context.Background(), "dropvpn.yaml")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "dropvpn.yaml", savedPath)
	assert.Equal(t, config.ProviderHetzner, saved.Provider)
	assert.Equal(t, "hel1", saved.Region)
	assert.Contains(t, out.String(), "Configuration saved to dropvpn.yaml")
	assert.Contains(t, out.String(), "export HCLOUD_TOKEN=<your token>")
	assert.NotContains(t, out.String(), "already exists")
}

func TestInit_WarnsBeforeOverwrite(t *testing.T) {
	out := saveAndRestoreFactories(t)
	fileExists = func(string) bool { return true }
	runWizard = func(context.Context) (*config.WizardResult, error) {
		return nil, errors.New("wizard canceled: user aborted")
	}
	saveConfig = func(*config.Config, string) error {
		t.Fatal("config must not be saved")
		return nil
	}

	err := Init(context.Background(), "dropvpn.yaml")

	require.Error(t, err)
	assert.Contains(t, out.String(), "dropvpn.yaml already exists")
}

func TestInit_RejectsInvalidResult(t *testing.T) {
	saveAndRestoreFactories(t)
	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{Provider: config.ProviderDigitalOcean, Name: "bad name", Region: "nyc1", Image: "ubuntu-24-04-x64"}, nil
	}
	saveConfig = func(*config.Config, string) error {
		t.Fatal("config must not be saved")
		return nil
	}

	err := Init(context.Background(), "dropvpn.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
