package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/util/prerequisites"
)

// saveAndRestoreFactories restores every factory variable after the test
// and captures stdout in the returned buffer.
func saveAndRestoreFactories(t *testing.T) *bytes.Buffer {
	t.Helper()
	origNewProvider := newProvider
	origLookupToken := lookupToken
	origDetectPublicIP := detectPublicIP
	origNewPhases := newPhases
	origNewAccessManager := newAccessManager
	origCheckDefaultPrereqs := checkDefaultPrereqs
	origCheckAllPrereqs := checkAllPrereqs
	origLoadConfigFile := loadConfigFile
	origFindConfigFile := findConfigFile
	origSaveConfig := saveConfig
	origRunWizard := runWizard
	origFileExists := fileExists
	origStdout := stdout
	origNow := now

	t.Cleanup(func() {
		newProvider = origNewProvider
		lookupToken = origLookupToken
		detectPublicIP = origDetectPublicIP
		newPhases = origNewPhases
		newAccessManager = origNewAccessManager
		checkDefaultPrereqs = origCheckDefaultPrereqs
		checkAllPrereqs = origCheckAllPrereqs
		loadConfigFile = origLoadConfigFile
		findConfigFile = origFindConfigFile
		saveConfig = origSaveConfig
		runWizard = origRunWizard
		fileExists = origFileExists
		stdout = origStdout
		now = origNow
	})

	// Safe defaults: no config file, all tools present, a token set.
	findConfigFile = func() string { return "" }
	checkDefaultPrereqs = func() *prerequisites.CheckResults { return &prerequisites.CheckResults{} }
	lookupToken = func(config.Provider) (string, error) { return "test-token", nil }
	detectPublicIP = func(context.Context) (string, error) { return "198.51.100.7", nil }

	var buf bytes.Buffer
	stdout = &buf
	return &buf
}

// useProvider makes newProvider return p.
func useProvider(p cloud.Provider) {
	newProvider = func(config.Provider, string) (cloud.Provider, error) { return p, nil }
}
