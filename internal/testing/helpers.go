package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// NewProvisioningContext returns a provisioning context for cfg and provider
// that records events in the returned observer. Timeouts are the defaults.
func NewProvisioningContext(t *testing.T, cfg *config.Config, provider cloud.Provider) (*provisioning.Context, *MockObserver) {
	t.Helper()
	observer := NewMockObserver()
	metrics := provisioning.NewMetrics(provider.Name())
	ctx := &provisioning.Context{
		Context:  TestContext(t),
		Config:   cfg,
		State:    provisioning.NewState(),
		Provider: provider,
		Observer: observer,
		Timeouts: DefaultTimeouts(),
		Tracker:  provisioning.NewTracker(observer, metrics),
		Metrics:  metrics,
	}
	return ctx, observer
}

// DefaultTimeouts returns the built-in timeouts without reading the environment.
func DefaultTimeouts() *config.Timeouts {
	return &config.Timeouts{
		AddressInterval: 2 * time.Second,
		AddressAttempts: 10,
		ShellInterval:   20 * time.Second,
		ShellAttempts:   5,
		SSHDialTimeout:  10 * time.Second,
		VerifyInterval:  20 * time.Second,
		VerifyAttempts:  5,
		APITimeout:      30 * time.Second,
		Playbook:        30 * time.Minute,
	}
}
