package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/dropvpn/internal/platform/ansible"
)

// MockProber is a mock SSH prober.
type MockProber struct {
	mock.Mock
}

// Handshake records the call and returns the configured error.
func (m *MockProber) Handshake(ctx context.Context, host string, privateKey []byte) error {
	args := m.Called(ctx, host, privateKey)
	return args.Error(0)
}

// MockPlaybookRunner is a mock ansible runner.
type MockPlaybookRunner struct {
	mock.Mock
}

// RunPlaybook records the call and returns the configured error.
func (m *MockPlaybookRunner) RunPlaybook(ctx context.Context, target ansible.Target) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}
