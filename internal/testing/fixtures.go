package testing

import (
	"context"
	"sync"
	"testing"

	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/util/keygen"
)

// testKeyBits keeps key generation fast in tests.
const testKeyBits = 2048

// ProviderFixture provides a pre-configured mock provider for common test scenarios.
type ProviderFixture struct {
	mock *cloud.MockProvider
}

// NewProviderFixture creates a fixture around an empty in-memory provider.
func NewProviderFixture() *ProviderFixture {
	return &ProviderFixture{mock: &cloud.MockProvider{}}
}

// Mock returns the underlying MockProvider for custom configuration.
func (f *ProviderFixture) Mock() *cloud.MockProvider {
	return f.mock
}

// AddressAfter makes the instance called name appear in listings with a
// public address ip from the polls-th listing on. Earlier listings show it
// without any address.
func (f *ProviderFixture) AddressAfter(name, ip string, polls int) *ProviderFixture {
	var mu sync.Mutex
	listed := 0
	f.mock.ListInstancesFunc = func(_ context.Context) ([]cloud.Instance, error) {
		mu.Lock()
		defer mu.Unlock()
		listed++
		inst := cloud.Instance{ID: 1, Name: name, Status: "new"}
		if listed >= polls {
			inst.Status = "active"
			inst.Addresses = []cloud.Address{
				{IP: "10.10.0.5", Type: cloud.AddressPrivate},
				{IP: ip, Type: cloud.AddressPublic},
			}
		}
		return []cloud.Instance{inst}, nil
	}
	return f
}

// Failing makes every provider call return err.
func (f *ProviderFixture) Failing(err error) *ProviderFixture {
	f.mock.CreateInstanceFunc = func(context.Context, cloud.CreateRequest) (*cloud.Instance, error) { return nil, err }
	f.mock.ListInstancesFunc = func(context.Context) ([]cloud.Instance, error) { return nil, err }
	f.mock.ListSSHKeysFunc = func(context.Context) ([]cloud.SSHKey, error) { return nil, err }
	f.mock.CreateSSHKeyFunc = func(context.Context, string, string) (*cloud.SSHKey, error) { return nil, err }
	return f
}

// WriteKeyPair generates a small RSA key pair and saves it at privatePath.
func WriteKeyPair(t *testing.T, privatePath string) *keygen.KeyPair {
	t.Helper()
	kp, err := keygen.GenerateRSAKeyPair(testKeyBits, "test")
	if err != nil {
		t.Fatalf("failed to generate key pair: %v", err)
	}
	if err := kp.Save(privatePath); err != nil {
		t.Fatalf("failed to save key pair: %v", err)
	}
	return kp
}
