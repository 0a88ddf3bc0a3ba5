package cloud

import (
	"context"
	"fmt"
	"sync"

	"github.com/imamik/dropvpn/internal/util/keygen"
)

// MockProvider is an in-memory Provider for tests. Each method calls the
// matching Func field when set; otherwise it operates on Instances and Keys.
type MockProvider struct {
	CreateInstanceFunc func(ctx context.Context, req CreateRequest) (*Instance, error)
	ListInstancesFunc  func(ctx context.Context) ([]Instance, error)
	ListSSHKeysFunc    func(ctx context.Context) ([]SSHKey, error)
	CreateSSHKeyFunc   func(ctx context.Context, name, publicKey string) (*SSHKey, error)

	mu        sync.Mutex
	Instances []Instance
	Keys      []SSHKey
	Requests  []CreateRequest
	calls     map[string]int
	nextID    int64
}

var _ Provider = (*MockProvider)(nil)

// Name returns "mock".
func (m *MockProvider) Name() string { return "mock" }

// CreateInstance mocks instance creation.
func (m *MockProvider) CreateInstance(ctx context.Context, req CreateRequest) (*Instance, error) {
	m.record("CreateInstance")
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, req)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	inst := Instance{ID: m.id(), Name: req.Name, Status: "new"}
	m.Instances = append(m.Instances, inst)
	return &inst, nil
}

// ListInstances mocks instance listing.
func (m *MockProvider) ListInstances(ctx context.Context) ([]Instance, error) {
	m.record("ListInstances")
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Instance(nil), m.Instances...), nil
}

// ListSSHKeys mocks key listing.
func (m *MockProvider) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	m.record("ListSSHKeys")
	if m.ListSSHKeysFunc != nil {
		return m.ListSSHKeysFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SSHKey(nil), m.Keys...), nil
}

// CreateSSHKey mocks key registration. Like the real APIs it rejects a
// duplicate public key.
func (m *MockProvider) CreateSSHKey(ctx context.Context, name, publicKey string) (*SSHKey, error) {
	m.record("CreateSSHKey")
	if m.CreateSSHKeyFunc != nil {
		return m.CreateSSHKeyFunc(ctx, name, publicKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.Keys {
		if k.PublicKey == publicKey {
			return nil, Wrap("create ssh key", ErrConflict, fmt.Errorf("key %q already registered", k.Name))
		}
	}
	fingerprint, _ := keygen.FingerprintMD5([]byte(publicKey))
	key := SSHKey{ID: m.id(), Name: name, Fingerprint: fingerprint, PublicKey: publicKey}
	m.Keys = append(m.Keys, key)
	return &key, nil
}

// Calls returns how often method was invoked.
func (m *MockProvider) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockProvider) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// id must be called with mu held.
func (m *MockProvider) id() int64 {
	m.nextID++
	return 1000 + m.nextID
}
