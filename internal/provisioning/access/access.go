package access

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/util/keygen"
	"github.com/imamik/dropvpn/internal/util/naming"
)

// PrivateKeyFile is the file name of the deployment key inside the key directory.
const PrivateKeyFile = "ssh_key"

// PrivateKeyPath returns the deployment key path inside dir.
func PrivateKeyPath(dir string) string {
	return filepath.Join(dir, PrivateKeyFile)
}

// EnsureLocalKey returns the key pair stored in dir, generating an RSA key
// pair first when none exists. created reports whether a new pair was written.
func EnsureLocalKey(dir string) (kp *keygen.KeyPair, created bool, err error) {
	path := PrivateKeyPath(dir)
	if keygen.Exists(path) {
		kp, err = keygen.Load(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load ssh key %s: %w", path, err)
		}
		return kp, false, nil
	}

	kp, err = keygen.GenerateRSAKeyPair(keygen.DefaultBits, naming.SSHKey)
	if err != nil {
		return nil, false, err
	}
	if err := kp.Save(path); err != nil {
		return nil, false, err
	}
	return kp, true, nil
}

// Manager registers the deployment key with a provider.
type Manager struct {
	provider cloud.Provider
	keyName  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithKeyName overrides the name the key is registered under.
func WithKeyName(name string) Option {
	return func(m *Manager) {
		m.keyName = name
	}
}

// NewManager returns a Manager registering keys under naming.SSHKey.
func NewManager(provider cloud.Provider, opts ...Option) *Manager {
	m := &Manager{provider: provider, keyName: naming.SSHKey}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// KeyName returns the name the key is registered under.
func (m *Manager) KeyName() string {
	return m.keyName
}

// EnsureKeyRegistered returns the provider ID of publicKey, registering it
// when no key with the same fingerprint exists. Repeated calls register the
// key at most once. The key name being taken by other key material is an
// error matching provisioning.ErrKeyMismatch.
func (m *Manager) EnsureKeyRegistered(ctx context.Context, publicKey []byte) (int64, error) {
	key, _, err := m.ensure(ctx, publicKey)
	if err != nil {
		return 0, err
	}
	return key.ID, nil
}

// LookupFingerprint returns the provider ID of the key registered under the
// key name. It never creates anything.
func (m *Manager) LookupFingerprint(ctx context.Context) (int64, error) {
	keys, err := m.provider.ListSSHKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list ssh keys: %w", err)
	}
	for _, k := range keys {
		if k.Name == m.keyName {
			return k.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", provisioning.ErrKeyNotFound, m.keyName)
}

func (m *Manager) ensure(ctx context.Context, publicKey []byte) (*cloud.SSHKey, bool, error) {
	fingerprint, err := keygen.FingerprintMD5(publicKey)
	if err != nil {
		return nil, false, err
	}

	if key, err := m.find(ctx, fingerprint); err != nil || key != nil {
		return key, false, err
	}

	created, err := m.provider.CreateSSHKey(ctx, m.keyName, strings.TrimSpace(string(publicKey)))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, cloud.ErrConflict) {
		return nil, false, fmt.Errorf("failed to register ssh key: %w", err)
	}

	// Registered concurrently or under another name; the listing has it now.
	key, findErr := m.find(ctx, fingerprint)
	if findErr != nil {
		return nil, false, findErr
	}
	if key == nil {
		return nil, false, fmt.Errorf("failed to register ssh key: %w", err)
	}
	return key, false, nil
}

// find returns the key matching fingerprint, else the key named keyName when
// the provider reported no fingerprint for it, else nil. A key named keyName
// with a different fingerprint cannot log in with the local private key and is
// reported as provisioning.ErrKeyMismatch.
func (m *Manager) find(ctx context.Context, fingerprint string) (*cloud.SSHKey, error) {
	keys, err := m.provider.ListSSHKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ssh keys: %w", err)
	}

	var byName *cloud.SSHKey
	for i := range keys {
		if keys[i].Fingerprint != "" && keys[i].Fingerprint == fingerprint {
			return &keys[i], nil
		}
		if byName == nil && keys[i].Name == m.keyName {
			byName = &keys[i]
		}
	}
	if byName != nil && byName.Fingerprint != "" {
		return nil, fmt.Errorf("%w: a different %s key (ID %d, fingerprint %s) is registered; delete it or use --key-dir",
			provisioning.ErrKeyMismatch, m.keyName, byName.ID, byName.Fingerprint)
	}
	return byName, nil
}
