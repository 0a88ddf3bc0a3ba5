package keygen

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the RSA modulus size for generated deployment keys.
const DefaultBits = 4096

// PublicKeySuffix is appended to the private key path to name the public key file.
const PublicKeySuffix = ".pub"

// KeyPair holds an RSA key pair in on-disk formats.
type KeyPair struct {
	// PrivateKey is PEM-encoded PKCS#1.
	PrivateKey []byte
	// PublicKey is a single authorized_keys line ending in a newline.
	PublicKey []byte
}

// GenerateRSAKeyPair generates a new RSA key pair with the given size.
// comment, when non-empty, is appended to the authorized_keys line.
func GenerateRSAKeyPair(bits int, comment string) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}
	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	sshPub, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	pub := ssh.MarshalAuthorizedKey(sshPub)
	if comment != "" {
		pub = append(bytes.TrimRight(pub, "\n"), []byte(" "+comment+"\n")...)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pub,
	}, nil
}

// Save writes the private key to privatePath (0600) and the public key next
// to it with PublicKeySuffix (0644). The parent directory is created if needed.
func (kp *KeyPair) Save(privatePath string) error {
	if err := os.MkdirAll(filepath.Dir(privatePath), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(privatePath, kp.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(privatePath+PublicKeySuffix, kp.PublicKey, 0o644); err != nil { //nolint:gosec // public key is meant to be readable
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// Load reads a key pair previously written by Save. Both files must exist and
// the private key must match the public key.
func Load(privatePath string) (*KeyPair, error) {
	priv, err := os.ReadFile(privatePath) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	pub, err := os.ReadFile(privatePath + PublicKeySuffix) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	parsed, _, _, _, err := ssh.ParseAuthorizedKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	if !bytes.Equal(signer.PublicKey().Marshal(), parsed.Marshal()) {
		return nil, errors.New("public key does not match private key")
	}

	return &KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}

// Exists reports whether both key files are present at privatePath.
func Exists(privatePath string) bool {
	for _, p := range []string{privatePath, privatePath + PublicKeySuffix} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// FingerprintMD5 returns the colon-separated MD5 fingerprint of an
// authorized_keys line, the format DigitalOcean reports for account keys.
func FingerprintMD5(publicKey []byte) (string, error) {
	parsed, _, _, _, err := ssh.ParseAuthorizedKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintLegacyMD5(parsed), nil
}
