package ssh

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	defaultUser        = "root"
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
)

// ErrInvalidKey is returned by Handshake when the private key cannot be parsed.
// Retrying cannot fix it.
var ErrInvalidKey = errors.New("failed to parse private key")

// Config holds prober configuration.
type Config struct {
	// User defaults to root.
	User string

	// Port defaults to 22.
	Port int

	// DialTimeout bounds the TCP connect and the handshake.
	// If zero, defaultDialTimeout is used.
	DialTimeout time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used.
	HostKeyCallback ssh.HostKeyCallback
}

// Prober performs single SSH handshakes. It is safe for concurrent use.
type Prober struct {
	config Config
}

// NewProber returns a Prober with defaults applied to a copy of cfg.
func NewProber(cfg Config) *Prober {
	if cfg.User == "" {
		cfg.User = defaultUser
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.HostKeyCallback == nil {
		cfg.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // hosts are created by this run
	}
	return &Prober{config: cfg}
}

// Handshake connects to host, authenticates with privateKey and disconnects.
// It makes exactly one attempt.
func (p *Prober) Handshake(ctx context.Context, host string, privateKey []byte) error {
	signer, err := ssh.ParsePrivateKey(privateKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	addr := net.JoinHostPort(host, strconv.Itoa(p.config.Port))
	dialCtx, cancel := context.WithTimeout(ctx, p.config.DialTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	// The handshake has no context parameter; bound it with the same deadline.
	if deadline, ok := dialCtx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	clientConfig := &ssh.ClientConfig{
		User:            p.config.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: p.config.HostKeyCallback,
		Timeout:         p.config.DialTimeout,
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(fmt.Errorf("ssh handshake with %s: %w", addr, err), ctxErr)
		}
		return fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	return client.Close()
}
