package compute

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/platform/ssh"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/util/retry"
)

// Polling defaults.
const (
	DefaultAddressInterval = 2 * time.Second
	DefaultAddressAttempts = 10
	DefaultShellInterval   = 20 * time.Second
	DefaultShellAttempts   = 5
)

// ShellProber performs one SSH login attempt.
type ShellProber interface {
	Handshake(ctx context.Context, host string, privateKey []byte) error
}

// Client creates an instance and polls it until it is ready for configuration.
type Client struct {
	provider cloud.Provider
	prober   ShellProber
	observer provisioning.Observer
	metrics  *provisioning.Metrics
	timer    backoff.Timer

	apiTimeout      time.Duration
	addressInterval time.Duration
	addressAttempts int
	shellInterval   time.Duration
	shellAttempts   int
}

// Option configures a Client.
type Option func(*Client)

// WithProber replaces the SSH prober.
func WithProber(p ShellProber) Option {
	return func(c *Client) {
		c.prober = p
	}
}

// WithObserver reports failed attempts to o.
func WithObserver(o provisioning.Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithMetrics counts attempts in m.
func WithMetrics(m *provisioning.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTimer replaces the timer used between polling attempts.
func WithTimer(t backoff.Timer) Option {
	return func(c *Client) {
		c.timer = t
	}
}

// WithAPITimeout bounds each provider call. Zero means no bound.
func WithAPITimeout(d time.Duration) Option {
	return func(c *Client) {
		c.apiTimeout = d
	}
}

// WithAddressPolling sets the schedule of ResolveAddress.
func WithAddressPolling(interval time.Duration, attempts int) Option {
	return func(c *Client) {
		c.addressInterval = interval
		c.addressAttempts = attempts
	}
}

// WithShellPolling sets the schedule of WaitReachable.
func WithShellPolling(interval time.Duration, attempts int) Option {
	return func(c *Client) {
		c.shellInterval = interval
		c.shellAttempts = attempts
	}
}

// NewClient returns a Client for provider using root SSH logins on port 22.
func NewClient(provider cloud.Provider, opts ...Option) *Client {
	c := &Client{
		provider:        provider,
		prober:          ssh.NewProber(ssh.Config{}),
		addressInterval: DefaultAddressInterval,
		addressAttempts: DefaultAddressAttempts,
		shellInterval:   DefaultShellInterval,
		shellAttempts:   DefaultShellAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create submits one create call for req. It does not retry. When req has no
// user data, BootstrapScript is used.
func (c *Client) Create(ctx context.Context, req cloud.CreateRequest) (*cloud.Instance, error) {
	if req.UserData == "" {
		req.UserData = BootstrapScript
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	inst, err := c.provider.CreateInstance(callCtx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create instance %q: %w", req.Name, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("failed to create instance %q: provider returned no instance", req.Name)
	}
	return inst, nil
}

// ResolveAddress polls the instance listing until the instance called name
// has a public IPv4 address. Once attempts are exhausted the last error is
// returned; it matches provisioning.ErrResourceNotFound or
// provisioning.ErrAddressNotFound. Rejected credentials stop polling at once.
func (c *Client) ResolveAddress(ctx context.Context, name string) (string, error) {
	var address string

	op := func() error {
		err := c.lookupAddress(ctx, name, &address)
		c.metrics.RecordAttempt("resolve_address", err)
		return err
	}

	err := retry.Fixed(ctx, op, c.retryOptions("resolve-address", c.addressInterval, c.addressAttempts)...)
	if err != nil {
		return "", err
	}
	return address, nil
}

func (c *Client) lookupAddress(ctx context.Context, name string, address *string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	instances, err := c.provider.ListInstances(callCtx)
	if err != nil {
		err = fmt.Errorf("failed to list instances: %w", err)
		if cloud.IsFatal(err) {
			return retry.Fatal(err)
		}
		return err
	}

	inst, ok := cloud.FindByName(instances, name)
	if !ok {
		return fmt.Errorf("%w: %q", provisioning.ErrResourceNotFound, name)
	}
	ip, ok := cloud.SelectAddress(inst.Addresses)
	if !ok {
		return fmt.Errorf("%w: %q", provisioning.ErrAddressNotFound, name)
	}
	*address = ip
	return nil
}

// WaitReachable polls address with SSH handshakes until one succeeds. The
// private key is read once, and a key the prober cannot parse fails at once
// with provisioning.ErrInvalidKey. Exhausting all attempts returns an error matching
// provisioning.ErrShellUnreachable that wraps the last handshake error.
func (c *Client) WaitReachable(ctx context.Context, address, privateKeyPath string) error {
	key, err := os.ReadFile(privateKeyPath) //nolint:gosec // path comes from user configuration
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	attempts := 0
	op := func() error {
		attempts++
		err := c.prober.Handshake(ctx, address, key)
		c.metrics.RecordAttempt("wait_reachable", err)
		if errors.Is(err, ssh.ErrInvalidKey) {
			return retry.Fatal(err)
		}
		return err
	}

	err = retry.Fixed(ctx, op, c.retryOptions("wait-reachable", c.shellInterval, c.shellAttempts)...)
	if err == nil {
		return nil
	}
	if errors.Is(err, ssh.ErrInvalidKey) {
		return fmt.Errorf("%w %s: %w", provisioning.ErrInvalidKey, privateKeyPath, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	return fmt.Errorf("%w: %s after %d attempts: %w", provisioning.ErrShellUnreachable, address, attempts, err)
}

func (c *Client) retryOptions(op string, interval time.Duration, attempts int) []retry.Option {
	opts := []retry.Option{
		retry.WithInterval(interval),
		retry.WithMaxAttempts(attempts),
		retry.WithTimer(c.timer),
	}
	if c.observer != nil {
		opts = append(opts, retry.WithNotify(func(attempt int, err error, next time.Duration) {
			provisioning.LogAttemptFailed(c.observer, op, attempt, err, next)
		}))
	}
	return opts
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.apiTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.apiTimeout)
}
