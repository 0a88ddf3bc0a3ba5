package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/dropvpn/internal/platform/ansible"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/util/naming"
)

const phaseName = "deploy"

// PlaybookRunner runs the configuration playbook against a host.
type PlaybookRunner interface {
	RunPlaybook(ctx context.Context, target ansible.Target) error
}

// Provisioner runs the playbook and verifies the client profile download.
type Provisioner struct {
	runner   PlaybookRunner
	verifier *Verifier
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithRunner replaces the ansible runner.
func WithRunner(r PlaybookRunner) Option {
	return func(p *Provisioner) {
		p.runner = r
	}
}

// WithVerifier replaces the client profile verifier.
func WithVerifier(v *Verifier) Option {
	return func(p *Provisioner) {
		p.verifier = v
	}
}

// NewProvisioner creates a new deploy provisioner using ansible-playbook from PATH.
func NewProvisioner(opts ...Option) *Provisioner {
	p := &Provisioner{runner: ansible.NewRunner()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Address == "" {
		return errors.New("no instance address to deploy to")
	}

	clientIP := ctx.State.ClientIP
	if clientIP == "" {
		clientIP = ctx.Config.ClientIP
	}
	target := ansible.Target{
		Address:        ctx.State.Address,
		ClientIP:       clientIP,
		Email:          ctx.Config.Email,
		PrivateKeyPath: ctx.State.PrivateKeyPath,
		Playbook:       ctx.Config.Playbook,
	}

	runCtx := context.Context(ctx)
	if ctx.Timeouts != nil && ctx.Timeouts.Playbook > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, ctx.Timeouts.Playbook)
		defer cancel()
	}

	ctx.Observer.Printf("Running playbook %s against %s", target.Playbook, target.Address)
	start := time.Now()
	if err := p.runner.RunPlaybook(runCtx, target); err != nil {
		return fmt.Errorf("%w: %w", provisioning.ErrDeploymentFailed, err)
	}
	ctx.Observer.Printf("Playbook finished in %v", time.Since(start).Round(time.Second))

	url := naming.ClientConfigURL(ctx.State.Address)
	if ctx.Config.SkipVerify {
		ctx.State.ConfigURL = url
		return nil
	}

	if err := p.verifierFor(ctx).Verify(ctx, url); err != nil {
		return fmt.Errorf("%w: client profile not served: %w", provisioning.ErrDeploymentFailed, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phaseName, "client profile", url, url)
	ctx.State.ConfigURL = url
	return nil
}

func (p *Provisioner) verifierFor(ctx *provisioning.Context) *Verifier {
	var v Verifier
	if p.verifier != nil {
		v = *p.verifier
	} else {
		v = *NewVerifier()
		if t := ctx.Timeouts; t != nil {
			v.Interval = t.VerifyInterval
			v.Attempts = t.VerifyAttempts
		}
	}
	if v.Notify == nil {
		observer := ctx.Observer
		v.Notify = func(attempt int, err error, next time.Duration) {
			provisioning.LogAttemptFailed(observer, "verify-profile", attempt, err, next)
		}
	}
	return &v
}
