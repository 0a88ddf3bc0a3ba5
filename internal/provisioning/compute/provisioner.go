package compute

import (
	"fmt"
	"strconv"
	"time"

	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/platform/ssh"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/util/naming"
)

const phaseName = "compute"

// Provisioner creates the instance and drives the readiness tracker from
// creating to shell-reachable.
type Provisioner struct {
	opts []Option
}

// NewProvisioner creates a new compute provisioner. opts are applied after
// the options derived from the context's timeouts.
func NewProvisioner(opts ...Option) *Provisioner {
	return &Provisioner{opts: opts}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	client := NewClient(ctx.Provider, append(contextOptions(ctx), p.opts...)...)
	tracker := ctx.Tracker

	req := cloud.CreateRequest{
		Name:   naming.Instance(ctx.Config.Name, time.Now()),
		Region: ctx.Config.Region,
		Image:  ctx.Config.Image,
		Size:   ctx.Config.Size,
		Tags:   []string{naming.Tag},
	}
	if ctx.State.SSHKeyID != 0 {
		req.SSHKeyIDs = []int64{ctx.State.SSHKeyID}
	}

	if err := tracker.Advance(provisioning.StageCreating); err != nil {
		return err
	}
	provisioning.LogResourceCreating(ctx.Observer, phaseName, "instance", req.Name)
	inst, err := client.Create(ctx, req)
	if err != nil {
		return fail(tracker, err)
	}
	ctx.State.Instance = inst
	provisioning.LogResourceCreated(ctx.Observer, phaseName, "instance", inst.Name, strconv.FormatInt(inst.ID, 10))

	if err := tracker.Advance(provisioning.StageAddressPending); err != nil {
		return err
	}
	address, err := client.ResolveAddress(ctx, inst.Name)
	if err != nil {
		return fail(tracker, err)
	}
	ctx.State.Address = address
	if err := tracker.Advance(provisioning.StageAddressResolved); err != nil {
		return err
	}
	ctx.Observer.Printf("Instance %s has address %s", inst.Name, address)

	if err := tracker.Advance(provisioning.StageShellPending); err != nil {
		return err
	}
	if err := client.WaitReachable(ctx, address, ctx.State.PrivateKeyPath); err != nil {
		return fail(tracker, err)
	}
	return tracker.Advance(provisioning.StageShellReachable)
}

func contextOptions(ctx *provisioning.Context) []Option {
	opts := []Option{
		WithObserver(ctx.Observer),
		WithMetrics(ctx.Metrics),
	}
	if t := ctx.Timeouts; t != nil {
		opts = append(opts,
			WithAPITimeout(t.APITimeout),
			WithAddressPolling(t.AddressInterval, t.AddressAttempts),
			WithShellPolling(t.ShellInterval, t.ShellAttempts),
			WithProber(ssh.NewProber(ssh.Config{DialTimeout: t.SSHDialTimeout})),
		)
	}
	return opts
}

// fail marks the tracker failed and returns err.
func fail(tracker *provisioning.Tracker, err error) error {
	if trErr := tracker.Fail(err.Error()); trErr != nil {
		return fmt.Errorf("%w (%v)", err, trErr)
	}
	return err
}
