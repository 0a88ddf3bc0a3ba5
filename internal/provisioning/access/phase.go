package access

import (
	"strconv"

	"github.com/imamik/dropvpn/internal/provisioning"
)

const phaseName = "access"

// Provisioner makes sure the deployment key exists locally and at the provider.
type Provisioner struct {
	opts []Option
}

// NewProvisioner creates a new access provisioner.
func NewProvisioner(opts ...Option) *Provisioner {
	return &Provisioner{opts: opts}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	path := PrivateKeyPath(ctx.Config.KeyDir)

	kp, created, err := EnsureLocalKey(ctx.Config.KeyDir)
	if err != nil {
		return err
	}
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "local ssh key", path, path)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phaseName, "local ssh key", path, path)
	}

	m := NewManager(ctx.Provider, p.opts...)
	key, registered, err := m.ensure(ctx, kp.PublicKey)
	if err != nil {
		return err
	}
	id := strconv.FormatInt(key.ID, 10)
	if registered {
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "ssh key", key.Name, id)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phaseName, "ssh key", key.Name, id)
	}

	ctx.State.SSHKeyID = key.ID
	ctx.State.PrivateKeyPath = path
	return nil
}
