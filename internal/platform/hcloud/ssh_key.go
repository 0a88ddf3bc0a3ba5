package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// ListSSHKeys returns all project keys.
func (c *Client) ListSSHKeys(ctx context.Context) ([]cloud.SSHKey, error) {
	keys, err := c.client.SSHKey.All(ctx)
	if err != nil {
		return nil, classify("list ssh keys", err)
	}
	out := make([]cloud.SSHKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, toSSHKey(k))
	}
	return out, nil
}

// CreateSSHKey registers publicKey under name.
func (c *Client) CreateSSHKey(ctx context.Context, name, publicKey string) (*cloud.SSHKey, error) {
	key, _, err := c.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
		Name:      name,
		PublicKey: publicKey,
	})
	if err != nil {
		return nil, classify("create ssh key", err)
	}
	out := toSSHKey(key)
	return &out, nil
}

func toSSHKey(k *hcloud.SSHKey) cloud.SSHKey {
	return cloud.SSHKey{
		ID:          k.ID,
		Name:        k.Name,
		Fingerprint: k.Fingerprint,
		PublicKey:   k.PublicKey,
	}
}
