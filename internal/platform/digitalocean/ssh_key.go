package digitalocean

import (
	"context"

	"github.com/digitalocean/godo"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// ListSSHKeys returns all account keys, walking every page.
func (c *Client) ListSSHKeys(ctx context.Context) ([]cloud.SSHKey, error) {
	var out []cloud.SSHKey
	for page := 1; ; page++ {
		keys, resp, err := c.godo.Keys.List(ctx, &godo.ListOptions{Page: page, PerPage: pageSize})
		if err != nil {
			return nil, classify("list ssh keys", resp, err)
		}
		for _, k := range keys {
			out = append(out, toSSHKey(k))
		}
		if lastPage(resp) {
			return out, nil
		}
	}
}

// CreateSSHKey registers publicKey under name.
func (c *Client) CreateSSHKey(ctx context.Context, name, publicKey string) (*cloud.SSHKey, error) {
	key, resp, err := c.godo.Keys.Create(ctx, &godo.KeyCreateRequest{
		Name:      name,
		PublicKey: publicKey,
	})
	if err != nil {
		return nil, classify("create ssh key", resp, err)
	}
	out := toSSHKey(*key)
	return &out, nil
}

func toSSHKey(k godo.Key) cloud.SSHKey {
	return cloud.SSHKey{
		ID:          int64(k.ID),
		Name:        k.Name,
		Fingerprint: k.Fingerprint,
		PublicKey:   k.PublicKey,
	}
}
