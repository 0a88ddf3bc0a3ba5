package hcloud

import (
	"context"
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/util/labels"
)

// CreateInstance creates one server. The call is never retried.
func (c *Client) CreateInstance(ctx context.Context, req cloud.CreateRequest) (*cloud.Instance, error) {
	keys := make([]*hcloud.SSHKey, len(req.SSHKeyIDs))
	for i, id := range req.SSHKeyIDs {
		keys[i] = &hcloud.SSHKey{ID: id}
	}

	result, _, err := c.client.Server.Create(ctx, hcloud.ServerCreateOpts{
		Name:       req.Name,
		ServerType: &hcloud.ServerType{Name: req.Size},
		Image:      &hcloud.Image{Name: req.Image},
		Location:   &hcloud.Location{Name: req.Region},
		SSHKeys:    keys,
		UserData:   req.UserData,
		Labels:     labels.NewLabelBuilder(req.Name).WithTags(req.Tags...).Build(),
	})
	if err != nil {
		return nil, classify("create server", err)
	}
	if result.Server == nil {
		return nil, cloud.Wrap("create server", nil, errors.New("API returned no server"))
	}

	inst := toInstance(result.Server)
	return &inst, nil
}

// ListInstances returns all servers of the project.
func (c *Client) ListInstances(ctx context.Context) ([]cloud.Instance, error) {
	servers, err := c.client.Server.All(ctx)
	if err != nil {
		return nil, classify("list servers", err)
	}
	out := make([]cloud.Instance, 0, len(servers))
	for _, s := range servers {
		out = append(out, toInstance(s))
	}
	return out, nil
}

// toInstance lists the public IPv4 first, then private network addresses.
func toInstance(s *hcloud.Server) cloud.Instance {
	inst := cloud.Instance{
		ID:     s.ID,
		Name:   s.Name,
		Status: string(s.Status),
	}
	if ip := s.PublicNet.IPv4.IP; ip != nil && !ip.IsUnspecified() {
		inst.Addresses = append(inst.Addresses, cloud.Address{IP: ip.String(), Type: cloud.AddressPublic})
	}
	for _, pn := range s.PrivateNet {
		if pn.IP != nil {
			inst.Addresses = append(inst.Addresses, cloud.Address{IP: pn.IP.String(), Type: cloud.AddressPrivate})
		}
	}
	return inst
}
