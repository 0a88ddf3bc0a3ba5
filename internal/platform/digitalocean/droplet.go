package digitalocean

import (
	"context"
	"errors"

	"github.com/digitalocean/godo"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// CreateInstance creates one droplet. The call is never retried.
func (c *Client) CreateInstance(ctx context.Context, req cloud.CreateRequest) (*cloud.Instance, error) {
	keys := make([]godo.DropletCreateSSHKey, len(req.SSHKeyIDs))
	for i, id := range req.SSHKeyIDs {
		keys[i] = godo.DropletCreateSSHKey{ID: int(id)}
	}

	droplet, resp, err := c.godo.Droplets.Create(ctx, &godo.DropletCreateRequest{
		Name:     req.Name,
		Region:   req.Region,
		Size:     req.Size,
		Image:    godo.DropletCreateImage{Slug: req.Image},
		SSHKeys:  keys,
		UserData: req.UserData,
		Tags:     req.Tags,
	})
	if err != nil {
		return nil, classify("create droplet", resp, err)
	}
	if droplet == nil {
		return nil, cloud.Wrap("create droplet", nil, errors.New("API returned no droplet"))
	}

	inst := toInstance(*droplet)
	return &inst, nil
}

// ListInstances returns all droplets, walking every page.
func (c *Client) ListInstances(ctx context.Context) ([]cloud.Instance, error) {
	var out []cloud.Instance
	for page := 1; ; page++ {
		droplets, resp, err := c.godo.Droplets.List(ctx, &godo.ListOptions{Page: page, PerPage: pageSize})
		if err != nil {
			return nil, classify("list droplets", resp, err)
		}
		for _, d := range droplets {
			out = append(out, toInstance(d))
		}
		if lastPage(resp) {
			return out, nil
		}
	}
}

func toInstance(d godo.Droplet) cloud.Instance {
	inst := cloud.Instance{
		ID:     int64(d.ID),
		Name:   d.Name,
		Status: d.Status,
	}
	if d.Networks == nil {
		return inst
	}
	for _, n := range d.Networks.V4 {
		inst.Addresses = append(inst.Addresses, cloud.Address{
			IP:   n.IPAddress,
			Type: addressType(n.Type),
		})
	}
	return inst
}

func addressType(t string) cloud.AddressType {
	switch t {
	case "public":
		return cloud.AddressPublic
	case "private":
		return cloud.AddressPrivate
	default:
		return cloud.AddressUnknown
	}
}
