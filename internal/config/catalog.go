package config

const (
	// DefaultName is replaced by VPN-<unix seconds> at deploy time.
	DefaultName = "VPN"

	// DefaultPlaybook is relative to the working directory.
	DefaultPlaybook = "playbook/openvpn.yml"

	// DefaultKeyDir is relative to the working directory.
	DefaultKeyDir = "playbook/env"
)

// Option is a catalog entry: the provider identifier and a label for prompts.
type Option struct {
	Value string
	Label string
}

// Catalog lists the regions and images offered for one provider.
type Catalog struct {
	Regions       []Option
	Images        []Option
	DefaultRegion string
	DefaultImage  string
	DefaultSize   string
}

var catalogs = map[Provider]Catalog{
	ProviderDigitalOcean: {
		Regions: []Option{
			{"nyc1", "New York 1"},
			{"nyc3", "New York 3"},
			{"sfo3", "San Francisco 3"},
			{"tor1", "Toronto 1"},
			{"lon1", "London 1"},
			{"ams3", "Amsterdam 3"},
			{"fra1", "Frankfurt 1"},
			{"sgp1", "Singapore 1"},
			{"blr1", "Bangalore 1"},
			{"syd1", "Sydney 1"},
		},
		Images: []Option{
			{"ubuntu-24-04-x64", "Ubuntu 24.04 LTS"},
			{"ubuntu-22-04-x64", "Ubuntu 22.04 LTS"},
			{"debian-12-x64", "Debian 12"},
			{"fedora-40-x64", "Fedora 40"},
			{"centos-stream-9-x64", "CentOS Stream 9"},
		},
		DefaultRegion: "nyc1",
		DefaultImage:  "ubuntu-24-04-x64",
		DefaultSize:   "s-1vcpu-1gb",
	},
	ProviderHetzner: {
		Regions: []Option{
			{"nbg1", "Nuremberg, Germany"},
			{"fsn1", "Falkenstein, Germany"},
			{"hel1", "Helsinki, Finland"},
			{"ash", "Ashburn, VA"},
			{"hil", "Hillsboro, OR"},
			{"sin", "Singapore"},
		},
		Images: []Option{
			{"ubuntu-24.04", "Ubuntu 24.04 LTS"},
			{"ubuntu-22.04", "Ubuntu 22.04 LTS"},
			{"debian-12", "Debian 12"},
			{"fedora-41", "Fedora 41"},
			{"centos-stream-9", "CentOS Stream 9"},
		},
		DefaultRegion: "nbg1",
		DefaultImage:  "ubuntu-24.04",
		DefaultSize:   "cx22",
	},
}

// CatalogFor returns the catalog of p.
func CatalogFor(p Provider) (Catalog, bool) {
	c, ok := catalogs[p]
	return c, ok
}

// HasRegion reports whether region is offered.
func (c Catalog) HasRegion(region string) bool {
	return contains(c.Regions, region)
}

// HasImage reports whether image is offered.
func (c Catalog) HasImage(image string) bool {
	return contains(c.Images, image)
}

// ImageValues returns the image identifiers in catalog order.
func (c Catalog) ImageValues() []string {
	return values(c.Images)
}

// RegionValues returns the region identifiers in catalog order.
func (c Catalog) RegionValues() []string {
	return values(c.Regions)
}

func contains(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}
