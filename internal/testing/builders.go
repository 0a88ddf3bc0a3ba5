package testing

import (
	"github.com/imamik/dropvpn/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Provider: config.ProviderDigitalOcean,
			Name:     "VPN-test",
			Region:   "nyc1",
			Image:    "ubuntu-24-04-x64",
			Size:     "s-1vcpu-1gb",
			ClientIP: "198.51.100.7",
			Playbook: config.DefaultPlaybook,
			KeyDir:   config.DefaultKeyDir,
		},
	}
}

// WithProvider sets the provider and its default region, image and size.
func (b *ConfigBuilder) WithProvider(p config.Provider) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Provider = p
	cat, _ := config.CatalogFor(p)
	nb.cfg.Region = cat.DefaultRegion
	nb.cfg.Image = cat.DefaultImage
	nb.cfg.Size = cat.DefaultSize
	return nb
}

// WithName sets the instance name.
func (b *ConfigBuilder) WithName(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Name = name
	return nb
}

// WithRegion sets the region.
func (b *ConfigBuilder) WithRegion(region string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Region = region
	return nb
}

// WithClientIP sets the VPN client address.
func (b *ConfigBuilder) WithClientIP(ip string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ClientIP = ip
	return nb
}

// WithEmail sets the contact email.
func (b *ConfigBuilder) WithEmail(email string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Email = email
	return nb
}

// WithKeyDir sets the SSH key directory.
func (b *ConfigBuilder) WithKeyDir(dir string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.KeyDir = dir
	return nb
}

// WithPlaybook sets the playbook path.
func (b *ConfigBuilder) WithPlaybook(path string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Playbook = path
	return nb
}

// WithSkipVerify disables the client profile download check.
func (b *ConfigBuilder) WithSkipVerify() *ConfigBuilder {
	nb := b.clone()
	nb.cfg.SkipVerify = true
	return nb
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: b.cfg}
}
