package config

import (
	"errors"
	"fmt"
	"net"
	"net/mail"
	"regexp"
	"strings"
)

// nameRegex matches hostnames accepted by both DigitalOcean and Hetzner.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?$`)

// Config is everything a deploy needs apart from the API token.
type Config struct {
	// Provider selects the cloud backend.
	Provider Provider `yaml:"provider"`

	// Name is the instance name. "VPN" (the default) gets a timestamp suffix.
	Name string `yaml:"name,omitempty"`

	Region string `yaml:"region,omitempty"`
	Image  string `yaml:"image,omitempty"`
	Size   string `yaml:"size,omitempty"`

	// Email is handed to the playbook for the client certificate.
	Email string `yaml:"email,omitempty"`

	// ClientIP is the address allowed to reach the VPN host. Detected when empty.
	ClientIP string `yaml:"client_ip,omitempty"`

	// Playbook is the path to the OpenVPN playbook.
	Playbook string `yaml:"playbook,omitempty"`

	// KeyDir holds ssh_key and ssh_key.pub.
	KeyDir string `yaml:"key_dir,omitempty"`

	// SkipVerify disables the client.ovpn download check.
	SkipVerify bool `yaml:"skip_verify,omitempty"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// Provider is a supported cloud backend.
type Provider string

const (
	// ProviderDigitalOcean provisions a droplet.
	ProviderDigitalOcean Provider = "digitalocean"
	// ProviderHetzner provisions a Hetzner Cloud server.
	ProviderHetzner Provider = "hetzner"
)

// ValidProviders returns all supported providers.
func ValidProviders() []Provider {
	return []Provider{ProviderDigitalOcean, ProviderHetzner}
}

// IsValid returns true if p is a supported provider.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderDigitalOcean, ProviderHetzner:
		return true
	default:
		return false
	}
}

// String returns a human-readable provider name.
func (p Provider) String() string {
	switch p {
	case ProviderDigitalOcean:
		return "DigitalOcean"
	case ProviderHetzner:
		return "Hetzner Cloud"
	default:
		return string(p)
	}
}

// Default returns a Config with every field set for the DigitalOcean backend.
func Default() *Config {
	cfg := &Config{Provider: ProviderDigitalOcean}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields from the provider catalog.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderDigitalOcean
	}
	cat, ok := CatalogFor(c.Provider)
	if !ok {
		return
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Region == "" {
		c.Region = cat.DefaultRegion
	}
	if c.Image == "" {
		c.Image = cat.DefaultImage
	}
	if c.Size == "" {
		c.Size = cat.DefaultSize
	}
	if c.Playbook == "" {
		c.Playbook = DefaultPlaybook
	}
	if c.KeyDir == "" {
		c.KeyDir = DefaultKeyDir
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	cat, ok := CatalogFor(c.Provider)
	if !ok {
		errs = append(errs, fmt.Errorf("provider %q is not supported (use %s)", c.Provider, joinProviders()))
	} else {
		if !cat.HasRegion(c.Region) {
			errs = append(errs, fmt.Errorf("region %q is not available on %s", c.Region, c.Provider))
		}
		if !cat.HasImage(c.Image) {
			errs = append(errs, fmt.Errorf("image %q is not supported on %s", c.Image, c.Provider))
		}
		if strings.TrimSpace(c.Size) == "" {
			errs = append(errs, errors.New("size is required"))
		}
	}

	if err := ValidateName(c.Name); err != nil {
		errs = append(errs, err)
	}
	if c.Email != "" {
		if err := ValidateEmail(c.Email); err != nil {
			errs = append(errs, err)
		}
	}
	if c.ClientIP != "" {
		if err := ValidateClientIP(c.ClientIP); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.Playbook) == "" {
		errs = append(errs, errors.New("playbook path is required"))
	}

	return errors.Join(errs...)
}

// ValidateName checks an instance name.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > 63 {
		return fmt.Errorf("name %q is longer than 63 characters", name)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("name %q may only contain letters, digits, dots and hyphens", name)
	}
	return nil
}

// ValidateEmail checks a contact address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email %q is not a valid address", email)
	}
	return nil
}

// ValidateClientIP checks a caller address.
func ValidateClientIP(ip string) error {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() == nil {
		return fmt.Errorf("client ip %q is not an IPv4 address", ip)
	}
	return nil
}

func joinProviders() string {
	names := make([]string, 0, len(ValidProviders()))
	for _, p := range ValidProviders() {
		names = append(names, string(p))
	}
	return strings.Join(names, " or ")
}
