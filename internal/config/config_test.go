package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ProviderDigitalOcean, cfg.Provider)
	assert.Equal(t, "VPN", cfg.Name)
	assert.Equal(t, "nyc1", cfg.Region)
	assert.Equal(t, "ubuntu-24-04-x64", cfg.Image)
	assert.Equal(t, "s-1vcpu-1gb", cfg.Size)
	assert.Equal(t, DefaultPlaybook, cfg.Playbook)
	assert.Equal(t, DefaultKeyDir, cfg.KeyDir)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults_Hetzner(t *testing.T) {
	cfg := &Config{Provider: ProviderHetzner}
	cfg.ApplyDefaults()

	assert.Equal(t, "nbg1", cfg.Region)
	assert.Equal(t, "ubuntu-24.04", cfg.Image)
	assert.Equal(t, "cx22", cfg.Size)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{Provider: ProviderDigitalOcean, Region: "fra1", Name: "office"}
	cfg.ApplyDefaults()

	assert.Equal(t, "fra1", cfg.Region)
	assert.Equal(t, "office", cfg.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown provider", func(c *Config) { c.Provider = "aws" }, `provider "aws" is not supported`},
		{"region of other provider", func(c *Config) { c.Region = "nbg1" }, `region "nbg1" is not available`},
		{"unknown image", func(c *Config) { c.Image = "windows-2022" }, `image "windows-2022" is not supported`},
		{"empty size", func(c *Config) { c.Size = " " }, "size is required"},
		{"bad name", func(c *Config) { c.Name = "my vpn" }, "may only contain"},
		{"long name", func(c *Config) { c.Name = string(make([]byte, 64)) }, "longer than 63"},
		{"bad email", func(c *Config) { c.Email = "nobody" }, "not a valid address"},
		{"ipv6 client", func(c *Config) { c.ClientIP = "2001:db8::1" }, "not an IPv4 address"},
		{"no playbook", func(c *Config) { c.Playbook = "" }, "playbook path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Email = "bad"
	cfg.ClientIP = "bad"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "client ip")
}

func TestProvider(t *testing.T) {
	assert.True(t, ProviderHetzner.IsValid())
	assert.False(t, Provider("linode").IsValid())
	assert.Equal(t, "DigitalOcean", ProviderDigitalOcean.String())
	assert.Equal(t, "linode", Provider("linode").String())
}

func TestCatalog(t *testing.T) {
	for _, p := range ValidProviders() {
		cat, ok := CatalogFor(p)
		require.True(t, ok, p)
		assert.True(t, cat.HasRegion(cat.DefaultRegion), "%s default region must be listed", p)
		assert.True(t, cat.HasImage(cat.DefaultImage), "%s default image must be listed", p)
		assert.Len(t, cat.ImageValues(), len(cat.Images))
		assert.Len(t, cat.RegionValues(), len(cat.Regions))
	}
	_, ok := CatalogFor("vultr")
	assert.False(t, ok)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)

	cfg := Default()
	cfg.Provider = ProviderHetzner
	cfg.Region = "hel1"
	cfg.Image = "debian-12"
	cfg.Size = "cx32"
	cfg.Email = "ops@example.com"
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromBytes_FillsDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("provider: hetzner\nemail: a@b.io\n"))
	require.NoError(t, err)

	assert.Equal(t, ProviderHetzner, cfg.Provider)
	assert.Equal(t, "nbg1", cfg.Region)
	assert.Equal(t, "a@b.io", cfg.Email)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("provider: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	assert.Empty(t, FindConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFilename), []byte("provider: hetzner\n"), 0o600))
	assert.Equal(t, filepath.Join(dir, DefaultConfigFilename), FindConfigFile())
}
