package handlers

import (
	"fmt"

	"github.com/imamik/dropvpn/internal/config"
)

// overrides holds flag values that replace configuration file fields.
type overrides struct {
	Provider    string
	Name        string
	Region      string
	Image       string
	Size        string
	Email       string
	ClientIP    string
	Playbook    string
	KeyDir      string
	MetricsFile string
	SkipVerify  bool
}

// loadConfig loads configPath, or dropvpn.yaml when present, applies the
// flag overrides and validates the result. Without any file the defaults of
// the selected provider are used.
func loadConfig(configPath string, o overrides) (*config.Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}

	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// A different provider invalidates the catalog-derived defaults.
	if o.Provider != "" && config.Provider(o.Provider) != cfg.Provider {
		cfg.Provider = config.Provider(o.Provider)
		cfg.Region, cfg.Image, cfg.Size = "", "", ""
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Name, o.Name)
	set(&cfg.Region, o.Region)
	set(&cfg.Image, o.Image)
	set(&cfg.Size, o.Size)
	set(&cfg.Email, o.Email)
	set(&cfg.ClientIP, o.ClientIP)
	set(&cfg.Playbook, o.Playbook)
	set(&cfg.KeyDir, o.KeyDir)
	set(&cfg.MetricsFile, o.MetricsFile)
	if o.SkipVerify {
		cfg.SkipVerify = true
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
