package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers from the init wizard.
type WizardResult struct {
	Provider Provider
	Name     string
	Region   string
	Image    string
	Email    string
	Playbook string
}

// RunWizard asks for the settings of a deploy. The provider is chosen first
// because it determines which regions and images are offered.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Provider: ProviderDigitalOcean,
		Name:     DefaultName,
		Playbook: DefaultPlaybook,
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Provider]().
				Title("Cloud provider").
				Description("Where the VPN host is created").
				Options(providerOptions()...).
				Value(&result.Provider),
		),
	)
	if err := providerForm.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	cat, _ := CatalogFor(result.Provider)
	result.Region = cat.DefaultRegion
	result.Image = cat.DefaultImage

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Instance name").
				Description("Leave as VPN to append a timestamp on every run").
				Placeholder(DefaultName).
				Value(&result.Name).
				Validate(ValidateName),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Options(catalogOptions(cat.Regions)...).
				Value(&result.Region),
			huh.NewSelect[string]().
				Title("Image").
				Description("The playbook supports Debian and Red Hat families").
				Options(catalogOptions(cat.Images)...).
				Value(&result.Image),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Contact email (optional)").
				Description("Passed to the playbook for the client certificate").
				Placeholder("you@example.com").
				Value(&result.Email).
				Validate(validateOptionalEmail),
			huh.NewInput().
				Title("Playbook path").
				Value(&result.Playbook),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults filled.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Provider: r.Provider,
		Name:     strings.TrimSpace(r.Name),
		Region:   r.Region,
		Image:    r.Image,
		Email:    strings.TrimSpace(r.Email),
		Playbook: strings.TrimSpace(r.Playbook),
	}
	cfg.ApplyDefaults()
	return cfg
}

func providerOptions() []huh.Option[Provider] {
	opts := make([]huh.Option[Provider], 0, len(ValidProviders()))
	for _, p := range ValidProviders() {
		opts = append(opts, huh.NewOption(p.String(), p))
	}
	return opts
}

func catalogOptions(entries []Option) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", e.Label, e.Value), e.Value))
	}
	return opts
}

func validateOptionalEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return ValidateEmail(s)
}
