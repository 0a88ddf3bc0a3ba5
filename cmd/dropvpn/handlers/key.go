package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/dropvpn/internal/provisioning/access"
)

// KeyOptions holds the key flags.
type KeyOptions struct {
	ConfigPath string
	Provider   string
	KeyDir     string
	Register   bool
}

// Key prints the provider ID of the deployment key, registering it first
// when opts.Register is set.
func Key(ctx context.Context, opts KeyOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, overrides{Provider: opts.Provider, KeyDir: opts.KeyDir})
	if err != nil {
		return err
	}

	provider, err := connect(cfg.Provider)
	if err != nil {
		return err
	}
	m := newAccessManager(provider)

	if !opts.Register {
		id, err := m.LookupFingerprint(ctx)
		if err != nil {
			return fmt.Errorf("%w (run 'dropvpn key --register' to upload it)", err)
		}
		fmt.Fprintf(stdout, "%s %s is registered with %s as ID %d\n", render(readyStyle, checkMark), m.KeyName(), cfg.Provider, id)
		return nil
	}

	kp, created, err := access.EnsureLocalKey(cfg.KeyDir)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(stdout, "Generated %s\n", access.PrivateKeyPath(cfg.KeyDir))
	}

	printStep("Registering " + m.KeyName() + " with " + cfg.Provider.String())
	id, err := m.EnsureKeyRegistered(ctx, kp.PublicKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %s is registered with %s as ID %d\n", render(readyStyle, checkMark), m.KeyName(), cfg.Provider, id)
	return nil
}
