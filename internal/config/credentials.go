package config

import (
	"fmt"
	"os"
	"strings"
)

// tokenEnv lists the variables consulted for each provider, first match wins.
var tokenEnv = map[Provider][]string{
	ProviderDigitalOcean: {"DIGITALOCEAN_TOKEN", "DO_TOKEN"},
	ProviderHetzner:      {"HCLOUD_TOKEN"},
}

// TokenEnvVars returns the environment variables read for p.
func TokenEnvVars(p Provider) []string {
	return tokenEnv[p]
}

// Token returns the API token for p from the environment.
func Token(p Provider) (string, error) {
	vars, ok := tokenEnv[p]
	if !ok {
		return "", fmt.Errorf("provider %q is not supported", p)
	}
	for _, name := range vars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("no API token for %s: set %s", p, strings.Join(vars, " or "))
}
