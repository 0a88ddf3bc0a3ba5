package naming

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultPrefix is used when no instance name is given.
	DefaultPrefix = "VPN"

	// SSHKey is the name under which the deployment key is registered.
	SSHKey = "VPN-Deployer"

	// Tag marks every resource created by dropvpn.
	Tag = "dropvpn"
)

// Instance returns the instance name for a run. A name equal to DefaultPrefix
// (or empty) gets a timestamp suffix; anything else is used verbatim.
func Instance(name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" || name == DefaultPrefix {
		return fmt.Sprintf("%s-%d", DefaultPrefix, now.Unix())
	}
	return name
}

// ClientConfigURL is where the playbook publishes the OpenVPN client profile.
func ClientConfigURL(address string) string {
	return fmt.Sprintf("http://%s/client.ovpn", address)
}
