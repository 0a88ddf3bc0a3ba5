// Package cloud defines the provider-neutral view of the few cloud API calls a
// VPN deployment needs: create an instance, list instances, list and register
// SSH keys.
//
// Backends live in sibling packages (digitalocean, hcloud) and translate their
// SDK errors into the kinds declared here, so callers can branch with
// errors.Is without importing any SDK.
package cloud
