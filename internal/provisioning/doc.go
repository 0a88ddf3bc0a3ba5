// Package provisioning provides shared types and interfaces for VPN host provisioning.
//
// The provisioning domain is organized into focused subpackages:
//   - access/ handles the deployment SSH key, locally and at the provider
//   - compute/ creates the instance and waits for its address and shell
//   - deploy/ runs the OpenVPN playbook and checks the client profile
//
// This root package contains the shared Context and State, the phase runner,
// the readiness Tracker, the error taxonomy and run metrics.
package provisioning
