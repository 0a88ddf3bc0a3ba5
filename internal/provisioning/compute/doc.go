// Package compute creates the VPN instance and waits until it can be
// configured: first for a public IPv4 address, then for an SSH login.
package compute
