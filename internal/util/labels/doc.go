// Package labels builds the label set attached to Hetzner Cloud servers.
//
// Every label key uses the dropvpn.io prefix except plain tags, which become
// keys with an empty value.
package labels
