// Package keygen creates and persists the RSA key pair used to log in to
// freshly provisioned hosts.
//
// Private keys are PEM-encoded PKCS#1, public keys use the OpenSSH
// authorized_keys format accepted by both DigitalOcean and Hetzner.
package keygen
