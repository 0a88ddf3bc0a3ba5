// Package access manages the deployment SSH key: the local key pair used by
// the SSH probe and ansible, and its registration with the cloud provider.
package access
