// Package deploy hands a reachable instance over to ansible and checks that
// the OpenVPN client profile is served afterwards.
package deploy
