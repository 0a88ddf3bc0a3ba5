// Package hcloud implements cloud.Provider for Hetzner Cloud using hcloud-go.
//
// Region, image and size map to Hetzner location, image and server type
// names. Servers are labelled with the instance name and every tag
// (see package labels). API error codes are
// translated into cloud error kinds in errors.go.
package hcloud
