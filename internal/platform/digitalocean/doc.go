// Package digitalocean implements cloud.Provider on top of godo.
//
// Authentication uses an oauth2 static token source. Listing calls walk every
// page because droplet lookup is a linear scan by exact name. SDK failures are
// classified in errors.go by HTTP status.
package digitalocean
