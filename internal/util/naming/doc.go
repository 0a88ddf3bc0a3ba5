// Package naming builds the names given to cloud resources created by a
// deployment run.
//
// Instances default to {prefix}-{unix seconds} so repeated runs never collide,
// and every run tags its resources with a fixed label so they can be found
// later in the provider console.
package naming
