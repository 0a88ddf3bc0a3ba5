package provisioning

import (
	"errors"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// Failure kinds of a deployment. Callers match them with errors.Is.
var (
	// ErrResourceNotFound means no instance with the requested name was listed.
	ErrResourceNotFound = errors.New("instance not found")

	// ErrAddressNotFound means the instance exists but has no usable public IPv4 yet.
	ErrAddressNotFound = errors.New("instance has no public IPv4 address")

	// ErrShellUnreachable means every SSH handshake attempt failed.
	ErrShellUnreachable = errors.New("ssh unreachable")

	// ErrDeploymentFailed means the playbook or the client profile check failed.
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrKeyNotFound means no provider SSH key has the deployment key name.
	ErrKeyNotFound = errors.New("ssh key not registered")

	// ErrKeyMismatch means the deployment key name is taken by other key material.
	ErrKeyMismatch = errors.New("registered ssh key does not match the local key")

	// ErrInvalidKey means the local private key cannot be parsed.
	ErrInvalidKey = errors.New("invalid private key")
)

// Provider failure kinds, re-exported so callers need only this package.
var (
	ErrAuth           = cloud.ErrAuth
	ErrQuotaExceeded  = cloud.ErrQuotaExceeded
	ErrInvalidRequest = cloud.ErrInvalidRequest
	ErrConflict       = cloud.ErrConflict
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitError            = 1
	ExitAuth             = 2
	ExitProvisioning     = 3
	ExitShellUnreachable = 4
	ExitDeployment       = 5
)

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrAuth):
		return ExitAuth
	case errors.Is(err, ErrShellUnreachable):
		return ExitShellUnreachable
	case errors.Is(err, ErrDeploymentFailed):
		return ExitDeployment
	case errors.Is(err, ErrResourceNotFound),
		errors.Is(err, ErrAddressNotFound),
		errors.Is(err, ErrKeyNotFound),
		errors.Is(err, ErrKeyMismatch),
		errors.Is(err, ErrInvalidKey),
		errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrConflict):
		return ExitProvisioning
	default:
		return ExitError
	}
}
