package cloud

import "context"

// AddressType classifies an instance address.
type AddressType string

const (
	AddressPublic  AddressType = "public"
	AddressPrivate AddressType = "private"
	// AddressUnknown is used when the provider does not say.
	AddressUnknown AddressType = ""
)

// Address is one IPv4 address attached to an instance.
type Address struct {
	IP   string
	Type AddressType
}

// Instance is a provider's virtual machine. Addresses keep provider order.
type Instance struct {
	ID        int64
	Name      string
	Status    string
	Addresses []Address
}

// CreateRequest describes an instance to create. It is not modified by
// providers.
type CreateRequest struct {
	Name      string
	Region    string
	Image     string
	Size      string
	UserData  string
	SSHKeyIDs []int64
	Tags      []string
}

// SSHKey is a public key registered with the provider.
type SSHKey struct {
	ID          int64
	Name        string
	Fingerprint string
	PublicKey   string
}

// Provider is implemented by each cloud backend.
type Provider interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// CreateInstance submits one create call. Implementations must not retry.
	CreateInstance(ctx context.Context, req CreateRequest) (*Instance, error)

	// ListInstances returns every instance of the account, following pagination.
	ListInstances(ctx context.Context) ([]Instance, error)

	// ListSSHKeys returns every registered key, following pagination.
	ListSSHKeys(ctx context.Context) ([]SSHKey, error)

	// CreateSSHKey registers publicKey under name.
	CreateSSHKey(ctx context.Context, name, publicKey string) (*SSHKey, error)
}
