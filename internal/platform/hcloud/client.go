package hcloud

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// Client implements cloud.Provider for Hetzner Cloud.
type Client struct {
	client *hcloud.Client
}

var _ cloud.Provider = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	endpoint   string
	httpClient *http.Client
	hcloud     *hcloud.Client
	appName    string
	appVersion string
}

// WithEndpoint points the client at another API endpoint (used by tests).
func WithEndpoint(url string) ClientOption {
	return func(c *clientConfig) {
		c.endpoint = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithHCloudClient uses an existing hcloud client and ignores other options.
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *clientConfig) {
		c.hcloud = hc
	}
}

// WithApplication sets the application name and version sent in the user agent.
func WithApplication(name, version string) ClientOption {
	return func(c *clientConfig) {
		c.appName = name
		c.appVersion = version
	}
}

// NewClient returns a Client authenticated with token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.hcloud != nil {
		return &Client{client: cfg.hcloud}, nil
	}

	if strings.TrimSpace(token) == "" {
		return nil, cloud.Wrap("hcloud client", cloud.ErrAuth, errors.New("empty API token"))
	}

	hopts := []hcloud.ClientOption{hcloud.WithToken(token)}
	if cfg.endpoint != "" {
		hopts = append(hopts, hcloud.WithEndpoint(cfg.endpoint))
	}
	if cfg.httpClient != nil {
		hopts = append(hopts, hcloud.WithHTTPClient(cfg.httpClient))
	}
	if cfg.appName != "" {
		hopts = append(hopts, hcloud.WithApplication(cfg.appName, cfg.appVersion))
	}
	return &Client{client: hcloud.NewClient(hopts...)}, nil
}

// Name returns "hetzner".
func (c *Client) Name() string {
	return "hetzner"
}
