package digitalocean

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/digitalocean/godo"
	"golang.org/x/oauth2"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// pageSize is the largest page the droplet and key endpoints accept.
const pageSize = 200

// Client implements cloud.Provider for DigitalOcean.
type Client struct {
	godo       *godo.Client
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

var _ cloud.Provider = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API endpoint (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the transport beneath the oauth2 layer.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent prefixes the godo user agent.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

type tokenSource struct {
	token string
}

var _ oauth2.TokenSource = (*tokenSource)(nil)

func (t *tokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: t.token}, nil
}

// NewClient returns a Client authenticated with token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, cloud.Wrap("digitalocean client", cloud.ErrAuth, errors.New("empty API token"))
	}

	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	ctx := context.Background()
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	oauthClient := oauth2.NewClient(ctx, &tokenSource{token: token})

	var godoOpts []godo.ClientOpt
	if c.baseURL != "" {
		godoOpts = append(godoOpts, godo.SetBaseURL(strings.TrimSuffix(c.baseURL, "/")+"/"))
	}
	if c.userAgent != "" {
		godoOpts = append(godoOpts, godo.SetUserAgent(c.userAgent))
	}

	gc, err := godo.New(oauthClient, godoOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create digitalocean client: %w", err)
	}
	c.godo = gc
	return c, nil
}

// Name returns "digitalocean".
func (c *Client) Name() string {
	return "digitalocean"
}

// lastPage reports whether resp is the final page of a listing.
func lastPage(resp *godo.Response) bool {
	return resp == nil || resp.Links == nil || resp.Links.IsLastPage()
}
