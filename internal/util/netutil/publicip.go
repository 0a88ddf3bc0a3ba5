// Package netutil discovers network facts about the machine running dropvpn.
package netutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/imamik/dropvpn/internal/util/retry"
)

// DefaultIPEndpoint echoes the caller's IPv4 address as plain text.
const DefaultIPEndpoint = "https://ipv4.icanhazip.com"

// IPDetector looks up the caller's public IPv4 address.
type IPDetector struct {
	Endpoint   string
	HTTPClient *http.Client
	RetryOpts  []retry.Option
}

// Retry schedule for the IP endpoint: 1s, 2s, then at most 4s between calls.
const (
	ipRetryAttempts     = 3
	ipRetryInitialDelay = time.Second
	ipRetryMultiplier   = 2
	ipRetryMaxDelay     = 4 * time.Second
)

// NewIPDetector returns a detector for DefaultIPEndpoint.
func NewIPDetector() *IPDetector {
	return &IPDetector{
		Endpoint:   DefaultIPEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PublicIP returns the caller's public IPv4 address. Transport failures and
// 5xx answers are retried with exponential backoff; a malformed body is not.
func (d *IPDetector) PublicIP(ctx context.Context) (string, error) {
	var ip string
	err := retry.WithExponentialBackoff(ctx, func() error {
		got, err := d.fetch(ctx)
		if err != nil {
			return err
		}
		ip = got
		return nil
	}, append([]retry.Option{
		retry.WithMaxAttempts(ipRetryAttempts),
		retry.WithInitialDelay(ipRetryInitialDelay),
		retry.WithMultiplier(ipRetryMultiplier),
		retry.WithMaxDelay(ipRetryMaxDelay),
	}, d.RetryOpts...)...)
	if err != nil {
		return "", fmt.Errorf("failed to detect public IP: %w", err)
	}
	return ip, nil
}

func (d *IPDetector) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Endpoint, nil)
	if err != nil {
		return "", retry.Fatal(err)
	}
	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("ip endpoint returned %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", retry.Fatal(fmt.Errorf("ip endpoint returned %s", resp.Status))
	}

	ip := strings.TrimSpace(string(body))
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() == nil {
		return "", retry.Fatal(fmt.Errorf("ip endpoint returned %q, not an IPv4 address", ip))
	}
	return ip, nil
}
