package deploy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/imamik/dropvpn/internal/util/retry"
)

// Verifier polls the client profile URL until it is served.
type Verifier struct {
	HTTPClient *http.Client
	Interval   time.Duration
	Attempts   int
	Timer      backoff.Timer
	Notify     func(attempt int, err error, next time.Duration)
}

// NewVerifier returns a Verifier polling every 20 seconds, 5 times.
func NewVerifier() *Verifier {
	return &Verifier{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Interval:   20 * time.Second,
		Attempts:   5,
	}
}

// Verify returns nil once url answers 200 with a non-empty body.
func (v *Verifier) Verify(ctx context.Context, url string) error {
	opts := []retry.Option{
		retry.WithInterval(v.Interval),
		retry.WithMaxAttempts(v.Attempts),
		retry.WithTimer(v.Timer),
	}
	if v.Notify != nil {
		opts = append(opts, retry.WithNotify(v.Notify))
	}
	return retry.Fixed(ctx, func() error { return v.fetch(ctx, url) }, opts...)
}

func (v *Verifier) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return retry.Fatal(err)
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s", url, resp.Status)
	}
	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s returned an empty body", url)
	}
	return nil
}
