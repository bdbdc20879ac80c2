// Package fetch retrieves the pinned schema documents. There is no
// retry and no caching: the URLs are commit-pinned, so a failure is
// either transient (rerun the tool) or a sign the pin is wrong.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const userAgent = "tosa-meta-info-gen/1.0"

// Client fetches raw document bytes over HTTP with a bounded timeout.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client whose requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the body of url, or an error naming the URL on any
// network, timeout, or HTTP-status failure.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	return body, nil
}

// FetchAll fetches every URL concurrently and returns the bodies in
// argument order. The fetches are independent, so the first failure
// cancels the rest; both documents are required either way.
func (c *Client) FetchAll(ctx context.Context, urls ...string) ([][]byte, error) {
	bodies := make([][]byte, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			body, err := c.Fetch(ctx, url)
			if err != nil {
				return err
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}
