package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const _defaultTimeout = 15 * time.Second

// Client fetches transformed bytes from the external image service.
type Client struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = _defaultTimeout
	}

	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) PreviewURL(assetKey string, t dto.Transform) string {
	return transformURL(c.endpoint, assetKey, t)
}

// Fetch requests the transformed object. Transient failures (network errors,
// 5xx) are retried exactly once; permanent failures surface immediately.
func (c *Client) Fetch(ctx context.Context, assetKey string, t dto.Transform) ([]byte, error) {
	url := transformURL(c.endpoint, assetKey, t)

	body, retryable, err := c.fetchOnce(ctx, url)
	if err != nil && retryable {
		body, _, err = c.fetchOnce(ctx, url)
	}
	if err != nil {
		return nil, fmt.Errorf("delivery Client - Fetch: %w", err)
	}

	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("c.client.Do: %v: %w", err, errs.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= http.StatusInternalServerError,
			fmt.Errorf("status %d: %w", resp.StatusCode, errs.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("io.ReadAll: %v: %w", err, errs.ErrUpstreamUnavailable)
	}

	return body, false, nil
}
