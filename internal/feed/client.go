package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"inventorysync/internal/logger"
)

type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient returns a feed client. A zero timeout keeps the transport
// default and sets no overall deadline.
func NewClient(timeout time.Duration, logger *logger.Logger) *Client {
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs a single GET against url. Non-200 statuses are returned,
// not treated as errors; deciding on them is the decoder's job.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching inventory feed: %s", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
