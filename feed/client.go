package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aws-visibility/internal/errors"
	"aws-visibility/internal/logging"
)

// Client fetches the AWS IP ranges document over HTTP
type Client struct {
	httpClient *http.Client
	url        string
}

// ClientConfig configures the feed client
type ClientConfig struct {
	// URL of the IP ranges document (empty = published default)
	URL string

	// Timeout for the download
	Timeout time.Duration
}

// DefaultClientConfig returns production defaults
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		URL:     DefaultURL,
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a feed client
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultClientConfig()
	}
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the document URL the client fetches from.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads, decodes and validates the IP ranges document.
func (c *Client) Fetch(ctx context.Context) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Fetch("failed to create feed request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Fetch("failed to fetch IP ranges feed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.TypeFetch, "feed returned status %d", resp.StatusCode).
			WithContext("url", c.url)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, errors.Fetch("failed to decode IP ranges feed", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	logging.Info("fetched IP ranges feed",
		zap.String("sync_token", doc.SyncToken),
		zap.String("create_date", doc.CreateDate),
		zap.Int("prefixes", len(doc.Prefixes)),
		zap.Int("ipv6_prefixes", len(doc.IPv6Prefixes)))

	return &doc, nil
}
