// Package tetration is a signed HTTP client for the security platform's
// REST API: JSON posts plus the multipart file upload the CMDB ingest
// endpoint expects. Every request carries the platform's HMAC
// authentication headers.
package tetration

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aws-visibility/internal/errors"
	"aws-visibility/internal/logging"
)

// apiPrefix is prepended to every endpoint path
const apiPrefix = "/openapi/v1"

const userAgent = "aws-visibility"

// MultiPartOption adds one form field to a file upload
type MultiPartOption struct {
	Key string
	Val string
}

// Response carries the status and body of a completed API call
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the call landed in the 2xx class
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Config configures the platform API client
type Config struct {
	// URL is the platform base URL (scheme and host)
	URL string

	// CredentialsFile is the JSON key pair downloaded from the platform
	CredentialsFile string

	// InsecureSkipVerify disables TLS certificate verification for
	// clusters fronted by self-signed certificates
	InsecureSkipVerify bool

	// Timeout for API calls
	Timeout time.Duration
}

// Client is a signed HTTP client for the platform API
type Client struct {
	httpClient *http.Client
	baseURL    string
	signer     *signer
}

// NewClient creates a platform API client from the target URL and the
// credentials file.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, errors.Config("platform URL is required")
	}

	creds, err := LoadCredentials(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		signer:     newSigner(creds),
	}, nil
}

// Get issues a signed GET against an API path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// Post issues a signed JSON POST against an API path.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, "application/json", body)
}

// UploadFile posts a local file as multipart form data, with one extra
// form field per option. The file goes under the "file" part name the
// CMDB upload endpoint requires.
func (c *Client) UploadFile(ctx context.Context, path, filePath string, options ...MultiPartOption) (*Response, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Internal("failed to read upload file", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, errors.Internal("failed to build multipart body", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, errors.Internal("failed to write multipart body", err)
	}
	for _, opt := range options {
		if err := mw.WriteField(opt.Key, opt.Val); err != nil {
			return nil, errors.Internal("failed to write multipart field", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Internal("failed to finish multipart body", err)
	}

	return c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), buf.Bytes())
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*Response, error) {
	url := c.baseURL + apiPrefix + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Internal("failed to create API request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	c.signer.sign(req, body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeRemote, err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeRemote, err, "failed to read %s %s response", method, path)
	}

	logging.Debug("platform API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
