package lightroom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lrcloud/internal/config"
	"lrcloud/internal/logging"
)

const userAgent = "lrcloud/0.1.0"

// Client provides access to the photo-catalog service.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	uploadClient *http.Client
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for metadata calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUploadHTTPClient overrides the HTTP client used for master uploads,
// which typically need a longer deadline than metadata calls.
func WithUploadHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.uploadClient = client
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a service client for the given origin and integration key.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("service base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("integration api key required")
	}
	client := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		uploadClient: &http.Client{Timeout: 5 * time.Minute},
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a client using application config settings.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	return New(cfg.Service.BaseURL, cfg.Service.APIKey,
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		WithUploadHTTPClient(&http.Client{Timeout: cfg.UploadTimeout()}),
		WithLogger(logger),
	)
}

// APIKey returns the integration key this client stamps on every call.
// Project albums with a matching publish-info service id belong to this
// integration.
func (c *Client) APIKey() string {
	return c.apiKey
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// GetJSON issues an authenticated GET and decodes the guarded JSON body
// into out. An empty body leaves out at its zero value.
func (c *Client) GetJSON(ctx context.Context, token, path string, out any) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return &StatusError{Op: "GET " + path, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s: %w", path, err)
	}
	if err := decodeGuarded(body, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

// PutJSON serializes body and issues an authenticated PUT with
// Content-Type application/json. A non-empty fingerprint is attached as
// an If-None-Match precondition so the service can reject writes whose
// content already exists. Status errors propagate unchanged for the
// caller to translate.
func (c *Client) PutJSON(ctx context.Context, token, path string, body any, fingerprint string) (json.RawMessage, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body for %s: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, token, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if fingerprint != "" {
		req.Header.Set("If-None-Match", fingerprint)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PUT %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 300 {
		return nil, &StatusError{Op: "PUT " + path, Status: resp.StatusCode}
	}

	c.logger.Debug("wrote resource", "path", path, "status", resp.StatusCode, "preconditioned", fingerprint != "")
	return raw, nil
}

// PutMaster uploads raw master bytes to a revision sub-resource. The
// byte range frames the payload as Content-Range and the request always
// directs the service to regenerate all derived renditions.
func (c *Client) PutMaster(ctx context.Context, token, path, contentType string, rng ByteRange, data []byte) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, token, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Range", rng.ContentRange())
	req.Header.Set("X-Generate-Renditions", "all")

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("PUT %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return &StatusError{Op: "PUT " + path, Status: resp.StatusCode}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("uploaded master", "path", path, "bytes", len(data), "range", rng.ContentRange())
	return nil
}

// Health probes service liveness. Any successful response means "up";
// every failure collapses to a plain down string rather than an error.
func (c *Client) Health(ctx context.Context) string {
	req, err := c.newRequest(ctx, http.MethodGet, "/v2/health", "", nil)
	if err != nil {
		return "down: " + err.Error()
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "down: " + err.Error()
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))

	if resp.StatusCode >= 300 {
		return fmt.Sprintf("down: status %d", resp.StatusCode)
	}
	return "up"
}

// Account fetches the caller's account record.
func (c *Client) Account(ctx context.Context, token string) (*Account, error) {
	var account Account
	if err := c.GetJSON(ctx, token, "/v2/accounts/me", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Catalog fetches the caller's catalog.
func (c *Client) Catalog(ctx context.Context, token string) (*Catalog, error) {
	var catalog Catalog
	if err := c.GetJSON(ctx, token, "/v2/catalogs/mine", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// AlbumsBySubtype lists a catalog's albums of the given subtype in
// service order.
func (c *Client) AlbumsBySubtype(ctx context.Context, token, catalogID, subtype string) ([]Album, error) {
	path := fmt.Sprintf("/v2/catalogs/%s/albums?subtype=%s", catalogID, url.QueryEscape(subtype))
	var resp albumsResponse
	if err := c.GetJSON(ctx, token, path, &resp); err != nil {
		return nil, err
	}
	return resp.Resources, nil
}
