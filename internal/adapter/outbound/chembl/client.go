// Package chembl provides the single outbound HTTP client for the ChEMBL
// REST API. It is the gateway's only I/O boundary: every operation issues
// GET requests through it and every upstream failure is wrapped into a
// domain.UpstreamError here.
package chembl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

// DefaultBaseURL is the public ChEMBL data API root.
const DefaultBaseURL = "https://www.ebi.ac.uk/chembl/api/data"

const defaultUserAgent = "chembl-mcp-server/0.1.0"

// Request is one translated upstream query: a path relative to the API root
// plus its query parameters. Handlers construct it from validated arguments
// only.
type Request struct {
	Path  string
	Query url.Values
}

// Client issues GET requests against a fixed base URL with fixed headers.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

// New creates a Client. A nil httpClient falls back to http.DefaultClient;
// empty baseURL and userAgent fall back to the package defaults.
func New(httpClient *http.Client, baseURL, userAgent string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		client:    httpClient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		logger:    logger.With("component", "chembl_client"),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get executes a single upstream GET and returns the raw response body.
// Non-2xx responses and transport failures are wrapped into
// domain.UpstreamError; no retry is performed.
func (c *Client) Get(ctx context.Context, req Request) (json.RawMessage, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}
	log := c.logger.With(slog.String("url", fullURL))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		log.Error("Failed to create upstream request", slog.Any("error", err))
		return nil, &domain.UpstreamError{Message: err.Error()}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Error("Upstream request failed", slog.Any("error", err))
		return nil, &domain.UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read upstream response body", slog.Any("error", err))
		return nil, &domain.UpstreamError{Message: err.Error()}
	}

	log.Debug("Upstream response received", slog.Int("status_code", resp.StatusCode), slog.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// GetJSON executes Get and decodes the body into a generic JSON object, for
// operations that post-process the upstream payload.
func (c *Client) GetJSON(ctx context.Context, req Request) (map[string]any, error) {
	body, err := c.Get(ctx, req)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("invalid JSON from upstream: %v", err)}
	}
	return decoded, nil
}
