// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch issues HTTP GET requests for the scraping pipeline and
// converts every network-level problem into a TransportError so callers
// never see a raw transport fault.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// TransportError covers network errors, timeouts, and non-2xx responses.
// StatusCode is zero when the request never produced a response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Page is a fetched HTML document.
type Page struct {
	// FinalURL is the URL after any redirects, used as the base for
	// resolving relative links found in the body.
	FinalURL string

	// StatusCode is the response status (always 2xx on success).
	StatusCode int

	// ContentType is the raw Content-Type header value.
	ContentType string

	// Body is the full response body as text.
	Body string
}

// Client wraps an *http.Client with the pipeline's request conventions:
// a per-client timeout, a User-Agent header, and transparent redirects.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *log.Logger
}

// NewClient builds a Client from the shared HTTP settings.
func NewClient(cfg types.HTTPConfig, logger *log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// Get fetches rawURL (with params encoded onto the query string when
// non-nil) and returns the document. Any network error, timeout, or
// non-2xx status comes back as a *TransportError.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*Page, error) {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL = rawURL + "?" + params.Encode()
	}

	c.logger.Debug("requesting page", "url", reqURL)

	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("reading body: %w", err)}
	}

	page := &Page{
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}
	c.logger.Debug("page fetched", "url", page.FinalURL, "status", page.StatusCode, "bytes", len(page.Body))
	return page, nil
}

// GetStream fetches rawURL and returns the raw response for streaming
// consumption. The caller owns resp.Body. Failures follow Get's contract.
func (c *Client) GetStream(ctx context.Context, rawURL string) (*http.Response, error) {
	c.logger.Debug("requesting stream", "url", rawURL)
	return c.do(ctx, rawURL)
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
