// Package api is a read-only client for the character catalog.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/artpar/rickdex/internal/core"
	"github.com/google/uuid"
)

// DefaultBaseURL is the public character endpoint.
const DefaultBaseURL = "https://rickandmortyapi.com/api/character/"

// DefaultUserAgent is sent when no other agent is configured.
const DefaultUserAgent = "rickdex"

// Client issues single best-effort GET requests against the catalog.
// It never retries or caches.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *log.Logger
}

// Option is a function that configures the Client.
type Option func(*Client)

// NewClient creates a new catalog client with the given options.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		logger:     log.New(os.Stderr, "[api] ", log.LstdFlags),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithBaseURL sets the character endpoint. A trailing slash is added if missing.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base == "" {
			return
		}
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		c.baseURL = base
	}
}

// WithTimeout sets an overall request timeout. Zero means none.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets a custom HTTP transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for failed lookups.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// BaseURL returns the configured character endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchAll returns the results of the first list page.
func (c *Client) FetchAll(ctx context.Context) ([]core.Character, error) {
	var page core.SearchResult
	if err := c.get(ctx, "fetch all", c.baseURL, &page); err != nil {
		c.logFailure(err)
		return nil, err
	}
	return page.Results, nil
}

// FetchByID returns the character with the given id. An unknown id yields a
// NetworkError carrying the server's status and message.
func (c *Client) FetchByID(ctx context.Context, id int) (*core.Character, error) {
	var character core.Character
	if err := c.get(ctx, "fetch by id", c.baseURL+strconv.Itoa(id), &character); err != nil {
		c.logFailure(err)
		return nil, err
	}
	return &character, nil
}

// FetchByName searches characters by name and returns the raw envelope.
// A 404 is how the catalog reports zero matches, so it comes back as an
// envelope without results rather than an error.
func (c *Client) FetchByName(ctx context.Context, name string) (*core.SearchResult, error) {
	endpoint := c.baseURL + "?" + url.Values{"name": {name}}.Encode()

	var result core.SearchResult
	if err := c.get(ctx, "fetch by name", endpoint, &result); err != nil {
		if err.StatusCode == http.StatusNotFound {
			return &core.SearchResult{Error: err.Message}, nil
		}
		c.logFailure(err)
		return nil, err
	}
	return &result, nil
}

func (c *Client) logFailure(err *core.NetworkError) {
	c.logger.Printf("request %s failed: %v", err.RequestID, err)
}

type statusError struct {
	message string
}

func (e *statusError) Error() string {
	return e.message
}

// get performs one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, op, endpoint string, out any) *core.NetworkError {
	requestID := uuid.New().String()

	status, err := c.do(ctx, requestID, endpoint, out)
	if err == nil {
		return nil
	}

	netErr := &core.NetworkError{Op: op, URL: endpoint, RequestID: requestID, StatusCode: status}
	var se *statusError
	if errors.As(err, &se) {
		netErr.Message = se.message
	} else {
		netErr.Err = err
	}
	return netErr
}

// do returns the response status, or zero when no response was received.
func (c *Client) do(ctx context.Context, requestID, endpoint string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &statusError{message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode body: %w", err)
	}
	return resp.StatusCode, nil
}

// errorMessage extracts the "error" field of an error-shaped body.
func errorMessage(body []byte) string {
	var shape struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &shape); err == nil && shape.Error != "" {
		return shape.Error
	}
	return strings.TrimSpace(string(body))
}
