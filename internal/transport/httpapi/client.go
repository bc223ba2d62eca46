package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
)

// DefaultClientTimeout bounds a single API call.
const DefaultClientTimeout = 30 * time.Second

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("account api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("account api returned %d: %s", e.StatusCode, e.Message)
}

// ErrUnauthorized matches a StatusError with status 401 via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// Is reports 401 responses as ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client is a source.Source backed by the REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ source.Source = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll implements source.Fetcher.
func (c *Client) FetchAll(ctx context.Context) ([]account.Account, error) {
	return c.list(ctx, false)
}

// Refresh implements source.Fetcher and asks the server to bypass its caches.
func (c *Client) Refresh(ctx context.Context) ([]account.Account, error) {
	return c.list(ctx, true)
}

func (c *Client) list(ctx context.Context, refresh bool) ([]account.Account, error) {
	path := "/api/accounts"
	if refresh {
		path += "?refresh=true"
	}

	var resp AccountsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// UpdateMany implements source.Updater.
func (c *Client) UpdateMany(ctx context.Context, ids []string) ([]string, error) {
	var resp UpdateResponse
	if err := c.do(ctx, http.MethodPost, "/api/accounts/update", UpdateRequest{IDs: ids}, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if tid := logging.TraceIDFromContext(ctx); tid != "" {
		req.Header.Set(HeaderRequestID, tid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
