// Package apiclient is a Go client for the CRM REST API.
//
// Reads (GET) are retried once after a fixed pause when the server answers
// 429 or the request fails at the network level. Writes are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

const (
	// DefaultTimeout bounds each HTTP attempt
	DefaultTimeout = 30 * time.Second

	// FallbackMessage is shown when the server gives no usable error message
	FallbackMessage = "Terjadi kesalahan. Silakan coba lagi."

	defaultRateLimitBackoff = 2 * time.Second
	defaultNetworkBackoff   = 1 * time.Second
)

// ErrInvalidID is returned before any request is made for ids below 1
var ErrInvalidID = errors.New("invalid ID")

// Error is a failed API call. Message is safe to show to end users.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Details    []models.FieldError
	// Err is the transport error for requests that got no response.
	Err error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client calls the CRM API rooted at a base URL such as http://localhost:8080/api
type Client struct {
	baseURL          string
	httpClient       *http.Client
	rateLimitBackoff time.Duration
	networkBackoff   time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBackoff overrides the pauses before retrying a rate-limited or failed read
func WithBackoff(rateLimited, network time.Duration) Option {
	return func(c *Client) {
		c.rateLimitBackoff = rateLimited
		c.networkBackoff = network
	}
}

// New creates a client for baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		httpClient:       &http.Client{Timeout: DefaultTimeout},
		rateLimitBackoff: defaultRateLimitBackoff,
		networkBackoff:   defaultNetworkBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one API call and returns the raw success body
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 2
	}

	for attempt := 1; ; attempt++ {
		data, status, err := c.send(ctx, method, target, payload)
		canRetry := attempt < attempts && ctx.Err() == nil

		if err != nil {
			if canRetry {
				if err := sleep(ctx, c.networkBackoff); err != nil {
					return nil, err
				}
				continue
			}
			return nil, &Error{Message: FallbackMessage, Err: err}
		}

		if status == http.StatusTooManyRequests && canRetry {
			if err := sleep(ctx, c.rateLimitBackoff); err != nil {
				return nil, err
			}
			continue
		}

		if status >= http.StatusBadRequest {
			return nil, parseError(status, data)
		}

		return data, nil
	}
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// parseError reads the {"error":{...}} body, falling back to FallbackMessage
func parseError(status int, data []byte) error {
	apiErr := &Error{StatusCode: status, Message: FallbackMessage}

	var body struct {
		Error struct {
			Code    string              `json:"code"`
			Message string              `json:"message"`
			Details []models.FieldError `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Details = body.Error.Details
		if msg := strings.TrimSpace(body.Error.Message); msg != "" {
			apiErr.Message = msg
		}
	}

	return apiErr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func checkID(id int64) error {
	if id < 1 {
		return ErrInvalidID
	}
	return nil
}
