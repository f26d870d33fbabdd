// Package apiclient posts form submissions to the relay endpoints.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/footballnews/landing/internal/handler/dto"
)

// Relay paths relative to the base URL.
const (
	SubscribePath = "/api/subscribe"
	ContactPath   = "/api/contact"
)

// RequestIDHeader carries the per-submission correlation ID.
const RequestIDHeader = "X-Request-ID"

var (
	// ErrTransport means the relay could not be reached.
	ErrTransport = errors.New("relay unreachable")
	// ErrDecode means the relay answered with something other than a ProxyResponse.
	ErrDecode = errors.New("relay response is not JSON")
)

// Client talks to a running relay server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	newID      func() string
}

// New creates a Client for baseURL, e.g. "http://localhost:8080".
// A nil httpClient gets one with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		newID:      func() string { return ulid.Make().String() },
	}
}

// Subscribe posts an email to the subscribe relay.
func (c *Client) Subscribe(ctx context.Context, email string) (*dto.ProxyResponse, error) {
	return c.post(ctx, SubscribePath, dto.SubscribeRequest{Email: email})
}

// Contact posts a contact message to the contact relay.
func (c *Client) Contact(ctx context.Context, req dto.ContactRequest) (*dto.ProxyResponse, error) {
	return c.post(ctx, ContactPath, req)
}

// post sends payload and decodes the relay's answer whatever its status:
// failures are carried in the body, not the status code.
func (c *Client) post(ctx context.Context, path string, payload any) (*dto.ProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, c.newID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	var out dto.ProxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrDecode, resp.StatusCode, err)
	}
	return &out, nil
}
