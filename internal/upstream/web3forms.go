package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ContactSubmission is a validated contact form entry.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// Web3FormsResult is the part of the Web3Forms reply the relay uses.
type Web3FormsResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type web3FormsPayload struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Web3FormsClient submits contact form entries to Web3Forms.
type Web3FormsClient struct {
	httpClient *http.Client
	endpoint   string
	accessKey  string
	subject    string
}

// NewWeb3FormsClient creates a Web3FormsClient. accessKey may be empty; Submit
// then fails with ErrNotConfigured without touching the network.
func NewWeb3FormsClient(httpClient *http.Client, endpoint, accessKey, subject string) *Web3FormsClient {
	return &Web3FormsClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		accessKey:  accessKey,
		subject:    subject,
	}
}

// Configured reports whether an access key is present.
func (c *Web3FormsClient) Configured() bool {
	return c.accessKey != ""
}

// Submit forwards one contact submission. The upstream HTTP status is not
// consulted; the decision is carried by the success flag in the body.
func (c *Web3FormsClient) Submit(ctx context.Context, sub ContactSubmission) (*Web3FormsResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(web3FormsPayload{
		AccessKey: c.accessKey,
		Subject:   c.subject,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal web3forms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create web3forms request: %w", err)
	}
	setJSONHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read web3forms response: %w", ErrTransport, err)
	}

	var result Web3FormsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrDecode, resp.StatusCode, err)
	}
	return &result, nil
}
