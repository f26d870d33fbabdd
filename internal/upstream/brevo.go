package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// BrevoAPIKeyHeader carries the Brevo credential.
const BrevoAPIKeyHeader = "api-key"

// brevoDuplicateMarker is the wording Brevo uses for an existing contact.
// Brevo documents no stable error code for this case, so the relay keys off
// the message text and must be revisited if Brevo rewords it.
const brevoDuplicateMarker = "already exists"

// BrevoResult describes a create-contact reply. Body fields are empty when
// Brevo answered with an empty body.
type BrevoResult struct {
	StatusCode int
	Code       string
	Message    string
	RawBody    string
}

// OK reports whether Brevo accepted the contact.
func (r *BrevoResult) OK() bool {
	return (r.StatusCode >= 200 && r.StatusCode < 300) || r.StatusCode == http.StatusCreated
}

// AlreadySubscribed reports whether Brevo rejected the contact because it exists.
func (r *BrevoResult) AlreadySubscribed() bool {
	return r.StatusCode == http.StatusBadRequest && IsDuplicateContactMessage(r.Message)
}

// IsDuplicateContactMessage reports whether a Brevo error message means the
// contact is already on file.
func IsDuplicateContactMessage(msg string) bool {
	return strings.Contains(msg, brevoDuplicateMarker)
}

type brevoPayload struct {
	Email         string  `json:"email"`
	ListIDs       []int64 `json:"listIds"`
	UpdateEnabled bool    `json:"updateEnabled"`
}

type brevoErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BrevoClient adds contacts to a Brevo mailing list.
type BrevoClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	listID     int64
}

// NewBrevoClient creates a BrevoClient. apiKey may be empty; CreateContact
// then fails with ErrNotConfigured without touching the network.
func NewBrevoClient(httpClient *http.Client, endpoint, apiKey string, listID int64) *BrevoClient {
	return &BrevoClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		listID:     listID,
	}
}

// Configured reports whether an API key is present.
func (c *BrevoClient) Configured() bool {
	return c.apiKey != ""
}

// CreateContact adds email to the configured list, updating it if it exists.
// Any HTTP status is returned as a result; only transport failures and
// non-JSON bodies are errors.
func (c *BrevoClient) CreateContact(ctx context.Context, email string) (*BrevoResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(brevoPayload{
		Email:         email,
		ListIDs:       []int64{c.listID},
		UpdateEnabled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create brevo request: %w", err)
	}
	setJSONHeaders(req)
	req.Header.Set(BrevoAPIKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read brevo response: %w", ErrTransport, err)
	}

	result := &BrevoResult{
		StatusCode: resp.StatusCode,
		RawBody:    string(raw),
	}
	if len(raw) == 0 {
		return result, nil
	}
	if !json.Valid(raw) {
		return result, fmt.Errorf("%w: status %d", ErrDecode, resp.StatusCode)
	}

	// Non-object bodies are valid JSON without error details.
	var details brevoErrorBody
	if err := json.Unmarshal(raw, &details); err == nil {
		result.Code = details.Code
		result.Message = details.Message
	}
	return result, nil
}
