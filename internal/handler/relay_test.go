package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footballnews/landing/internal/handler/dto"
	"github.com/footballnews/landing/internal/metrics"
	"github.com/footballnews/landing/internal/upstream"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSender struct {
	configured bool
	result     *upstream.Web3FormsResult
	err        error
	calls      []upstream.ContactSubmission
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) Submit(ctx context.Context, sub upstream.ContactSubmission) (*upstream.Web3FormsResult, error) {
	f.calls = append(f.calls, sub)
	return f.result, f.err
}

type fakeCreator struct {
	configured bool
	result     *upstream.BrevoResult
	err        error
	emails     []string
}

func (f *fakeCreator) Configured() bool { return f.configured }

func (f *fakeCreator) CreateContact(ctx context.Context, email string) (*upstream.BrevoResult, error) {
	f.emails = append(f.emails, email)
	return f.result, f.err
}

func doPost(t *testing.T, h http.HandlerFunc, body string) (int, dto.ProxyResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp dto.ProxyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestContactHandler_Submit(t *testing.T) {
	validBody := `{"name":"Ada","email":"ada@example.com","message":"Great site"}`

	tests := []struct {
		name       string
		body       string
		sender     *fakeSender
		wantStatus int
		wantResp   dto.ProxyResponse
		wantCalls  int
		wantCount  string
	}{
		{
			name:       "empty name",
			body:       `{"name":"","email":"a@b.com","message":"hi"}`,
			sender:     &fakeSender{configured: true},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Name, email, and message are required"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "missing message",
			body:       `{"name":"Ada","email":"a@b.com"}`,
			sender:     &fakeSender{configured: true},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Name, email, and message are required"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			sender:     &fakeSender{configured: true},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Name, email, and message are required"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "validation runs before credential check",
			body:       `{}`,
			sender:     &fakeSender{configured: false},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Name, email, and message are required"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "missing credential",
			body:       validBody,
			sender:     &fakeSender{configured: false},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Server configuration error"),
			wantCount:  metrics.OutcomeConfig,
		},
		{
			name:       "upstream success",
			body:       validBody,
			sender:     &fakeSender{configured: true, result: &upstream.Web3FormsResult{Success: true}},
			wantStatus: http.StatusOK,
			wantResp:   dto.OK("Message sent successfully!"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeSuccess,
		},
		{
			name:       "upstream failure with message",
			body:       validBody,
			sender:     &fakeSender{configured: true, result: &upstream.Web3FormsResult{Message: "Invalid access key"}},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Invalid access key"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeRejected,
		},
		{
			name:       "upstream failure without message",
			body:       validBody,
			sender:     &fakeSender{configured: true, result: &upstream.Web3FormsResult{}},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Failed to send message"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeRejected,
		},
		{
			name:       "transport error",
			body:       validBody,
			sender:     &fakeSender{configured: true, err: fmt.Errorf("%w: connection reset", upstream.ErrTransport)},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Server error"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeUpstreamError,
		},
		{
			name:       "decode error",
			body:       validBody,
			sender:     &fakeSender{configured: true, err: upstream.ErrDecode},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Server error"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeUpstreamError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := metrics.NewInMemory()
			h := NewContactHandler(tt.sender, rec, discardLogger())

			status, resp := doPost(t, h.Submit, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantResp, resp)
			assert.Len(t, tt.sender.calls, tt.wantCalls)
			assert.Equal(t, uint64(1), rec.Count(metrics.RelayContact, tt.wantCount))
		})
	}
}

func TestContactHandler_ForwardsFields(t *testing.T) {
	sender := &fakeSender{configured: true, result: &upstream.Web3FormsResult{Success: true}}
	h := NewContactHandler(sender, nil, discardLogger())

	doPost(t, h.Submit, `{"name":"Ada","email":"ada@example.com","message":"Line one\nLine two"}`)

	require.Len(t, sender.calls, 1)
	assert.Equal(t, upstream.ContactSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Line one\nLine two",
	}, sender.calls[0])
}

func TestSubscribeHandler_Subscribe(t *testing.T) {
	validBody := `{"email":"fan@example.com"}`
	transportErr := fmt.Errorf("%w: %w", upstream.ErrTransport, &url.Error{
		Op:  "Post",
		URL: "https://api.brevo.com/v3/contacts",
		Err: errors.New("dial tcp: lookup api.brevo.com: no such host"),
	})

	tests := []struct {
		name       string
		body       string
		creator    *fakeCreator
		wantStatus int
		wantResp   dto.ProxyResponse
		wantCalls  int
		wantCount  string
	}{
		{
			name:       "not an email",
			body:       `{"email":"not-an-email"}`,
			creator:    &fakeCreator{configured: true},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Invalid email address"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "missing email",
			body:       `{}`,
			creator:    &fakeCreator{configured: true},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Invalid email address"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "empty body",
			body:       ``,
			creator:    &fakeCreator{configured: true},
			wantStatus: http.StatusBadRequest,
			wantResp:   dto.Fail("Invalid email address"),
			wantCount:  metrics.OutcomeInvalid,
		},
		{
			name:       "missing credential",
			body:       validBody,
			creator:    &fakeCreator{configured: false},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Server configuration error"),
			wantCount:  metrics.OutcomeConfig,
		},
		{
			name:       "created",
			body:       validBody,
			creator:    &fakeCreator{configured: true, result: &upstream.BrevoResult{StatusCode: http.StatusCreated}},
			wantStatus: http.StatusOK,
			wantResp:   dto.OK("Successfully subscribed!"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeSuccess,
		},
		{
			name:       "updated existing contact",
			body:       validBody,
			creator:    &fakeCreator{configured: true, result: &upstream.BrevoResult{StatusCode: http.StatusNoContent}},
			wantStatus: http.StatusOK,
			wantResp:   dto.OK("Successfully subscribed!"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeSuccess,
		},
		{
			name: "already exists",
			body: validBody,
			creator: &fakeCreator{configured: true, result: &upstream.BrevoResult{
				StatusCode: http.StatusBadRequest,
				Message:    "Contact already exists",
			}},
			wantStatus: http.StatusOK,
			wantResp:   dto.OK("You are already subscribed!"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeDuplicate,
		},
		{
			name: "already exists wording on another status",
			body: validBody,
			creator: &fakeCreator{configured: true, result: &upstream.BrevoResult{
				StatusCode: http.StatusConflict,
				Message:    "Contact already exists",
			}},
			wantStatus: http.StatusConflict,
			wantResp:   dto.Fail("Contact already exists"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeRejected,
		},
		{
			name: "upstream rejection mirrors status",
			body: validBody,
			creator: &fakeCreator{configured: true, result: &upstream.BrevoResult{
				StatusCode: http.StatusUnauthorized,
				Message:    "Key not found",
			}},
			wantStatus: http.StatusUnauthorized,
			wantResp:   dto.Fail("Key not found"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeRejected,
		},
		{
			name:       "upstream rejection without message",
			body:       validBody,
			creator:    &fakeCreator{configured: true, result: &upstream.BrevoResult{StatusCode: http.StatusBadGateway}},
			wantStatus: http.StatusBadGateway,
			wantResp:   dto.Fail("Subscription failed"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeRejected,
		},
		{
			name:       "zero status falls back to 500",
			body:       validBody,
			creator:    &fakeCreator{configured: true, result: &upstream.BrevoResult{}},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Subscription failed"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeRejected,
		},
		{
			name:       "invalid upstream body",
			body:       validBody,
			creator:    &fakeCreator{configured: true, err: fmt.Errorf("%w: status 502", upstream.ErrDecode)},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Invalid response from email service"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeUpstreamError,
		},
		{
			name:       "transport error",
			body:       validBody,
			creator:    &fakeCreator{configured: true, err: transportErr},
			wantStatus: http.StatusInternalServerError,
			wantResp:   dto.Fail("Server error: dial tcp: lookup api.brevo.com: no such host"),
			wantCalls:  1,
			wantCount:  metrics.OutcomeUpstreamError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := metrics.NewInMemory()
			h := NewSubscribeHandler(tt.creator, rec, discardLogger())

			status, resp := doPost(t, h.Subscribe, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantResp, resp)
			assert.Len(t, tt.creator.emails, tt.wantCalls)
			assert.Equal(t, uint64(1), rec.Count(metrics.RelaySubscribe, tt.wantCount))
		})
	}
}

func TestSubscribeHandler_WithBrevoClient(t *testing.T) {
	// Brevo answers 201 with an empty body for new contacts.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := upstream.NewBrevoClient(srv.Client(), srv.URL, "xkeysib-test", 8)
	h := NewSubscribeHandler(client, nil, discardLogger())

	status, resp := doPost(t, h.Subscribe, `{"email":"fan@example.com"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully subscribed!", resp.Message)
}

func TestContactHandler_WithWeb3FormsClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "w3f-test", body["access_key"])
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := upstream.NewWeb3FormsClient(srv.Client(), srv.URL, "w3f-test", "New Contact Form Submission from Football News")
	h := NewContactHandler(client, nil, discardLogger())

	status, resp := doPost(t, h.Submit, `{"name":"Ada","email":"ada@example.com","message":"hi"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, dto.OK("Message sent successfully!"), resp)
}
