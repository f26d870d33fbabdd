package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/footballnews/landing/internal/handler/dto"
	"github.com/footballnews/landing/internal/metrics"
	"github.com/footballnews/landing/internal/middleware"
	"github.com/footballnews/landing/internal/upstream"
	"github.com/footballnews/landing/internal/validation"
)

// Contact relay messages.
const (
	msgContactRequired = "Name, email, and message are required"
	msgContactSent     = "Message sent successfully!"
	msgContactFailed   = "Failed to send message"
)

// ContactSender delivers contact submissions upstream.
type ContactSender interface {
	Configured() bool
	Submit(ctx context.Context, sub upstream.ContactSubmission) (*upstream.Web3FormsResult, error)
}

// ContactHandler relays the contact form to Web3Forms.
type ContactHandler struct {
	sender  ContactSender
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(sender ContactSender, recorder metrics.Recorder, logger *slog.Logger) *ContactHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ContactHandler{
		sender:  sender,
		metrics: recorder,
		logger:  logger,
	}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req dto.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Debug("contact_body_unreadable", "request_id", requestID, "error", err)
		req = dto.ContactRequest{}
	}

	if err := validation.Struct(req); err != nil {
		h.metrics.IncRelayRequest(metrics.RelayContact, metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, dto.Fail(msgContactRequired))
		return
	}

	if !h.sender.Configured() {
		h.metrics.IncRelayRequest(metrics.RelayContact, metrics.OutcomeConfig)
		h.logger.Error("WEB3FORMS_ACCESS_KEY not configured", "request_id", requestID)
		writeJSON(w, http.StatusInternalServerError, dto.Fail(msgServerConfig))
		return
	}

	start := time.Now()
	result, err := h.sender.Submit(r.Context(), upstream.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	h.metrics.ObserveUpstreamDuration(metrics.RelayContact, time.Since(start))

	if err != nil {
		h.metrics.IncRelayRequest(metrics.RelayContact, metrics.OutcomeUpstreamError)
		h.logger.Error("contact_relay_error", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail(msgServerError))
		return
	}

	if !result.Success {
		h.metrics.IncRelayRequest(metrics.RelayContact, metrics.OutcomeRejected)
		h.logger.Error("contact_rejected", "request_id", requestID, "upstream_message", result.Message)
		errMsg := result.Message
		if errMsg == "" {
			errMsg = msgContactFailed
		}
		writeJSON(w, http.StatusBadRequest, dto.Fail(errMsg))
		return
	}

	h.metrics.IncRelayRequest(metrics.RelayContact, metrics.OutcomeSuccess)
	h.logger.Info("contact_sent", "request_id", requestID)
	writeJSON(w, http.StatusOK, dto.OK(msgContactSent))
}
