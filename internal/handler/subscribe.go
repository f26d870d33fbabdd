package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/footballnews/landing/internal/handler/dto"
	"github.com/footballnews/landing/internal/metrics"
	"github.com/footballnews/landing/internal/middleware"
	"github.com/footballnews/landing/internal/upstream"
	"github.com/footballnews/landing/internal/validation"
)

// Subscribe relay messages.
const (
	msgInvalidEmail      = "Invalid email address"
	msgSubscribed        = "Successfully subscribed!"
	msgAlreadySubscribed = "You are already subscribed!"
	msgSubscribeFailed   = "Subscription failed"
	msgInvalidUpstream   = "Invalid response from email service"
)

// ContactCreator adds an email address to the mailing list upstream.
type ContactCreator interface {
	Configured() bool
	CreateContact(ctx context.Context, email string) (*upstream.BrevoResult, error)
}

// SubscribeHandler relays newsletter signups to Brevo.
type SubscribeHandler struct {
	creator ContactCreator
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewSubscribeHandler creates a new SubscribeHandler.
func NewSubscribeHandler(creator ContactCreator, recorder metrics.Recorder, logger *slog.Logger) *SubscribeHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SubscribeHandler{
		creator: creator,
		metrics: recorder,
		logger:  logger,
	}
}

// Subscribe handles POST /api/subscribe.
//
// An existing contact is reported as a success so that signing up twice is
// harmless for the visitor.
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req dto.SubscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Debug("subscribe_body_unreadable", "request_id", requestID, "error", err)
		req = dto.SubscribeRequest{}
	}

	if err := validation.Struct(req); err != nil {
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, dto.Fail(msgInvalidEmail))
		return
	}

	if !h.creator.Configured() {
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeConfig)
		h.logger.Error("BREVO_API_KEY not configured", "request_id", requestID)
		writeJSON(w, http.StatusInternalServerError, dto.Fail(msgServerConfig))
		return
	}

	start := time.Now()
	result, err := h.creator.CreateContact(r.Context(), req.Email)
	h.metrics.ObserveUpstreamDuration(metrics.RelaySubscribe, time.Since(start))

	switch {
	case errors.Is(err, upstream.ErrDecode):
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeUpstreamError)
		h.logger.Error("subscribe_invalid_upstream_body", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail(msgInvalidUpstream))
		return
	case err != nil:
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeUpstreamError)
		h.logger.Error("subscribe_relay_error", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Fail(msgServerError+": "+upstream.Cause(err)))
		return
	}

	h.logger.Debug("subscribe_upstream_response",
		"request_id", requestID,
		"status_code", result.StatusCode,
		"code", result.Code,
	)

	switch {
	case result.OK():
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeSuccess)
		h.logger.Info("subscribe_success", "request_id", requestID)
		writeJSON(w, http.StatusOK, dto.OK(msgSubscribed))
	case result.AlreadySubscribed():
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeDuplicate)
		h.logger.Info("subscribe_duplicate", "request_id", requestID)
		writeJSON(w, http.StatusOK, dto.OK(msgAlreadySubscribed))
	default:
		h.metrics.IncRelayRequest(metrics.RelaySubscribe, metrics.OutcomeRejected)
		h.logger.Error("subscribe_rejected",
			"request_id", requestID,
			"status_code", result.StatusCode,
			"upstream_message", result.Message,
		)
		status := result.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		errMsg := result.Message
		if errMsg == "" {
			errMsg = msgSubscribeFailed
		}
		writeJSON(w, status, dto.Fail(errMsg))
	}
}
