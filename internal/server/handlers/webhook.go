package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	ierrors "github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/events"
	"github.com/inkwell-sites/inkwell/internal/eventstore"
	"github.com/inkwell-sites/inkwell/internal/logfields"
	"github.com/inkwell-sites/inkwell/internal/metrics"
	"github.com/inkwell-sites/inkwell/internal/server/responses"
)

// maxWebhookBody caps the payload size accepted from the webhook endpoint.
const maxWebhookBody = 1 << 20

// webhookPayload is the subset of the source's webhook body the handler cares
// about. Unknown fields pass through untouched into the stored payload.
type webhookPayload struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	VerificationToken string `json:"verification_token"`
	Entity            struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"entity"`
}

// WebhookHandlers receives change notifications from the content source and
// turns them into cache invalidations.
type WebhookHandlers struct {
	store        *eventstore.Store
	publisher    *events.Publisher
	invalidate   func()
	token        string
	errorAdapter *ierrors.HTTPErrorAdapter
	logger       *slog.Logger
	recorder     metrics.Recorder
}

func NewWebhookHandlers(store *eventstore.Store, publisher *events.Publisher, invalidate func(), token string, logger *slog.Logger, recorder metrics.Recorder) *WebhookHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &WebhookHandlers{
		store:        store,
		publisher:    publisher,
		invalidate:   invalidate,
		token:        token,
		errorAdapter: ierrors.NewHTTPErrorAdapter(logger),
		logger:       logger,
		recorder:     recorder,
	}
}

// HandleNotionWebhook serves POST /webhooks/notion. The initial subscription
// handshake carries a verification token, which is echoed back. Page
// lifecycle events flush the cache; everything else is acknowledged and
// ignored.
func (h *WebhookHandlers) HandleNotionWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.recorder.IncWebhookDelivery(metrics.ResultRejected)
		h.errorAdapter.WriteErrorResponse(w, ierrors.ValidationError("unreadable payload"))
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.recorder.IncWebhookDelivery(metrics.ResultRejected)
		h.errorAdapter.WriteErrorResponse(w, ierrors.ValidationError("invalid JSON payload").
			WithContext("content_type", r.Header.Get("Content-Type")))
		return
	}

	// Subscription handshake: echo the token so the source can confirm the
	// endpoint. No invalidation happens here.
	if payload.VerificationToken != "" {
		h.logger.Info("webhook verification handshake received")
		_ = writeJSON(w, http.StatusOK, responses.WebhookResponse{
			Status:            "verified",
			VerificationToken: payload.VerificationToken,
		})
		return
	}

	if h.token != "" && r.Header.Get("X-Webhook-Token") != h.token {
		h.recorder.IncWebhookDelivery(metrics.ResultRejected)
		h.errorAdapter.WriteErrorResponse(w,
			ierrors.New(ierrors.CategoryAuth, ierrors.SeverityWarning, "webhook token mismatch"))
		return
	}

	eventID := payload.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	ctx := r.Context()
	if err := h.store.Append(ctx, eventstore.Delivery{
		EventID:   eventID,
		EventType: payload.Type,
		PageID:    payload.Entity.ID,
		Payload:   body,
	}); err != nil {
		h.logger.Error("record webhook delivery", logfields.Error(err))
	}

	if !invalidatingEvent(payload.Type) {
		h.recorder.IncWebhookDelivery(metrics.ResultIgnored)
		h.logger.Info("webhook event ignored", logfields.EventType(payload.Type))
		_ = writeJSON(w, http.StatusOK, responses.WebhookResponse{Status: "ignored"})
		return
	}

	h.invalidate()
	h.recorder.IncWebhookDelivery(metrics.ResultAccepted)
	h.logger.Info("cache invalidated by webhook",
		logfields.EventType(payload.Type),
		logfields.PageID(payload.Entity.ID))

	h.publisher.PublishInvalidation(ctx, events.InvalidationEvent{
		EventType: payload.Type,
		PageID:    payload.Entity.ID,
	})

	_ = writeJSON(w, http.StatusOK, responses.WebhookResponse{Status: "invalidated"})
}

// invalidatingEvent reports whether the event type describes a page create,
// update, or delete.
func invalidatingEvent(eventType string) bool {
	if !strings.HasPrefix(eventType, "page.") {
		return false
	}
	switch {
	case strings.HasSuffix(eventType, ".created"),
		strings.HasSuffix(eventType, ".deleted"),
		strings.HasSuffix(eventType, ".undeleted"),
		strings.Contains(eventType, "updated"):
		return true
	}
	return false
}
