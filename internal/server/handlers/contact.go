package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	ierrors "github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/logfields"
	"github.com/inkwell-sites/inkwell/internal/mailer"
	"github.com/inkwell-sites/inkwell/internal/server/responses"
)

// contactRequest is the POST /contact body.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactHandlers relays contact form submissions to the configured mailbox.
type ContactHandlers struct {
	sender       mailer.Sender
	errorAdapter *ierrors.HTTPErrorAdapter
	logger       *slog.Logger
}

func NewContactHandlers(sender mailer.Sender, logger *slog.Logger) *ContactHandlers {
	return &ContactHandlers{
		sender:       sender,
		errorAdapter: ierrors.NewHTTPErrorAdapter(logger),
		logger:       logger,
	}
}

// HandleContact serves POST /contact.
func (h *ContactHandlers) HandleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, ierrors.ValidationError("invalid JSON payload"))
		return
	}

	if err := validateContact(req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	err := h.sender.Send(mailer.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Message,
	})
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	h.logger.Info("contact message relayed", logfields.Operation("contact"))
	_ = writeJSON(w, http.StatusOK, responses.ContactResponse{Status: "sent"})
}

func validateContact(req contactRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ierrors.ValidationFailed("name", "must not be empty")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return ierrors.ValidationFailed("email", "must not be empty")
	}
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return ierrors.ValidationFailed("email", "must be a valid address")
	}
	if strings.TrimSpace(req.Message) == "" {
		return ierrors.ValidationFailed("message", "must not be empty")
	}
	return nil
}
