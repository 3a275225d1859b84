package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"inkwell/internal/httputil"
	"inkwell/internal/model"
	"inkwell/internal/ratelimit"
	"inkwell/internal/service"
)

// ContactHandler forwards contact-form submissions to the mail relay.
type ContactHandler struct {
	mailer  service.Mailer
	limiter *ratelimit.Limiter
}

func NewContactHandler(mailer service.Mailer, limiter *ratelimit.Limiter) *ContactHandler {
	return &ContactHandler{mailer: mailer, limiter: limiter}
}

// Submit validates and relays a contact message.
// POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ok, err := h.limiter.Allow(r.Context(), "contact", clientIP(r))
	if err != nil {
		httputil.WriteInternalError(w, "Rate limit check failed")
		return
	}
	if !ok {
		httputil.WriteTooManyRequests(w, "Too many requests, try again later")
		return
	}

	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httputil.WriteBadRequest(w, "Name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httputil.WriteBadRequest(w, "Invalid email address")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httputil.WriteBadRequest(w, "Message is required")
		return
	}

	if err := h.mailer.SendContact(&req); err != nil {
		if errors.Is(err, model.ErrUpstream) {
			httputil.WriteBadGateway(w, "Mail relay unavailable")
			return
		}
		httputil.WriteInternalError(w, "Failed to send message")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Message sent",
	})
}
