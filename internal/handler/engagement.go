package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"inkwell/internal/httputil"
	"inkwell/internal/model"
	"inkwell/internal/service"
	"inkwell/internal/transport/http/middleware"
)

// EngagementHandler serves the like and save toggles.
type EngagementHandler struct {
	engagementService *service.EngagementService
}

func NewEngagementHandler(engagementService *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// Like toggles a like for the resolved actor. Mounted behind optional
// auth: an authenticated caller is the actor even if the body also
// carries a guest id; an unauthenticated caller must supply one.
// POST /blog/{id}/like
func (h *EngagementHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	// The body is optional for authenticated callers.
	var req model.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	actor := resolveActor(r, req.GuestID)

	resp, err := h.engagementService.ToggleLike(r.Context(), postID, actor)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrGuestIDRequired):
			httputil.WriteBadRequest(w, "guest_id is required when unauthenticated")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Save toggles a bookmark for the authenticated caller. Mounted behind
// required auth; guests cannot save.
// POST /blog/{id}/save
func (h *EngagementHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, ok := pathID(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	resp, err := h.engagementService.ToggleSave(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to toggle save")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// resolveActor computes the request's identity: an authenticated user
// when the optional-auth middleware verified a credential, otherwise a
// guest when the client supplied an identifier, otherwise anonymous.
func resolveActor(r *http.Request, guestID string) model.Actor {
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return model.UserActor(userID)
	}
	if g := strings.TrimSpace(guestID); g != "" {
		return model.GuestActor(g)
	}
	return model.AnonymousActor()
}
