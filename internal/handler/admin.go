package handler

import (
	"errors"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/model"
	"inkwell/internal/service"
	"inkwell/internal/transport/http/middleware"
)

// AdminHandler serves the moderation endpoints. Admin privilege is
// checked by middleware on every request, fresh from the store.
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats returns platform counts.
// GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// ListUsers returns all accounts.
// GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// ListPosts returns every post, drafts included.
// GET /admin/posts
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.adminService.ListPosts(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// DeletePost removes any post.
// DELETE /admin/posts/{id}
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, ok := pathID(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	if err := h.adminService.DeletePost(r.Context(), adminID, postID); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to delete post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted",
	})
}

// DeleteUser removes any account; self-deletion through this path is an
// invalid operation, distinct from insufficient privilege.
// DELETE /admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	userID, ok := pathID(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user id")
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), adminID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrSelfDeletion):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeInvalidOperation, "Admins cannot delete their own account")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			httputil.WriteInternalError(w, "Failed to delete user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted",
	})
}
