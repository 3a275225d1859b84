package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inkwell/internal/httputil"
	"inkwell/internal/model"
	"inkwell/internal/service"
	"inkwell/internal/transport/http/middleware"
)

// PostHandler groups the blog post endpoints, public and owner-scoped.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List returns published posts with optional title search.
// GET /blog?q=&cursor=&limit=
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")

	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.postService.ListPublished(r.Context(), search, cursor, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Get returns one published post with its author join.
// GET /blog/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	post, err := h.postService.GetPublished(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Create makes a new post for the authenticated author.
// POST /blog/create
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired),
			errors.Is(err, model.ErrBodyRequired),
			errors.Is(err, model.ErrTitleTooLong):
			httputil.WriteBadRequest(w, err.Error())
		default:
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Update edits an owned post; publishing a draft is the same operation.
// PUT /blog/edit/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.postService.Update(r.Context(), postID, userID, &req); err != nil {
		writePostMutationError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post updated",
	})
}

// Delete removes an owned post and its engagement rows.
// DELETE /blog/delete/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.postService.Delete(r.Context(), postID, userID); err != nil {
		writePostMutationError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted",
	})
}

// Mine returns all of the caller's posts, drafts included.
// GET /blog/myblog
func (h *PostHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	posts, err := h.postService.ListMine(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Drafts returns the caller's unpublished posts.
// GET /blog/draft
func (h *PostHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	posts, err := h.postService.ListDrafts(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list drafts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// writePostMutationError maps owner-scoped mutation failures onto the
// status taxonomy: foreign post is 403, missing post is 404.
func writePostMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrPostNotFound):
		httputil.WriteNotFound(w, "Post not found")
	case errors.Is(err, model.ErrNotPostOwner):
		httputil.WriteForbidden(w, "Not the owner of this post")
	case errors.Is(err, model.ErrTitleRequired),
		errors.Is(err, model.ErrBodyRequired),
		errors.Is(err, model.ErrTitleTooLong):
		httputil.WriteBadRequest(w, err.Error())
	default:
		httputil.WriteInternalError(w, "Failed to update post")
	}
}
