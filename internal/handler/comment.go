package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Izrekatel/Yatube/internal/httputil"
	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/service"
	"github.com/Izrekatel/Yatube/internal/transport/http/middleware"
)

// CommentHandler serves /api/posts/{post_id}/comments.
type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List handles GET /api/posts/{post_id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	limit, offset := parseLimitOffset(r)
	resp, err := h.commentService.ListByPost(r.Context(), postID, limit, offset)
	if err != nil {
		h.writeCommentError(w, err, "list comments handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/posts/{post_id}/comments. The parent post comes
// from the path, the author from the token.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, err := pathID(r, "post_id")
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), postID, userID, req.Text)
	if err != nil {
		h.writeCommentError(w, err, "create comment handler")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// Get handles GET /api/posts/{post_id}/comments/{comment_id}
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		httputil.WriteNotFound(w, "Comment not found")
		return
	}

	comment, err := h.commentService.GetByID(r.Context(), postID, commentID)
	if err != nil {
		h.writeCommentError(w, err, "get comment handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Update handles PUT and PATCH /api/posts/{post_id}/comments/{comment_id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, err := pathID(r, "post_id")
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		httputil.WriteNotFound(w, "Comment not found")
		return
	}

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), postID, commentID, userID, req.Text)
	if err != nil {
		h.writeCommentError(w, err, "update comment handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /api/posts/{post_id}/comments/{comment_id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, err := pathID(r, "post_id")
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		httputil.WriteNotFound(w, "Comment not found")
		return
	}

	if err := h.commentService.Delete(r.Context(), postID, commentID, userID); err != nil {
		h.writeCommentError(w, err, "delete comment handler")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) writeCommentError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, model.ErrPostNotFound):
		httputil.WriteNotFound(w, "Post not found")
	case errors.Is(err, model.ErrCommentNotFound):
		httputil.WriteNotFound(w, "Comment not found")
	case errors.Is(err, model.ErrNotCommentAuthor):
		httputil.WriteForbidden(w, "You are not the author of this comment")
	case errors.Is(err, model.ErrTextRequired):
		httputil.WriteValidationError(w, map[string]string{"text": "Text is required"})
	case errors.Is(err, model.ErrTextTooLong):
		httputil.WriteValidationError(w, map[string]string{"text": "Text is too long"})
	default:
		log.WithError(err).Error(op)
		httputil.WriteInternalError(w, "Failed to process comment")
	}
}
