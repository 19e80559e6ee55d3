package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/Izrekatel/Yatube/internal/httputil"
	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/service"
	"github.com/Izrekatel/Yatube/internal/transport/http/middleware"
)

// PostHandler serves the /api/posts endpoints.
type PostHandler struct {
	postService  *service.PostService
	mediaService *service.MediaService
}

func NewPostHandler(postService *service.PostService, mediaService *service.MediaService) *PostHandler {
	return &PostHandler{
		postService:  postService,
		mediaService: mediaService,
	}
}

// List handles GET /api/posts. Supports limit/offset pagination and
// filtering by group id.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)

	filter := model.PostFilter{}
	if groupParam := r.URL.Query().Get("group"); groupParam != "" {
		groupID, err := strconv.ParseInt(groupParam, 10, 64)
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid group id")
			return
		}
		filter.GroupID = &groupID
	}

	resp, err := h.postService.List(r.Context(), filter, limit, offset)
	if err != nil {
		log.WithError(err).Error("list posts handler")
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	image, ok := h.decodeImage(w, r, req.Image)
	if !ok {
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req.Text, req.Group, image)
	if err != nil {
		h.writePostError(w, err, "create post handler")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Get handles GET /api/posts/{post_id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		h.writePostError(w, err, "get post handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Update handles PUT and PATCH /api/posts/{post_id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	var req model.PostRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	// PATCH leaves any field absent from the body at its current value.
	// An explicit "group": null still detaches the post.
	if r.Method == http.MethodPatch {
		var supplied map[string]json.RawMessage
		if err := json.Unmarshal(body, &supplied); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}
		current, err := h.postService.GetByID(r.Context(), postID)
		if err != nil {
			h.writePostError(w, err, "patch post handler")
			return
		}
		if _, ok := supplied["text"]; !ok {
			req.Text = current.Text
		}
		if _, ok := supplied["group"]; !ok {
			req.Group = current.GroupID
		}
	}

	image, ok := h.decodeImage(w, r, req.Image)
	if !ok {
		return
	}

	post, err := h.postService.Update(r.Context(), postID, userID, req.Text, req.Group, image)
	if err != nil {
		h.writePostError(w, err, "update post handler")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{post_id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.postService.Delete(r.Context(), postID, userID); err != nil {
		h.writePostError(w, err, "delete post handler")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) decodeImage(w http.ResponseWriter, r *http.Request, encoded *string) (*model.UploadResult, bool) {
	if encoded == nil || *encoded == "" {
		return nil, true
	}
	image, err := h.mediaService.DecodePostImage(r.Context(), *encoded)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidBase64):
			httputil.WriteValidationError(w, map[string]string{"image": "Invalid base64 image data"})
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteValidationError(w, map[string]string{"image": "Unsupported image type"})
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteValidationError(w, map[string]string{"image": "Image is too large"})
		default:
			log.WithError(err).Error("decode post image")
			httputil.WriteInternalError(w, "Failed to process image")
		}
		return nil, false
	}
	return image, true
}

func (h *PostHandler) writePostError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, model.ErrPostNotFound):
		httputil.WriteNotFound(w, "Post not found")
	case errors.Is(err, model.ErrGroupNotFound):
		httputil.WriteValidationError(w, map[string]string{"group": "Group not found"})
	case errors.Is(err, model.ErrNotPostAuthor):
		httputil.WriteForbidden(w, "You are not the author of this post")
	case errors.Is(err, model.ErrTextRequired):
		httputil.WriteValidationError(w, map[string]string{"text": "Text is required"})
	case errors.Is(err, model.ErrTextTooLong):
		httputil.WriteValidationError(w, map[string]string{"text": "Text is too long"})
	default:
		log.WithError(err).Error(op)
		httputil.WriteInternalError(w, "Failed to process post")
	}
}

func parseLimitOffset(r *http.Request) (int, int) {
	limit := 0
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
