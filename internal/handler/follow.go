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

// FollowHandler serves the /api/follow endpoints. Every operation is scoped
// to the authenticated user's own subscriptions.
type FollowHandler struct {
	followService *service.FollowService
	metrics       *middleware.Metrics
}

func NewFollowHandler(followService *service.FollowService, metrics *middleware.Metrics) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		metrics:       metrics,
	}
}

// List handles GET /api/follow. The search parameter narrows by followee
// username.
func (h *FollowHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	limit, offset := parseLimitOffset(r)
	search := r.URL.Query().Get("search")

	follows, err := h.followService.List(r.Context(), userID, search, limit, offset)
	if err != nil {
		log.WithError(err).Error("list follows handler")
		httputil.WriteInternalError(w, "Failed to list follows")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, follows)
}

// Create handles POST /api/follow
func (h *FollowHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Author == "" {
		httputil.WriteValidationError(w, map[string]string{"author": "Author is required"})
		return
	}

	follow, err := h.followService.Follow(r.Context(), userID, req.Author)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Author not found")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteValidationError(w, map[string]string{"author": "You cannot follow yourself"})
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteValidationError(w, map[string]string{"author": "You are already following this author"})
		default:
			log.WithError(err).Error("create follow handler")
			httputil.WriteInternalError(w, "Failed to follow")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.FollowRequests.Inc()
	}
	httputil.WriteJSON(w, http.StatusCreated, follow)
}
