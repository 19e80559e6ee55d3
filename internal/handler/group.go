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

// GroupHandler serves the /api/groups endpoints. Groups are read-only for
// regular users; creation is reserved for staff.
type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// List handles GET /api/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		log.WithError(err).Error("list groups handler")
		httputil.WriteInternalError(w, "Failed to list groups")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groups)
}

// Get handles GET /api/groups/{group_id}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "group_id")
	if err != nil {
		httputil.WriteNotFound(w, "Group not found")
		return
	}

	group, err := h.groupService.GetByID(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			httputil.WriteNotFound(w, "Group not found")
			return
		}
		log.WithError(err).Error("get group handler")
		httputil.WriteInternalError(w, "Failed to get group")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, group)
}

// Create handles POST /api/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	group, err := h.groupService.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrStaffOnly):
			httputil.WriteForbidden(w, "Only staff can create groups")
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteValidationError(w, map[string]string{"title": "Title is required"})
		case errors.Is(err, model.ErrSlugTaken):
			httputil.WriteValidationError(w, map[string]string{"slug": "A group with this slug already exists"})
		default:
			log.WithError(err).Error("create group handler")
			httputil.WriteInternalError(w, "Failed to create group")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, group)
}
