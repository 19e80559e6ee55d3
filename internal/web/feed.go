package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Izrekatel/Yatube/internal/model"
)

// Index renders the global feed.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feeds.Global(r.Context(), pageParam(r))
	if err != nil {
		h.serverError(w, err, "index page")
		return
	}

	data := struct {
		basePage
		Feed *model.FeedPage
	}{
		basePage: h.base(w, r, "Последние обновления"),
		Feed:     feed,
	}
	h.render.Render(w, http.StatusOK, "index.html", data)
}

// GroupPosts renders a community's feed.
func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	group, feed, err := h.feeds.Group(r.Context(), slug, pageParam(r))
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, err, "group page")
		return
	}

	data := struct {
		basePage
		Group *model.Group
		Feed  *model.FeedPage
	}{
		basePage: h.base(w, r, "Записи сообщества "+group.Title),
		Group:    group,
		Feed:     feed,
	}
	h.render.Render(w, http.StatusOK, "group_posts.html", data)
}

// Profile renders an author's page with their posts and the follow control.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	base := h.base(w, r, "Профиль "+username)

	var viewerID *int64
	if base.Viewer != nil {
		viewerID = &base.Viewer.ID
	}

	profile, err := h.feeds.Profile(r.Context(), username, pageParam(r), viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, err, "profile page")
		return
	}

	data := struct {
		basePage
		Profile *model.ProfilePage
		IsSelf  bool
	}{
		basePage: base,
		Profile:  profile,
		IsSelf:   base.Viewer != nil && base.Viewer.ID == profile.Author.ID,
	}
	h.render.Render(w, http.StatusOK, "profile.html", data)
}

// FollowIndex renders the feed of followed authors.
func (h *Handler) FollowIndex(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	feed, err := h.feeds.Subscriptions(r.Context(), viewer.ID, pageParam(r))
	if err != nil {
		h.serverError(w, err, "follow page")
		return
	}

	data := struct {
		basePage
		Feed *model.FeedPage
	}{
		basePage: h.base(w, r, "Избранные авторы"),
		Feed:     feed,
	}
	h.render.Render(w, http.StatusOK, "follow.html", data)
}

// ProfileFollow subscribes the viewer to the author and returns to the
// profile. Repeating the action or targeting yourself changes nothing.
func (h *Handler) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	username := chi.URLParam(r, "username")

	_, err := h.follows.Follow(r.Context(), viewer.ID, username)
	switch {
	case err == nil:
		if h.metrics != nil {
			h.metrics.FollowRequests.Inc()
		}
	case errors.Is(err, model.ErrUserNotFound):
		h.NotFound(w, r)
		return
	case errors.Is(err, model.ErrAlreadyFollowing), errors.Is(err, model.ErrCannotFollowSelf):
		// Toggled intent is already satisfied, fall through to redirect.
	default:
		h.serverError(w, err, "profile follow")
		return
	}

	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}

// ProfileUnfollow removes the subscription and returns to the profile.
func (h *Handler) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	username := chi.URLParam(r, "username")

	err := h.follows.Unfollow(r.Context(), viewer.ID, username)
	switch {
	case err == nil:
		if h.metrics != nil {
			h.metrics.UnfollowRequests.Inc()
		}
	case errors.Is(err, model.ErrUserNotFound):
		h.NotFound(w, r)
		return
	case errors.Is(err, model.ErrNotFollowing):
		// Nothing to remove, the desired state already holds.
	default:
		h.serverError(w, err, "profile unfollow")
		return
	}

	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}
