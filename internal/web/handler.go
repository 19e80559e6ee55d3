package web

import (
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/service"
	"github.com/Izrekatel/Yatube/internal/transport/http/middleware"
)

const maxUploadMemory = 10 << 20

// Handler serves the server-rendered pages. Authentication here is
// session-based; the JSON API under /api keeps its own token auth.
type Handler struct {
	render   *Renderer
	sessions *SessionManager
	users    *service.UserService
	posts    *service.PostService
	comments *service.CommentService
	groups   *service.GroupService
	follows  *service.FollowService
	feeds    *service.FeedService
	media    *service.MediaService
	metrics  *middleware.Metrics
}

// Deps collects everything the web handler needs.
type Deps struct {
	Render   *Renderer
	Sessions *SessionManager
	Users    *service.UserService
	Posts    *service.PostService
	Comments *service.CommentService
	Groups   *service.GroupService
	Follows  *service.FollowService
	Feeds    *service.FeedService
	Media    *service.MediaService
	Metrics  *middleware.Metrics
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		render:   deps.Render,
		sessions: deps.Sessions,
		users:    deps.Users,
		posts:    deps.Posts,
		comments: deps.Comments,
		groups:   deps.Groups,
		follows:  deps.Follows,
		feeds:    deps.Feeds,
		media:    deps.Media,
		metrics:  deps.Metrics,
	}
}

// basePage carries the fields every template expects.
type basePage struct {
	Title   string
	Viewer  *model.User
	Flashes []string
}

// base assembles the shared page data. A stale session cookie whose user no
// longer exists renders as anonymous.
func (h *Handler) base(w http.ResponseWriter, r *http.Request, title string) basePage {
	page := basePage{Title: title}
	if id, ok := h.sessions.CurrentUserID(r); ok {
		user, err := h.users.GetByID(r.Context(), id)
		if err == nil {
			page.Viewer = user
		}
	}
	page.Flashes = h.sessions.Flashes(w, r)
	return page
}

// requireUser redirects anonymous visitors to the login page, preserving the
// requested path in the next parameter.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	id, ok := h.sessions.CurrentUserID(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/?next="+r.URL.Path, http.StatusFound)
		return nil, false
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/auth/login/?next="+r.URL.Path, http.StatusFound)
		return nil, false
	}
	return user, true
}

// NotFound renders the site's own 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := struct {
		basePage
	}{basePage: h.base(w, r, "Страница не найдена")}
	h.render.Render(w, http.StatusNotFound, "not_found.html", data)
}

func (h *Handler) serverError(w http.ResponseWriter, err error, op string) {
	log.WithError(err).Error(op)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func pageParam(r *http.Request) int {
	v := r.URL.Query().Get("page")
	if v == "" {
		return 1
	}
	page, err := strconv.Atoi(v)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// safeNext guards the post-login redirect against open redirects. Only
// site-local paths pass.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
