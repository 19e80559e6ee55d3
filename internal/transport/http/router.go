package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Izrekatel/Yatube/internal/cache"
	"github.com/Izrekatel/Yatube/internal/config"
	"github.com/Izrekatel/Yatube/internal/handler"
	"github.com/Izrekatel/Yatube/internal/storage"
	"github.com/Izrekatel/Yatube/internal/transport/http/middleware"
	"github.com/Izrekatel/Yatube/internal/web"
)

// RouterDeps collects everything the router mounts.
type RouterDeps struct {
	Config    *config.Config
	PageCache cache.PageCache
	Metrics   *middleware.Metrics

	Web      *web.Handler
	Auth     *handler.AuthHandler
	Posts    *handler.PostHandler
	Comments *handler.CommentHandler
	Groups   *handler.GroupHandler
	Follows  *handler.FollowHandler

	// LocalMedia is set when blobs live on disk and need serving.
	LocalMedia *storage.LocalStore
}

// NewRouter mounts the HTML pages, the JSON API and the operational
// endpoints on one chi router.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Count)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if deps.LocalMedia != nil {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(deps.LocalMedia.Dir())))
		r.Handle("/media/*", fs)
	}

	// Server-rendered pages. Only the front page goes through the page
	// cache; everything else is always rendered fresh.
	r.Group(func(r chi.Router) {
		r.With(middleware.CachePage(deps.PageCache, deps.Config.PageCacheTTL)).
			Get("/", deps.Web.Index)

		r.Get("/group/{slug}/", deps.Web.GroupPosts)
		r.Get("/profile/{username}/", deps.Web.Profile)
		r.Get("/profile/{username}/follow/", deps.Web.ProfileFollow)
		r.Post("/profile/{username}/follow/", deps.Web.ProfileFollow)
		r.Get("/profile/{username}/unfollow/", deps.Web.ProfileUnfollow)
		r.Post("/profile/{username}/unfollow/", deps.Web.ProfileUnfollow)

		r.Get("/posts/{id}/", deps.Web.PostDetail)
		r.Get("/posts/{id}/edit/", deps.Web.PostEdit)
		r.Post("/posts/{id}/edit/", deps.Web.PostEdit)
		r.Post("/posts/{id}/comment/", deps.Web.AddComment)

		r.Get("/create/", deps.Web.PostCreate)
		r.Post("/create/", deps.Web.PostCreate)

		r.Get("/follow/", deps.Web.FollowIndex)

		r.Get("/auth/login/", deps.Web.Login)
		r.Post("/auth/login/", deps.Web.Login)
		r.Get("/auth/signup/", deps.Web.Signup)
		r.Post("/auth/signup/", deps.Web.Signup)
		r.Get("/auth/logout/", deps.Web.Logout)
		r.Post("/auth/logout/", deps.Web.Logout)

		r.Get("/account/", deps.Web.Account)
		r.Get("/account/update/", deps.Web.AccountUpdate)
		r.Post("/account/update/", deps.Web.AccountUpdate)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", deps.Auth.Signup)
			r.Post("/token", deps.Auth.Token)
			r.Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
				r.Get("/me", deps.Auth.Me)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", deps.Posts.List)
			r.Get("/{post_id}", deps.Posts.Get)
			r.Get("/{post_id}/comments", deps.Comments.List)
			r.Get("/{post_id}/comments/{comment_id}", deps.Comments.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
				r.Post("/", deps.Posts.Create)
				r.Put("/{post_id}", deps.Posts.Update)
				r.Patch("/{post_id}", deps.Posts.Update)
				r.Delete("/{post_id}", deps.Posts.Delete)

				r.Post("/{post_id}/comments", deps.Comments.Create)
				r.Put("/{post_id}/comments/{comment_id}", deps.Comments.Update)
				r.Patch("/{post_id}/comments/{comment_id}", deps.Comments.Update)
				r.Delete("/{post_id}/comments/{comment_id}", deps.Comments.Delete)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", deps.Groups.List)
			r.Get("/{group_id}", deps.Groups.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
				r.Post("/", deps.Groups.Create)
			})
		})

		r.Route("/follow", func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
			r.Get("/", deps.Follows.List)
			r.Post("/", deps.Follows.Create)
		})
	})

	r.NotFound(deps.Web.NotFound)

	return r
}
