package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Izrekatel/Yatube/internal/cache"
	"github.com/Izrekatel/Yatube/internal/config"
	"github.com/Izrekatel/Yatube/internal/database"
	"github.com/Izrekatel/Yatube/internal/email"
	"github.com/Izrekatel/Yatube/internal/handler"
	"github.com/Izrekatel/Yatube/internal/repository"
	"github.com/Izrekatel/Yatube/internal/service"
	"github.com/Izrekatel/Yatube/internal/storage"
	"github.com/Izrekatel/Yatube/internal/transport/http/middleware"
	"github.com/Izrekatel/Yatube/internal/web"
)

// Run wires the full application and serves until interrupted.
func Run() error {
	log.SetFormatter(&log.JSONFormatter{})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cfg); err != nil {
		return err
	}

	// Page cache: Redis when configured, process-local otherwise.
	var pageCache cache.PageCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisPageCache(cfg.RedisURL)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisCache.Ping(ctx)
		cancel()
		if err != nil {
			return err
		}
		defer redisCache.Close()
		pageCache = redisCache
		log.Info("page cache: redis")
	} else {
		pageCache = cache.NewMemoryPageCache()
		log.Info("page cache: in-memory")
	}

	// Blob storage: R2 when configured, local disk otherwise.
	var (
		store      storage.BlobStore
		localMedia *storage.LocalStore
	)
	if cfg.R2BucketName != "" {
		s3Store, err := storage.NewS3Store(context.Background(), cfg)
		if err != nil {
			return err
		}
		store = s3Store
		log.Info("blob storage: r2")
	} else {
		localMedia, err = storage.NewLocalStore(cfg.MediaDir)
		if err != nil {
			return err
		}
		store = localMedia
		log.WithField("dir", cfg.MediaDir).Info("blob storage: local")
	}

	// Email: SES when configured, log-only otherwise.
	var sender email.Sender
	if cfg.EmailFrom != "" && cfg.AWSRegion != "" {
		sesSender, err := email.NewSESSender(context.Background(), cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			return err
		}
		sender = sesSender
	} else {
		sender = email.LogSender{}
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	mediaService := service.NewMediaService(store)
	userService := service.NewUserService(userRepo, sender)
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	groupService := service.NewGroupService(groupRepo, userRepo)
	postService := service.NewPostService(postRepo, groupRepo, mediaService, pageCache)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo)

	metrics := middleware.InitMetrics()

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	webHandler := web.NewHandler(web.Deps{
		Render:   renderer,
		Sessions: web.NewSessionManager(cfg.SessionSecret),
		Users:    userService,
		Posts:    postService,
		Comments: commentService,
		Groups:   groupService,
		Follows:  followService,
		Feeds:    feedService,
		Media:    mediaService,
		Metrics:  metrics,
	})

	router := NewRouter(RouterDeps{
		Config:     cfg,
		PageCache:  pageCache,
		Metrics:    metrics,
		Web:        webHandler,
		Auth:       handler.NewAuthHandler(userService, authService),
		Posts:      handler.NewPostHandler(postService, mediaService),
		Comments:   handler.NewCommentHandler(commentService),
		Groups:     handler.NewGroupHandler(groupService),
		Follows:    handler.NewFollowHandler(followService, metrics),
		LocalMedia: localMedia,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	authService.StartTokenCleanup(cleanupCtx, time.Hour)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.ServerPort).Info("server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
