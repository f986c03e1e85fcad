package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/arpitsinghofficial/videos-service/internal/blobstore"
	"github.com/arpitsinghofficial/videos-service/internal/cache"
	"github.com/arpitsinghofficial/videos-service/internal/config"
	"github.com/arpitsinghofficial/videos-service/internal/events"
	"github.com/arpitsinghofficial/videos-service/internal/http/handlers/thumbnails"
	"github.com/arpitsinghofficial/videos-service/internal/http/handlers/users"
	"github.com/arpitsinghofficial/videos-service/internal/http/handlers/videos"
	wsHandler "github.com/arpitsinghofficial/videos-service/internal/http/handlers/websocket"
	"github.com/arpitsinghofficial/videos-service/internal/http/middleware"
	"github.com/arpitsinghofficial/videos-service/internal/storage/postgres"
	wsHub "github.com/arpitsinghofficial/videos-service/internal/websocket"
)

func main() {
	// load config
	cfg := config.MustLoad()

	// database setup
	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	slog.Info("Connected to Postgres database")

	// redis setup (rate limiting + video record cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	videoCache := cache.NewVideoCache(storage, redisClient)
	rateLimits := middleware.NewRateLimitConfig(redisClient)

	// thumbnail storage strategy; exactly one is active per deployment
	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize thumbnail store:", err)
	}
	slog.Info("Thumbnail storage configured", slog.String("strategy", cfg.Assets.Strategy))

	// websocket hub for owner notifications
	hub := wsHub.NewHub()
	go hub.Run()
	publisher := events.NewEventPublisher(hub)

	thumbnailHandlers := thumbnails.NewHandlers(storage, videoCache, blobs, publisher, cfg.Assets.MaxUploadBytes)
	authRequired := middleware.AuthMiddleware(cfg.JWTSecret)

	// setup server
	router := http.NewServeMux()

	router.HandleFunc("POST /signup", users.SignUp(storage))
	router.HandleFunc("POST /login", users.Login(storage, cfg.JWTSecret))

	router.Handle("POST /api/videos", authRequired(rateLimits.RateLimitedHandler("videos", videos.CreateVideo(storage))))
	router.Handle("GET /api/videos", authRequired(videos.ListVideos(storage)))
	router.HandleFunc("GET /api/videos/{videoId}", videos.GetVideo(videoCache))

	router.Handle("POST /api/thumbnails/{videoId}", authRequired(rateLimits.RateLimitedHandler("thumbnails", thumbnailHandlers.Upload())))

	// Retrieval through the service exists only when the bytes live in
	// this process. Other strategies resolve outside the service.
	if retriever, ok := blobs.(blobstore.Retriever); ok {
		router.HandleFunc("GET /api/thumbnails/{videoId}", thumbnailHandlers.Get(retriever))
	}

	// Filesystem references resolve through this static route.
	if fsStore, ok := blobs.(*blobstore.FilesystemStore); ok {
		router.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(fsStore.Root()))))
	}

	router.HandleFunc("GET /ws", wsHandler.WebSocketHandler(hub, cfg.JWTSecret))

	server := http.Server{
		Addr:    cfg.HTTPServer.Address,
		Handler: router,
	}

	log.Println("server started on", cfg.HTTPServer.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %s", err)
		}
	}()

	<-done

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		slog.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
		return
	}

	slog.Info("Server stopped")
}

// newBlobStore selects the configured thumbnail storage strategy.
func newBlobStore(cfg *config.Config) (blobstore.Store, error) {
	baseURL := cfg.HTTPServer.PublicBaseURL

	switch cfg.Assets.Strategy {
	case "filesystem":
		return blobstore.NewFilesystemStore(cfg.Assets.Root, baseURL)
	case "inline":
		return blobstore.NewInlineStore(), nil
	case "memory":
		return blobstore.NewMemoryStore(baseURL), nil
	case "object":
		return blobstore.NewObjectStore(cfg)
	default:
		return nil, fmt.Errorf("unknown asset strategy %q", cfg.Assets.Strategy)
	}
}
