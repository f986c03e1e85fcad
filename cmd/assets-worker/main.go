package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/arpitsinghofficial/videos-service/internal/config"
	"github.com/arpitsinghofficial/videos-service/internal/storage"
	"github.com/arpitsinghofficial/videos-service/internal/storage/postgres"
)

// AssetsWorker removes orphaned thumbnail files from the asset root:
// files whose video id stem no longer exists in the metadata store.
// Only meaningful for the filesystem storage strategy.
type AssetsWorker struct {
	storage  storage.Storage
	root     string
	interval time.Duration
	logger   *slog.Logger
}

func NewAssetsWorker(storage storage.Storage, root string, interval time.Duration) *AssetsWorker {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &AssetsWorker{
		storage:  storage,
		root:     root,
		interval: interval,
		logger:   logger,
	}
}

func (aw *AssetsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(aw.interval)
	defer ticker.Stop()

	aw.logger.Info("Assets worker started",
		"root", aw.root,
		"interval", aw.interval.String())

	// Run once immediately on startup
	aw.sweepOrphanedThumbnails(ctx)

	for {
		select {
		case <-ctx.Done():
			aw.logger.Info("Assets worker shutting down")
			return
		case <-ticker.C:
			aw.sweepOrphanedThumbnails(ctx)
		}
	}
}

func (aw *AssetsWorker) sweepOrphanedThumbnails(ctx context.Context) {
	startTime := time.Now()

	aw.logger.Info("Starting orphaned thumbnail sweep")

	ids, err := aw.storage.ListVideoIDs()
	if err != nil {
		aw.logger.Error("Failed to list video IDs", "error", err.Error())
		return
	}

	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	entries, err := os.ReadDir(aw.root)
	if err != nil {
		aw.logger.Error("Failed to read asset root", "error", err.Error())
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if _, ok := known[stem]; ok {
			continue
		}

		if err := os.Remove(filepath.Join(aw.root, name)); err != nil {
			aw.logger.Error("Failed to remove orphaned thumbnail",
				"file", name,
				"error", err.Error())
			continue
		}
		removed++
	}

	aw.logger.Info("Orphaned thumbnail sweep finished",
		"removed", removed,
		"duration", time.Since(startTime).String())
}

func main() {
	cfg := config.MustLoad()

	if cfg.Assets.Strategy != "filesystem" {
		log.Fatalf("assets worker only applies to the filesystem strategy, got %q", cfg.Assets.Strategy)
	}

	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	worker := NewAssetsWorker(storage, cfg.Assets.Root, 15*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go worker.Start(ctx)

	<-done
	cancel()
}
