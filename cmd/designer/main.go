package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"room-designer/internal/auth/repository"
	"room-designer/internal/auth/service"
	"room-designer/internal/common/config"
	"room-designer/internal/common/logger"
	"room-designer/internal/designer/app"
	"room-designer/internal/designer/session"
	"room-designer/internal/storage"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"go.uber.org/zap"
)

// ============================================================
// Room Designer Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "room-designer")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	db, err := storage.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		log.Fatal("open db", zap.String("path", cfg.Storage.DBPath), zap.Error(err))
	}
	defer db.Close()

	users := repository.New(db)
	if err := users.Init(ctx); err != nil {
		log.Fatal("init users", zap.Error(err))
	}

	// The sqlite backend shares the users database file.
	var blobs storage.BlobStore
	if cfg.Storage.Backend == "" || cfg.Storage.Backend == "sqlite" {
		blobs, err = storage.NewSQLite(ctx, db)
	} else {
		blobs, err = storage.Open(ctx, cfg.Storage)
		if err == nil {
			defer blobs.Close()
		}
	}
	if err != nil {
		log.Fatal("open blob store", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	sessions := session.NewRegistry(blobs, log)
	server := app.New(cfg, sessions, service.NewAuthenticator(users, log), log)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("starting room designer",
			zap.String("addr", addr),
			zap.String("env", cfg.Environment),
			zap.String("storage", cfg.Storage.Backend),
		)
		if err := server.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	sessions.Shutdown()
}
