package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"room-designer/internal/common/config"
	"room-designer/internal/common/logger"
	"room-designer/internal/gateway/handlers"
	"room-designer/internal/gateway/proxy"

	"go.uber.org/zap"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "api-gateway")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	upstream := proxy.New(cfg.DesignerURL, time.Duration(cfg.WriteTimeout)*time.Second, log)
	app := handlers.NewApp(cfg, upstream, log)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("starting api gateway",
			zap.String("addr", addr),
			zap.String("env", cfg.Environment),
			zap.String("designer", cfg.DesignerURL),
		)
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
}
