package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shinyyama/item-service/internal/config"
	"github.com/shinyyama/item-service/internal/db"
	"github.com/shinyyama/item-service/internal/logger"
	appmw "github.com/shinyyama/item-service/internal/middleware"
	"github.com/shinyyama/item-service/internal/server"
	"go.uber.org/zap"
)

// Set with -ldflags "-X main.gitSHA=... -X main.buildTime=...".
var (
	gitSHA    = "dev"
	buildTime = ""
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	zl.Info("store connected", zap.String("driver", cfg.StoreDriver))

	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProject)
	if err != nil {
		_ = repo.Close(context.Background())
		return err
	}

	srv := server.New(cfg, repo, zl, authMw, server.BuildInfo{SHA: gitSHA, Time: buildTime})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		_ = repo.Close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
