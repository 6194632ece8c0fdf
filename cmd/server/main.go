package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/post-review/config"
	"github.com/d60-Lab/post-review/internal/api"
	"github.com/d60-Lab/post-review/internal/api/handler"
	"github.com/d60-Lab/post-review/internal/repository"
	"github.com/d60-Lab/post-review/internal/service"
	"github.com/d60-Lab/post-review/pkg/database"
	"github.com/d60-Lab/post-review/pkg/logger"
	"github.com/d60-Lab/post-review/pkg/trace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Trace.Enabled {
		shutdown, err := trace.Init(ctx, "post-review", cfg.Trace.Endpoint)
		if err != nil {
			logger.Warn("trace init failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("init db failed", zap.Error(err))
		return
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	logRepo := repository.NewPostLogRepository(db)

	tokens := service.NewRedisTokenStore(rdb)
	authSvc := service.NewAuthService(userRepo, tokens, cfg.JWT.Secret, cfg.JWT.TTL)
	postSvc := service.NewPostService(db, postRepo, logRepo)

	h := handler.New(postSvc, authSvc)
	r := api.NewRouter(cfg, h, authSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
