package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"qantora/auth"
	"qantora/db"
	"qantora/waitlist"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("bootstrap database pool", zap.Error(err))
	}
	defer pool.Close()

	waitlistRepo := waitlist.NewRepository(pool)
	waitlistSvc := waitlist.NewService(waitlistRepo)
	if !cfg.DemoMode {
		waitlistSvc = waitlistSvc.WithStrictFailures()
	}
	authSvc := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret)

	// Probe the schema up front so a missing table is visible in the logs,
	// but keep serving: submissions report the condition to users themselves.
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := waitlistRepo.Ready(probeCtx); err != nil {
		if errors.Is(err, waitlist.ErrTableMissing) {
			log.Warn("waitlist table missing; apply migrations before launch")
		} else {
			log.Warn("waitlist readiness probe", zap.Error(err))
		}
	}
	cancel()

	server := NewServer(log, waitlistSvc, waitlistRepo, authSvc)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("api listening", zap.String("addr", cfg.Addr), zap.Bool("demo_mode", cfg.DemoMode))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}
