package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/baitolink/backend/internal/config"
	"github.com/baitolink/backend/internal/infra"
	"github.com/baitolink/backend/internal/qrsign"
	"github.com/baitolink/backend/internal/score"
	"github.com/baitolink/backend/internal/server"
	"github.com/baitolink/backend/internal/sweeper"
)

func main() {
	config.LoadDotEnvUp(8)

	logger, _ := zap.NewProduction()
	if os.Getenv("APP_ENV") == "local" {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	signer, err := qrsign.NewSigner(cfg.QRSigningSecret)
	if err != nil {
		if cfg.AppEnv != "local" {
			logger.Fatal("qr signer init failed", zap.Error(err))
		}
		// Local dev only: an ephemeral key means QR codes die with the process.
		signer, _ = qrsign.NewSigner(config.LocalDevQRSecret)
		logger.Warn("QR_SIGNING_SECRET unset, using ephemeral local key")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	infraDeps, err := infra.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("infra init failed", zap.Error(err))
	}
	defer infraDeps.Close()

	sw := sweeper.New(logger, infraDeps.PG, score.NewLedger())
	if err := sw.Start(cfg.UnfreezeSweepSpec); err != nil {
		logger.Fatal("sweeper start failed", zap.Error(err))
	}
	defer sw.Stop()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(cfg, infraDeps, signer, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
