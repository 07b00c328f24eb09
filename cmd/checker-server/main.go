package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/oscarsebastian/jup-airdrop-checker/internal/checker"
	checkerserver "github.com/oscarsebastian/jup-airdrop-checker/internal/checker-server"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/config"
	jupclient "github.com/oscarsebastian/jup-airdrop-checker/internal/jup-client"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Panicf("config.Load: %s", err)
	}

	err = cfg.Validate()
	if err != nil {
		logrus.Panicf("cfg.Validate: %s", err)
	}

	logger := cfg.NewLogger()

	var publicKey *rsa.PublicKey

	if cfg.JWTPublicKeyFile != "" {
		publicKey, err = checkerserver.LoadPublicKey(cfg.JWTPublicKeyFile)
		if err != nil {
			logger.Panicf("checkerserver.LoadPublicKey: %s", err)
		}
	}

	var fetcher jupclient.Fetcher = jupclient.New(logger, jupclient.Options{
		Endpoint:          cfg.Endpoint,
		MaxRetries:        cfg.MaxRetries,
		Backoff:           cfg.Backoff(),
		BackoffMultiplier: cfg.BackoffMultiplier,
		HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout},
	})

	if cfg.CacheSize > 0 {
		fetcher = jupclient.NewCached(fetcher, cfg.CacheSize, cfg.CacheTTL)
	}

	service := checker.New(fetcher, logger, checker.Options{
		Concurrency: cfg.Concurrency,
		FailFast:    cfg.FailFast,
	})
	server := checkerserver.New(cfg.HTTPHost, cfg.HTTPPort, service, logger, publicKey)

	err = server.Run(ctx)
	if err != nil {
		logger.Panicf("server.Run: %s", err)
	}
}
