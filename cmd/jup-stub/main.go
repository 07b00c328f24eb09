package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/oscarsebastian/jup-airdrop-checker/internal/config"
	jupstub "github.com/oscarsebastian/jup-airdrop-checker/internal/jup-stub"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Panicf("config.Load: %s", err)
	}

	logger := cfg.NewLogger()
	store := jupstub.NewStore(logger, nil)

	if cfg.StubDataFile != "" {
		store, err = jupstub.LoadStore(logger, cfg.StubDataFile)
		if err != nil {
			logger.Panicf("jupstub.LoadStore: %s", err)
		}
	}

	server := jupstub.New("", cfg.StubPort, store, logger)

	err = server.Run(ctx)
	if err != nil {
		logger.Panicf("server.Run: %s", err)
	}
}
