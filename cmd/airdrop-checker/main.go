package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/oscarsebastian/jup-airdrop-checker/internal/checker"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/config"
	jupclient "github.com/oscarsebastian/jup-airdrop-checker/internal/jup-client"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/reporter"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/wallets"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config.Load: %s", err)
	}

	err = cfg.Validate()
	if err != nil {
		logrus.Fatalf("cfg.Validate: %s", err)
	}

	logger := cfg.NewLogger()
	out := reporter.New(os.Stdout, !cfg.NoColor)

	out.Banner()

	// Wallets given on the command line take precedence over the file.
	list := wallets.List{Wallets: os.Args[1:]}
	if len(list.Wallets) == 0 {
		list, err = wallets.Load(cfg.WalletsFile, nil)
		if err != nil {
			logger.Fatalf("wallets.Load: %s", err)
		}

		if list.Created {
			out.Warn("'%s' not found. Creating a new file.", cfg.WalletsFile)
		}
	}

	if len(list.Wallets) == 0 {
		out.Warn("'%s' is empty. Please provide your wallet addresses in the file.", cfg.WalletsFile)

		return
	}

	client := jupclient.New(logger, jupclient.Options{
		Endpoint:          cfg.Endpoint,
		MaxRetries:        cfg.MaxRetries,
		Backoff:           cfg.Backoff(),
		BackoffMultiplier: cfg.BackoffMultiplier,
		HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout},
	})

	service := checker.New(client, logger, checker.Options{
		Concurrency: cfg.Concurrency,
		FailFast:    cfg.FailFast,
	})

	report, err := service.Check(ctx, list.Wallets)
	if err != nil {
		logger.Fatalf("service.Check: %s", err)
	}

	out.Report(report.Wallets)
	out.Failures(report.Failures)
	out.Summary(report)
}
