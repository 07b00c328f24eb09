package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/ranking"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/summary"
	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoWallets   = errors.New("no wallets to check")
	ErrEmptyWallet = errors.New("wallet id is empty")
)

type TransactionFetcher interface {
	Fetch(ctx context.Context, wallet string) ([]models.Transaction, error)
}

type Options struct {
	// Concurrency caps in-flight wallets. Zero or less means no cap.
	Concurrency int
	// FailFast aborts the batch on the first wallet that cannot be checked.
	// Otherwise failures are reported next to the ranking.
	FailFast bool
}

type Service struct {
	fetcher TransactionFetcher
	opts    Options
	log     *logrus.Entry
	metrics *metrics
}

type walletResult struct {
	summary models.WalletSummary
	err     error
}

func New(fetcher TransactionFetcher, log *logrus.Logger, opts Options) *Service {
	return &Service{
		fetcher: fetcher,
		opts:    opts,
		log:     log.WithField("module", "checker"),
		metrics: defaultMetrics,
	}
}

// Check fetches and summarizes every wallet concurrently and ranks the results.
// Duplicate wallet ids are checked once.
func (s *Service) Check(ctx context.Context, wallets []string) (models.Report, error) {
	wallets, err := normalize(wallets)
	if err != nil {
		return models.Report{}, err
	}

	started := time.Now()
	defer func() {
		s.metrics.duration.Observe(time.Since(started).Seconds())
	}()

	report := models.Report{RunID: uuid.New()}
	log := s.log.WithField("run_id", report.RunID)

	log.Infof("Checking %d wallets", len(wallets))

	results := make([]walletResult, len(wallets))

	group, groupCtx := errgroup.WithContext(ctx)
	if s.opts.Concurrency > 0 {
		group.SetLimit(s.opts.Concurrency)
	}

	for i, wallet := range wallets {
		i, wallet := i, wallet

		group.Go(func() error {
			walletSummary, err := s.checkWallet(groupCtx, wallet)
			if err != nil {
				s.metrics.wallets.WithLabelValues("failed").Inc()

				if s.opts.FailFast {
					return fmt.Errorf("wallet %s: %w", wallet, err)
				}

				log.WithField("wallet", wallet).Errorf("checkWallet: %s", err)
			}

			results[i] = walletResult{summary: walletSummary, err: err}

			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		return models.Report{}, err
	}

	summaries := make(map[string]models.WalletSummary, len(wallets))

	for i, wallet := range wallets {
		if results[i].err != nil {
			report.Failures = append(report.Failures, models.WalletFailure{
				Wallet: wallet,
				Error:  results[i].err.Error(),
			})

			continue
		}

		summaries[wallet] = results[i].summary
	}

	report.Wallets = ranking.Rank(summaries)

	for _, row := range report.Wallets {
		if row.Qualifies() {
			report.Qualified++
			s.metrics.wallets.WithLabelValues("qualified").Inc()
		} else {
			s.metrics.wallets.WithLabelValues("not_qualified").Inc()
		}
	}

	log.Infof("%d of %d wallets qualify, %d failed", report.Qualified, len(wallets), len(report.Failures))

	return report, nil
}

func (s *Service) checkWallet(ctx context.Context, wallet string) (models.WalletSummary, error) {
	transactions, err := s.fetcher.Fetch(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("fetcher.Fetch: %w", err)
	}

	walletSummary, err := summary.Summarize(transactions)
	if err != nil {
		return nil, fmt.Errorf("summary.Summarize: %w", err)
	}

	return walletSummary, nil
}

func normalize(wallets []string) ([]string, error) {
	if len(wallets) == 0 {
		return nil, ErrNoWallets
	}

	seen := make(map[string]struct{}, len(wallets))
	unique := make([]string, 0, len(wallets))

	for i, wallet := range wallets {
		if wallet == "" {
			return nil, fmt.Errorf("wallet %d: %w", i, ErrEmptyWallet)
		}

		if _, ok := seen[wallet]; ok {
			continue
		}

		seen[wallet] = struct{}{}
		unique = append(unique, wallet)
	}

	return unique, nil
}
