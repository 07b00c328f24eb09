package jupclient

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/oscarsebastian/jup-airdrop-checker/models"
)

type Fetcher interface {
	Fetch(ctx context.Context, wallet string) ([]models.Transaction, error)
}

// CachedFetcher remembers successful fetches for a limited time.
type CachedFetcher struct {
	next    Fetcher
	cache   *expirable.LRU[string, []models.Transaction]
	metrics *metrics
}

func NewCached(next Fetcher, size int, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		next:    next,
		cache:   expirable.NewLRU[string, []models.Transaction](size, nil, ttl),
		metrics: defaultMetrics,
	}
}

func (f *CachedFetcher) Fetch(ctx context.Context, wallet string) ([]models.Transaction, error) {
	if transactions, ok := f.cache.Get(wallet); ok {
		f.metrics.cacheHits.Inc()

		return transactions, nil
	}

	transactions, err := f.next.Fetch(ctx, wallet)
	if err != nil {
		return nil, err
	}

	f.cache.Add(wallet, transactions)

	return transactions, nil
}
