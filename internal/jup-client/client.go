package jupclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxRetries = 3
	DefaultBackoff    = 2 * time.Second
)

type Options struct {
	Endpoint   string
	MaxRetries int
	Backoff    time.Duration
	// BackoffMultiplier scales the delay after every failed attempt. 1 keeps it fixed.
	BackoffMultiplier float64
	HTTPClient        *http.Client
}

type Client struct {
	log        *logrus.Entry
	metrics    *metrics
	httpClient *http.Client
	endpoint   string
	maxRetries int
	backoff    time.Duration
	multiplier float64
}

func New(log *logrus.Logger, opts Options) *Client {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = DefaultMaxRetries
	}

	if opts.BackoffMultiplier < 1 {
		opts.BackoffMultiplier = 1
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Client{
		log:        log.WithField("module", "jup_client"),
		metrics:    defaultMetrics,
		httpClient: opts.HTTPClient,
		endpoint:   opts.Endpoint,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		multiplier: opts.BackoffMultiplier,
	}
}

// Fetch returns every swap the API reports for wallet. Forbidden responses and
// transport errors are retried up to the configured number of attempts; any
// other failure is returned at once.
func (c *Client) Fetch(ctx context.Context, wallet string) ([]models.Transaction, error) {
	var last error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		transactions, err := c.fetchOnce(ctx, wallet, attempt+1)
		if err == nil {
			return transactions, nil
		}

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			return nil, err
		}

		last = fetchErr.Err

		reason := "transport"
		if errors.Is(fetchErr, ErrForbidden) {
			reason = "forbidden"
		}

		c.metrics.retries.WithLabelValues(reason).Inc()
		c.log.WithField("wallet", wallet).Warningf("Attempt %d of %d: %s. Retrying...",
			attempt+1, c.maxRetries, fetchErr.Err)

		if attempt+1 == c.maxRetries {
			break
		}

		err = c.wait(ctx, attempt)
		if err != nil {
			return nil, err
		}
	}

	return nil, &ExhaustedRetriesError{Wallet: wallet, Attempts: c.maxRetries, Last: last}
}

func (c *Client) fetchOnce(ctx context.Context, wallet string, attempt int) ([]models.Transaction, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	query := endpoint.Query()
	query.Set("publicKey", wallet)
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	request.Header.Set("Accept", "application/json")

	started := time.Now()

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.metrics.duration.WithLabelValues("error").Observe(time.Since(started).Seconds())

		if ctx.Err() != nil {
			return nil, fmt.Errorf("httpClient.Do: %w", ctx.Err())
		}

		return nil, &FetchError{Wallet: wallet, Attempt: attempt, Err: err}
	}

	c.metrics.duration.WithLabelValues(strconv.Itoa(response.StatusCode)).Observe(time.Since(started).Seconds())

	defer func() {
		err = response.Body.Close()
		if err != nil {
			c.log.Warningf("response.Body.Close: %s", err)
		}
	}()

	if response.StatusCode == http.StatusForbidden {
		return nil, &FetchError{Wallet: wallet, Attempt: attempt, Err: ErrForbidden}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &StatusError{Wallet: wallet, StatusCode: response.StatusCode}
	}

	// A connection dropped or timed out mid-body is as transient as one that
	// failed before the headers; only a complete but invalid body is terminal.
	body, err := io.ReadAll(response.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("io.ReadAll: %w", ctx.Err())
		}

		return nil, &FetchError{Wallet: wallet, Attempt: attempt, Err: fmt.Errorf("io.ReadAll: %w", err)}
	}

	var transactions []models.Transaction

	err = json.Unmarshal(body, &transactions)
	if err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	c.log.WithField("wallet", wallet).Debugf("%d transactions fetched", len(transactions))

	return transactions, nil
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(c.backoff) * math.Pow(c.multiplier, float64(attempt)))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
