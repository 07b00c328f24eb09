package summary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/shopspring/decimal"
)

const (
	usdPlaces = 2
	// Rounding rescales the coefficient by 10^exponent, so the exponent is
	// bounded before any arithmetic.
	maxExponent = 30
	minExponent = -64
)

var (
	ErrMalformedRecord  = errors.New("malformed transaction record")
	ErrAmountOutOfRange = errors.New("amount out of range")
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102",
}

type MalformedRecordError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transaction %d: missing %s", e.Index, e.Field)
	}

	return fmt.Sprintf("transaction %d: invalid %s %q: %s", e.Index, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Summarize folds a wallet's swaps into per-year operation counts and USD
// totals. Each amount is rounded to cents, half away from zero, before it is
// added. A single malformed record fails the whole wallet.
func Summarize(transactions []models.Transaction) (models.WalletSummary, error) {
	summary := make(models.WalletSummary)

	for i, tx := range transactions {
		year, err := parseYear(i, tx.Timestamp)
		if err != nil {
			return nil, err
		}

		amount, err := parseAmount(i, tx.InAmountInUSD)
		if err != nil {
			return nil, err
		}

		bucket := summary[year]
		bucket.Operations++
		bucket.Total = bucket.Total.Add(amount)
		summary[year] = bucket
	}

	return summary, nil
}

func parseYear(index int, timestamp string) (int, error) {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return 0, &MalformedRecordError{Index: index, Field: "timestamp"}
	}

	var err error

	for _, layout := range timestampLayouts {
		var parsed time.Time

		parsed, err = time.Parse(layout, timestamp)
		if err == nil {
			return parsed.Year(), nil
		}
	}

	return 0, &MalformedRecordError{Index: index, Field: "timestamp", Value: timestamp, Err: err}
}

func parseAmount(index int, value models.USDAmount) (decimal.Decimal, error) {
	raw := strings.TrimSpace(string(value))
	if raw == "" {
		return decimal.Decimal{}, &MalformedRecordError{Index: index, Field: "inAmountInUSD"}
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &MalformedRecordError{Index: index, Field: "inAmountInUSD", Value: raw, Err: err}
	}

	if amount.Exponent() > maxExponent || amount.Exponent() < minExponent {
		return decimal.Decimal{}, &MalformedRecordError{
			Index: index,
			Field: "inAmountInUSD",
			Value: raw,
			Err:   ErrAmountOutOfRange,
		}
	}

	return amount.Round(usdPlaces), nil
}
