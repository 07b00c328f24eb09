package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type YearSummary struct {
	Operations int             `json:"operations"`
	Total      decimal.Decimal `json:"total"`
}

// WalletSummary maps a calendar year to the swaps recorded in it.
type WalletSummary map[int]YearSummary

type RankedWallet struct {
	Wallet     string          `json:"wallet"`
	Total      decimal.Decimal `json:"total"`
	Operations int             `json:"operations"`
	Years      string          `json:"years"`
}

func (r RankedWallet) Qualifies() bool {
	return r.Total.GreaterThan(decimal.Zero)
}

type WalletFailure struct {
	Wallet string `json:"wallet"`
	Error  string `json:"error"`
}

type Report struct {
	RunID     uuid.UUID       `json:"runId"`
	Wallets   []RankedWallet  `json:"wallets"`
	Failures  []WalletFailure `json:"failures,omitempty"`
	Qualified int             `json:"qualified"`
}

type CheckRequest struct {
	Wallets []string `json:"wallets"`
}
