package ranking

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/shopspring/decimal"
)

// Rank builds one row per wallet and orders the rows by total volume, then by
// operation count, both descending. Remaining ties are ordered by wallet id.
func Rank(summaries map[string]models.WalletSummary) []models.RankedWallet {
	rows := make([]models.RankedWallet, 0, len(summaries))

	for wallet, summary := range summaries {
		rows = append(rows, row(wallet, summary))
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}

		if rows[i].Operations != rows[j].Operations {
			return rows[i].Operations > rows[j].Operations
		}

		return rows[i].Wallet < rows[j].Wallet
	})

	return rows
}

func row(wallet string, summary models.WalletSummary) models.RankedWallet {
	total := decimal.Zero
	operations := 0
	years := make([]int, 0, len(summary))

	for year, bucket := range summary {
		total = total.Add(bucket.Total)
		operations += bucket.Operations
		years = append(years, year)
	}

	sort.Ints(years)

	labels := make([]string, len(years))
	for i, year := range years {
		labels[i] = strconv.Itoa(year)
	}

	return models.RankedWallet{
		Wallet:     wallet,
		Total:      total,
		Operations: operations,
		Years:      strings.Join(labels, ","),
	}
}
