package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/shopspring/decimal"
)

const banner = `
 +-----------------------------+
 |  $JUP airdrop checker       |
 +-----------------------------+
`

// Reporter writes qualification results for humans. Colors are configured per
// instance, never globally.
type Reporter struct {
	out    io.Writer
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	blue   *color.Color
}

func New(out io.Writer, colored bool) *Reporter {
	r := &Reporter{
		out:    out,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		blue:   color.New(color.FgBlue),
	}

	for _, c := range []*color.Color{r.green, r.red, r.yellow, r.blue} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

func (r *Reporter) Banner() {
	_, _ = r.blue.Fprint(r.out, banner)
}

func (r *Reporter) Warn(format string, args ...any) {
	_, _ = r.yellow.Fprintf(r.out, "Warning: "+format+"\n", args...)
}

// Report writes one line per wallet. Only a strictly positive volume qualifies.
func (r *Reporter) Report(rows []models.RankedWallet) {
	for _, row := range rows {
		if row.Qualifies() {
			_, _ = r.green.Fprintf(r.out,
				"Wallet %s qualifies for $JUP | %d operations detected and %s$ volume detected.\n",
				row.Wallet, row.Operations, volume(row.Total))

			continue
		}

		_, _ = r.red.Fprintf(r.out, "Wallet %s does not qualify for $JUP | No operations detected.\n", row.Wallet)
	}
}

// volume prints the shortest exact form, keeping one decimal for whole dollars.
func volume(total decimal.Decimal) string {
	s := total.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

func (r *Reporter) Failures(failures []models.WalletFailure) {
	for _, failure := range failures {
		_, _ = r.red.Fprintf(r.out, "Wallet %s could not be checked | %s\n", failure.Wallet, failure.Error)
	}
}

func (r *Reporter) Summary(report models.Report) {
	_, _ = fmt.Fprintf(r.out, "%d of %d wallets qualify (run %s)\n",
		report.Qualified, len(report.Wallets)+len(report.Failures), report.RunID)
}
