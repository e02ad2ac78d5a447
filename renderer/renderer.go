// Package renderer turns report structures into markdown, suitable for
// the terminal or for saving next to the generated CSV files.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/ctgr/coinpnl"
)

// renderer formats report output into a markdown string.
type renderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// fiatMoney renders a fiat value with its currency symbol and the
// currency's own decimal places, e.g. "kr 8,925.00" for NOK.
// Stablecoin and crypto amounts keep the exact decimal rendering.
func fiatMoney(v coinpnl.Decimal, currency string) string {
	if money.GetCurrency(currency) == nil {
		return fmt.Sprintf("%s %s", v.Nice(), currency)
	}
	return money.NewFromFloat(v.Float64(), currency).Display()
}
