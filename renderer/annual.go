package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/ctgr/coinpnl"
)

// AnnualMarkdown renders the year-end summaries, with the home currency
// amounts formatted the way that currency is usually written.
func AnnualMarkdown(reports []coinpnl.AnnualReport, homeCurrency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Annual Reports")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{
			"Year end",
			"PNL (USD)",
			fmt.Sprintf("USD/%s", homeCurrency),
			fmt.Sprintf("PNL (%s)", homeCurrency),
			"Wallet value (USD)",
			fmt.Sprintf("Wallet value (%s)", homeCurrency),
		},
		Rows: [][]string{},
	}
	for _, r := range reports {
		table.Rows = append(table.Rows, []string{
			coinpnl.FormatTime(r.Timestamp),
			fiatMoney(r.PnlUsd, "USD"),
			r.ExchangeRate.Nice(),
			fiatMoney(r.PnlHome, homeCurrency),
			fiatMoney(r.WalletValueUsd, "USD"),
			fiatMoney(r.WalletValueHome, homeCurrency),
		})
	}
	doc.Table(table)

	return doc.String()
}
