package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/ctgr/coinpnl"
)

// BalanceMarkdown renders the wallet state of one snapshot: every held
// asset with its amount, average obtain price and cost basis.
func BalanceMarkdown(s *coinpnl.WalletSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Balances on %s", coinpnl.FormatTime(s.Timestamp())))

	w := s.Wallet()
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Asset", "Amount", "Avg obtain price", "Cost basis"},
		Rows:   [][]string{},
	}
	cost := coinpnl.Zero
	for _, asset := range w.Assets() {
		amount := w.AssetAmount(asset)
		price := w.AvgPrice(asset)
		basis := amount.Mul(price)
		cost = cost.Add(basis)
		table.Rows = append(table.Rows, []string{
			asset,
			amount.Nice(),
			price.Nice(),
			basis.Nice(),
		})
	}
	doc.Table(table)

	if tx := s.Transaction(); tx != nil {
		doc.PlainText(fmt.Sprintf("Last transaction: %s", Transaction(tx)))
	}
	doc.PlainText(fmt.Sprintf("Total cost basis: %s USDT", cost.Nice()))
	doc.PlainText(fmt.Sprintf("Running PNL: %s USDT", s.RunningPnl().Nice()))

	return doc.String()
}
