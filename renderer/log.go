package renderer

import (
	"strings"

	"github.com/ctgr/coinpnl"
)

// LogMarkdown generates a markdown transaction log from the snapshot
// chain, one row per processed transaction.
func LogMarkdown(snapshots []*coinpnl.WalletSnapshot) string {
	r := &renderer{Builder: &strings.Builder{}}

	r.Printf("## Transaction Log\n\n")
	r.Printf("| UTC time | Transaction | Asset | Amount | Obtain price | PNL | Running PNL |\n")
	r.Printf("|:---|:---|:---|---:|---:|---:|---:|\n")
	for _, s := range snapshots {
		tx := s.Transaction()
		if tx == nil {
			continue
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
			coinpnl.FormatTime(tx.UtcTime()),
			tx.Type(),
			tx.Base(),
			tx.BaseAmount().Nice(),
			tx.ObtainPrice().Nice(),
			s.TransactionPnl().Nice(),
			s.RunningPnl().Nice(),
		)
	}
	r.Printf("\n")
	return r.String()
}
