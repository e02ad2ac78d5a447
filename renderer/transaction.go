package renderer

import (
	"fmt"

	"github.com/ctgr/coinpnl"
)

// Transaction renders a one line summary of a processed transaction.
func Transaction(tx coinpnl.Transaction) string {
	switch tx.Type() {
	case "Buy":
		return fmt.Sprintf("Bought %s %s for %s USDT", tx.BaseAmount().Nice(), tx.Base(), tx.QuoteAmount().Abs().Nice())
	case "Sell":
		return fmt.Sprintf("Sold %s %s for %s USDT (PNL %s)", tx.BaseAmount().Abs().Nice(), tx.Base(), tx.QuoteAmount().Nice(), tx.Pnl().Nice())
	case "Coin to coin":
		return fmt.Sprintf("Converted %s %s to %s %s", tx.QuoteAmount().Abs().Nice(), tx.Quote(), tx.BaseAmount().Nice(), tx.Base())
	case "Deposit":
		return fmt.Sprintf("Deposited %s %s", tx.BaseAmount().Nice(), tx.Base())
	case "Withdraw":
		return fmt.Sprintf("Withdrew %s %s (PNL %s)", tx.BaseAmount().Abs().Nice(), tx.Base(), tx.Pnl().Nice())
	case "Card purchase":
		return fmt.Sprintf("Bought %s %s with %s %s", tx.BaseAmount().Nice(), tx.Base(), tx.QuoteAmount().Abs().Nice(), tx.Quote())
	case "Currency exchange":
		return fmt.Sprintf("Exchanged %s %s to %s %s", tx.QuoteAmount().Abs().Nice(), tx.Quote(), tx.BaseAmount().Nice(), tx.Base())
	case "Auto-invest":
		if tx.Base() == "" {
			return fmt.Sprintf("Auto-invested %s %s", tx.QuoteAmount().Abs().Nice(), tx.Quote())
		}
		return fmt.Sprintf("Auto-acquired %s %s", tx.BaseAmount().Nice(), tx.Base())
	case "Dust collection":
		return fmt.Sprintf("Collected dust into %s %s", tx.QuoteAmount().Nice(), tx.Quote())
	default:
		return fmt.Sprintf("%s of %s %s", tx.Type(), tx.BaseAmount().Nice(), tx.Base())
	}
}
