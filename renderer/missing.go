package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/ctgr/coinpnl"
)

// MissingMarkdown lists the extra info entries the report needs but the
// user has not provided yet.
func MissingMarkdown(missing *coinpnl.ExtraInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Missing Extra Info")

	if missing.Len() == 0 {
		doc.PlainText("Nothing is missing, the ledger can be fully processed.")
		return doc.String()
	}

	var items []string
	for _, e := range missing.All() {
		switch e.Type {
		case coinpnl.AssetPrice:
			items = append(items, fmt.Sprintf("%s price of %s", coinpnl.FormatTime(e.UTCTime), e.Asset))
		case coinpnl.AutoInvestProportions:
			items = append(items, fmt.Sprintf("%s auto-invest proportions for %s", coinpnl.FormatTime(e.UTCTime), e.Asset))
		default:
			items = append(items, fmt.Sprintf("%s %s %s", coinpnl.FormatTime(e.UTCTime), e.Type, e.Asset))
		}
	}
	doc.BulletList(items...)

	return doc.String()
}
