// Package cmd implements the CLI application to turn an exchange
// account statement into cost basis and PNL reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"

	"github.com/ctgr/coinpnl"
)

// Commands are the subcommands a main package registers.
var Commands = []subcommands.Command{
	&reportCmd{},
	&logCmd{},
	&balancesCmd{},
	&annualCmd{},
	&missingCmd{},
	&AssistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger", "ledger.csv", "Path to the exchange account statement (CSV format)")
var extraInfoFile = flag.String("extra-info", "extra-info.csv", "Path to the extra info file (CSV format)")
var homeCurrency = flag.String("currency", "USD", "Home currency of the annual reports")
var offline = flag.Bool("offline", false, "Never look up missing prices online, fail instead")
var eodhdApiKey = flag.String("eodhd-api-key", "", "EODHD API key for fiat exchange rates.\n If missing it will read the environment variable \""+coinpnl.EodhdApiKeyEnv+"\". You can get one at https://eodhd.com/")

// LoadLedger reads the account statement from the app ledger file.
func LoadLedger() (*coinpnl.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return coinpnl.ReadLedger(f)
}

// LoadExtraInfo reads the user-provided extra info from the app extra
// info file. A missing file is an empty collection, the report will
// tell what is needed.
func LoadExtraInfo() (*coinpnl.ExtraInfo, error) {
	f, err := os.Open(*extraInfoFile)
	if errors.Is(err, fs.ErrNotExist) {
		return coinpnl.NewExtraInfo(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open extra info file %q: %w", *extraInfoFile, err)
	}
	defer f.Close()
	return coinpnl.ReadExtraInfo(f)
}

// SaveExtraInfo writes the collection back to the app extra info file,
// after a price lookup added entries to it.
func SaveExtraInfo(x *coinpnl.ExtraInfo) error {
	f, err := os.Create(*extraInfoFile)
	if err != nil {
		return fmt.Errorf("could not write extra info file %q: %w", *extraInfoFile, err)
	}
	defer f.Close()
	return coinpnl.WriteExtraInfo(f, x)
}

// routedPriceSource sends fiat currencies to the forex provider and
// everything else to the exchange.
type routedPriceSource struct {
	crypto coinpnl.PriceSource
	forex  coinpnl.PriceSource
}

func (s *routedPriceSource) DailyClosePrice(asset string, utcTime int64) (coinpnl.Decimal, error) {
	if coinpnl.IsFiat(asset) {
		return s.forex.DailyClosePrice(asset, utcTime)
	}
	return s.crypto.DailyClosePrice(asset, utcTime)
}

func priceSource() coinpnl.PriceSource {
	if *offline {
		return nil
	}
	return &routedPriceSource{
		crypto: coinpnl.NewBinanceClient(),
		forex:  coinpnl.NewEodhdClient(*eodhdApiKey),
	}
}

// BuildReport reads the app files and folds the whole ledger into a
// report.
func BuildReport() (*coinpnl.Report, error) {
	ledger, err := LoadLedger()
	if err != nil {
		return nil, err
	}
	extra, err := LoadExtraInfo()
	if err != nil {
		return nil, err
	}
	transactions, err := ledger.Transactions()
	if err != nil {
		return nil, err
	}
	report := coinpnl.NewReport(extra, *homeCurrency, priceSource())
	for _, tx := range transactions {
		if err := report.Process(tx); err != nil {
			return nil, err
		}
	}
	return report, nil
}
