package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLedger = `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
1001,2021-03-01 10:00:00,Spot,Deposit,USDT,1000,
1001,2021-03-02 10:00:00,Spot,Buy,LTC,10,
1001,2021-03-02 10:00:00,Spot,Sell,USDT,-700,
`

// 1640995199000 is 2021-12-31 23:59:59 UTC
const sampleExtraInfo = `1640995199000,2021-12-31 23:59:59,ASSET_PRICE,LTC,75
`

// setupFiles points the app flags at a throwaway ledger and extra info
// file.
func setupFiles(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	ledger := filepath.Join(dir, "ledger.csv")
	if err := os.WriteFile(ledger, []byte(sampleLedger), 0644); err != nil {
		t.Fatal(err)
	}
	extra := filepath.Join(dir, "extra-info.csv")
	if err := os.WriteFile(extra, []byte(sampleExtraInfo), 0644); err != nil {
		t.Fatal(err)
	}

	oldLedger, oldExtra := *ledgerFile, *extraInfoFile
	oldCurrency, oldOffline := *homeCurrency, *offline
	*ledgerFile, *extraInfoFile = ledger, extra
	*homeCurrency, *offline = "USD", true
	t.Cleanup(func() {
		*ledgerFile, *extraInfoFile = oldLedger, oldExtra
		*homeCurrency, *offline = oldCurrency, oldOffline
	})
}

func TestBuildReport(t *testing.T) {
	setupFiles(t)

	report, err := BuildReport()
	if err != nil {
		t.Fatal(err)
	}

	if got := len(report.Snapshots()); got != 2 {
		t.Fatalf("snapshot count = %d, want 2", got)
	}
	w := report.Current().Wallet()
	if got := w.AssetAmount("USDT").Nice(); got != "300" {
		t.Errorf("USDT balance = %s, want 300", got)
	}
	if got := w.AssetAmount("LTC").Nice(); got != "10" {
		t.Errorf("LTC balance = %s, want 10", got)
	}
	if got := w.AvgPrice("LTC").Nice(); got != "70" {
		t.Errorf("LTC avg price = %s, want 70", got)
	}

	// home currency is USD like, no exchange rate entry is needed
	annual, err := report.CreateAnnualReports()
	if err != nil {
		t.Fatal(err)
	}
	if len(annual) != 1 {
		t.Fatalf("annual report count = %d, want 1", len(annual))
	}
	if got := annual[0].ExchangeRate.Nice(); got != "1" {
		t.Errorf("USD exchange rate = %s, want 1", got)
	}
	if got := annual[0].WalletValueUsd.Nice(); got != "1050" {
		t.Errorf("wallet value = %s, want 1050 (300 USDT + 10 LTC at 75)", got)
	}
}

func TestBuildReportMissingLedger(t *testing.T) {
	setupFiles(t)
	*ledgerFile = filepath.Join(t.TempDir(), "does-not-exist.csv")

	if _, err := BuildReport(); err == nil {
		t.Fatal("a missing ledger file must fail")
	}
}

func TestReportCommand(t *testing.T) {
	setupFiles(t)
	out := t.TempDir()

	c := &reportCmd{outDir: out}
	if got := c.Execute(context.Background(), flag.NewFlagSet("report", flag.ContinueOnError)); got != 0 {
		t.Fatalf("report exit status = %v", got)
	}

	for name, wantLines := range map[string]int{
		"transaction-log.csv": 3, // header + 2 transactions
		"balance-log.csv":     3,
		"annual-report.csv":   2, // header + 1 year
	} {
		content, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		lines := strings.Count(strings.TrimRight(string(content), "\n"), "\n") + 1
		if lines != wantLines {
			t.Errorf("%s has %d lines, want %d:\n%s", name, lines, wantLines, content)
		}
	}
}

func TestMissingCommandTemplate(t *testing.T) {
	setupFiles(t)
	// an empty extra info collection and a non USD home currency: the
	// year-end exchange rate is missing
	*extraInfoFile = filepath.Join(t.TempDir(), "no-extra.csv")
	*homeCurrency = "NOK"

	tmpl := filepath.Join(t.TempDir(), "template.csv")
	c := &missingCmd{outFile: tmpl}
	if got := c.Execute(context.Background(), flag.NewFlagSet("missing", flag.ContinueOnError)); got != 0 {
		t.Fatalf("missing exit status = %v", got)
	}

	content, err := os.ReadFile(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "NOK") {
		t.Errorf("template misses the NOK rate entry:\n%s", content)
	}
}
