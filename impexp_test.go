package coinpnl

import (
	"strings"
	"testing"
)

const exportSample = `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
12345678,2021-06-01 10:00:00,Spot,Deposit,USDT,1000,
12345678,2021-07-01 10:00:00,Spot,Sell,USDT,-700,
12345678,2021-07-01 10:00:00,Spot,Buy,LTC,10,
12345678,2021-07-01 10:00:00,Spot,Fee,LTC,-0.01,
`

func TestReadLedger(t *testing.T) {
	ledger, err := ReadLedger(strings.NewReader(exportSample))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ledger.Len() != 4 {
		t.Fatalf("read %d changes, want 4", ledger.Len())
	}
	first := ledger.Changes()[0]
	if first.Operation != OpDeposit || first.Asset != "USDT" || !first.Amount.Equal(d("1000")) {
		t.Errorf("first change = %s %s %s", first.Operation, first.Amount.Nice(), first.Asset)
	}
	if first.UTCTime != mustTime("2021-06-01 10:00:00") {
		t.Errorf("first change time = %s", FormatTime(first.UTCTime))
	}
	transactions, err := ledger.Transactions()
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(transactions))
	}
}

func TestReadLedgerRejectsBadHeader(t *testing.T) {
	tests := []string{
		"User_ID,Time,Account,Operation,Coin,Change,Remark\n",
		"UTC_Time,Account,Operation,Coin,Change,Remark\n",
		"",
	}
	for _, in := range tests {
		if _, err := ReadLedger(strings.NewReader(in)); err == nil {
			t.Errorf("header %q must be rejected", strings.TrimSpace(in))
		}
	}
}

func TestReadLedgerRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"unknown operation", "1,2021-06-01 10:00:00,Spot,Margin Loan,BTC,1,"},
		{"unknown account", "1,2021-06-01 10:00:00,Wallet,Deposit,BTC,1,"},
		{"bad timestamp", "1,01.06.2021,Spot,Deposit,BTC,1,"},
		{"bad amount", "1,2021-06-01 10:00:00,Spot,Deposit,BTC,one,"},
		{"bad sign", "1,2021-06-01 10:00:00,Spot,Buy,BTC,-1,"},
	}
	header := "User_ID,UTC_Time,Account,Operation,Coin,Change,Remark\n"
	for _, tt := range tests {
		if _, err := ReadLedger(strings.NewReader(header + tt.row + "\n")); err == nil {
			t.Errorf("%s must be rejected", tt.name)
		}
	}
}

func TestReadLedgerRejectsDecreasingTime(t *testing.T) {
	in := `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
1,2021-06-02 10:00:00,Spot,Deposit,USDT,1000,
1,2021-06-01 10:00:00,Spot,Deposit,USDT,1000,
`
	if _, err := ReadLedger(strings.NewReader(in)); err == nil {
		t.Fatal("decreasing timestamps must be rejected")
	}
}

func TestExtraInfoRoundTrip(t *testing.T) {
	x := NewExtraInfo()
	x.Add(priceEntry(1622541600000, "LTC", "72.22"))
	x.Add(&ExtraInfoEntry{
		UTCTime: 1625133600000,
		Type:    AutoInvestProportions,
		Asset:   "BTC|ETH",
		Value:   "0.5|0.5",
	})

	var out strings.Builder
	if err := WriteExtraInfo(&out, x); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadExtraInfo(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("round tripped %d entries, want 2", got.Len())
	}
	if e := got.GetAssetPrice(1622541600000, "LTC"); e == nil || e.Value != "72.22" {
		t.Errorf("LTC entry = %v", e)
	}
	if e := got.Get(1625133600000, AutoInvestProportions); e == nil || e.Value != "0.5|0.5" {
		t.Errorf("proportions entry = %v", e)
	}
}

func TestReadExtraInfoRejectsShortRows(t *testing.T) {
	in := "1622541600000,2021-06-01 10:00:00,ASSET_PRICE,LTC\n"
	if _, err := ReadExtraInfo(strings.NewReader(in)); err == nil {
		t.Fatal("short extra info row must be rejected")
	}
}

func TestWriteTransactionLog(t *testing.T) {
	ledger, err := ReadLedger(strings.NewReader(exportSample))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	transactions, err := ledger.Transactions()
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	r := NewReport(NewExtraInfo(), "NOK", nil)
	for _, tx := range transactions {
		if err := r.Process(tx); err != nil {
			t.Fatalf("process: %v", err)
		}
	}

	var out strings.Builder
	if err := WriteTransactionLog(&out, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header and 2 rows:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "Unix timestamp,UTC time,Transaction") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Deposit") || !strings.Contains(lines[1], "1000") {
		t.Errorf("deposit row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Buy") || !strings.Contains(lines[2], "LTC") {
		t.Errorf("buy row = %q", lines[2])
	}
}

func TestWriteBalanceLog(t *testing.T) {
	r := NewReport(NewExtraInfo(), "NOK", nil)
	if err := r.Process(clarify(t, 1000, leg{OpDeposit, "USDT", "100"})); err != nil {
		t.Fatalf("process: %v", err)
	}
	var out strings.Builder
	if err := WriteBalanceLog(&out, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if want := "1000,1970-01-01 00:00:01,100,USDT,1"; lines[1] != want {
		t.Errorf("balance row = %q, want %q", lines[1], want)
	}
}

func TestWriteAnnualReports(t *testing.T) {
	reports := []AnnualReport{{
		Timestamp:       YearEnd(2021),
		PnlUsd:          d("50"),
		ExchangeRate:    d("8.5"),
		PnlHome:         d("425"),
		WalletValueUsd:  d("1050"),
		WalletValueHome: d("8925"),
	}}
	var out strings.Builder
	if err := WriteAnnualReports(&out, reports, "NOK"); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "NOK/USD exchange rate") {
		t.Errorf("header = %q", lines[0])
	}
	if want := "2021-12-31 23:59:59,50,8.5,425,1050,8925"; lines[1] != want {
		t.Errorf("report row = %q, want %q", lines[1], want)
	}
}
