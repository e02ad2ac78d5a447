package coinpnl

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// this file contains functions to read the exchange export files and to
// write the generated reports. Everything is CSV, the format the
// exchange produces and spreadsheet users expect.

// ledgerHeader is the exact header row of a Binance transaction export.
var ledgerHeader = []string{"User_ID", "UTC_Time", "Account", "Operation", "Coin", "Change", "Remark"}

// ReadLedger reads a transaction export from 'r' into a ledger.
//
// The format is CSV with the exact header
// "User_ID,UTC_Time,Account,Operation,Coin,Change,Remark", one account
// change per row, sorted by time. Unknown operations and decreasing
// timestamps are errors, skipping either would silently corrupt the
// accounting.
func ReadLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read export header: %w", err)
	}
	if len(header) != len(ledgerHeader) {
		return nil, fmt.Errorf("invalid export header: %q", strings.Join(header, ","))
	}
	for i, want := range ledgerHeader {
		if header[i] != want {
			return nil, fmt.Errorf("invalid export header: %q", strings.Join(header, ","))
		}
	}

	ledger := NewLedger()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read export line %d: %w", line, err)
		}
		c, err := parseLedgerRow(row)
		if err != nil {
			return nil, fmt.Errorf("export line %d: %w", line, err)
		}
		if err := ledger.Append(c); err != nil {
			return nil, fmt.Errorf("export line %d: %w", line, err)
		}
	}
	return ledger, nil
}

func parseLedgerRow(row []string) (*RawAccountChange, error) {
	if len(row) != len(ledgerHeader) {
		return nil, fmt.Errorf("invalid row: %q", strings.Join(row, ","))
	}
	utcTime, err := ParseTime(row[1])
	if err != nil {
		return nil, err
	}
	account, err := ParseAccountType(row[2])
	if err != nil {
		return nil, err
	}
	op, err := ParseOperation(row[3])
	if err != nil {
		return nil, err
	}
	amount, err := ParseDecimal(row[5])
	if err != nil {
		return nil, fmt.Errorf("invalid change amount: %w", err)
	}
	return NewRawAccountChange(utcTime, account, op, row[4], amount, row[6])
}

// ReadExtraInfo reads user-provided extra information from 'r'.
//
// The format is CSV without a header: timestamp in milliseconds, a
// human readable date (ignored, it is there for the user editing the
// file), the entry type, the asset and the value.
func ReadExtraInfo(r io.Reader) (*ExtraInfo, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	x := NewExtraInfo()
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read extra info line %d: %w", line, err)
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("extra info line %d: need 5 columns, got %d", line, len(row))
		}
		utcTime, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("extra info line %d: invalid timestamp %q", line, row[0])
		}
		typ, err := ParseExtraInfoType(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("extra info line %d: %w", line, err)
		}
		x.Add(&ExtraInfoEntry{
			UTCTime: utcTime,
			Type:    typ,
			Asset:   strings.TrimSpace(row[3]),
			Value:   strings.TrimSpace(row[4]),
		})
	}
	return x, nil
}

// WriteExtraInfo writes extra information to 'w' in the format
// ReadExtraInfo reads, with the redundant human readable date filled
// in.
func WriteExtraInfo(w io.Writer, x *ExtraInfo) error {
	cw := csv.NewWriter(w)
	for _, e := range x.All() {
		row := []string{
			strconv.FormatInt(e.UTCTime, 10),
			FormatTime(e.UTCTime),
			e.Type.String(),
			e.Asset,
			e.Value,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write extra info: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactionLog writes one row per processed transaction to 'w':
// the transaction itself plus the base asset's wallet state and the
// running PNL right after it.
func WriteTransactionLog(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Unix timestamp", "UTC time",
		"Transaction", "Asset", "Amount",
		"Quote currency", "Quote amount",
		"Fee", "Fee currency", "Fee in USDT",
		"Obtain price in USDT", "Transaction PNL in USDT",
		"Amount in wallet", "Avg obtain price in USDT",
		"Running PNL in USDT",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write transaction log: %w", err)
	}
	for _, s := range report.Snapshots() {
		t := s.Transaction()
		row := []string{
			strconv.FormatInt(s.Timestamp(), 10),
			FormatTime(s.Timestamp()),
			t.Type(),
			t.Base(),
			t.BaseAmount().Nice(),
			t.Quote(),
			t.QuoteAmount().Nice(),
			t.FeeAmount().Nice(),
			t.FeeCurrency(),
			t.FeeInUsdt().Nice(),
			t.ObtainPrice().Nice(),
			t.Pnl().Nice(),
			s.Wallet().AssetAmount(t.Base()).Nice(),
			s.Wallet().AvgPrice(t.Base()).Nice(),
			s.RunningPnl().Nice(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write transaction log: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBalanceLog writes one row per processed transaction to 'w' with
// the complete wallet content after it: the timestamp followed by
// amount, asset and average obtain price for every held asset.
func WriteBalanceLog(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Unix timestamp", "UTC time",
		"Balances: amount & asset & average obtain price (for each asset)",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write balance log: %w", err)
	}
	for _, s := range report.Snapshots() {
		row := []string{
			strconv.FormatInt(s.Timestamp(), 10),
			FormatTime(s.Timestamp()),
		}
		wallet := s.Wallet()
		for _, asset := range wallet.Assets() {
			row = append(row,
				wallet.AssetAmount(asset).Nice(),
				asset,
				wallet.AvgPrice(asset).Nice(),
			)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write balance log: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnnualReports writes the year-end summaries to 'w'.
func WriteAnnualReports(w io.Writer, reports []AnnualReport, homeCurrency string) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Date",
		"Annual PNL in USD",
		homeCurrency + "/USD exchange rate",
		"Annual PNL in " + homeCurrency,
		"Held asset value in USD",
		"Held asset value in " + homeCurrency,
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write annual reports: %w", err)
	}
	for _, a := range reports {
		row := []string{
			FormatTime(a.Timestamp),
			a.PnlUsd.Nice(),
			a.ExchangeRate.Nice(),
			a.PnlHome.Nice(),
			a.WalletValueUsd.Nice(),
			a.WalletValueHome.Nice(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write annual reports: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
