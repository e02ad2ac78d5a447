package coinpnl

import "testing"

// d is a helper for tests to create a decimal from a literal.
func d(s string) Decimal { return mustDecimal(s) }

// mustTime is a helper for tests to create a millisecond timestamp from
// an export-formatted literal.
func mustTime(s string) int64 {
	ms, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return ms
}

// leg is one raw change of a test transaction, shortened.
type leg struct {
	op     Operation
	asset  string
	amount string
}

// rawTx builds a raw transaction out of spot-account legs at one time.
func rawTx(t *testing.T, utcTime int64, legs ...leg) *RawTransaction {
	t.Helper()
	raw := NewRawTransaction(utcTime)
	for _, l := range legs {
		c := &RawAccountChange{
			UTCTime:   utcTime,
			Account:   AccountSpot,
			Operation: l.op,
			Asset:     l.asset,
			Amount:    d(l.amount),
		}
		if err := raw.Append(c); err != nil {
			t.Fatalf("append %s %s: %v", l.asset, l.amount, err)
		}
	}
	return raw
}

// clarify builds and clarifies a transaction, failing the test on error.
func clarify(t *testing.T, utcTime int64, legs ...leg) Transaction {
	t.Helper()
	tx, err := rawTx(t, utcTime, legs...).Clarify()
	if err != nil {
		t.Fatalf("clarify: %v", err)
	}
	return tx
}

// process applies transactions in order starting from the empty
// snapshot, failing the test on the first error.
func process(t *testing.T, extra *ExtraInfo, txs ...Transaction) *WalletSnapshot {
	t.Helper()
	if extra == nil {
		extra = NewExtraInfo()
	}
	r := NewReport(extra, "USD", nil)
	for _, tx := range txs {
		if err := r.Process(tx); err != nil {
			t.Fatalf("process %s: %v", tx.Type(), err)
		}
	}
	return r.Current()
}

// processTx clarifies one transaction from legs and applies it to the
// previous snapshot.
func processTx(t *testing.T, prev *WalletSnapshot, extra *ExtraInfoEntry,
	utcTime int64, legs ...leg) *WalletSnapshot {
	t.Helper()
	tx := clarify(t, utcTime, legs...)
	next, err := tx.Process(prev, extra)
	if err != nil {
		t.Fatalf("process %s: %v", tx.Type(), err)
	}
	return next
}

// priceEntry builds an asset price extra info entry.
func priceEntry(utcTime int64, asset, price string) *ExtraInfoEntry {
	return &ExtraInfoEntry{UTCTime: utcTime, Type: AssetPrice, Asset: asset, Value: price}
}

// seedSnapshot builds a starting snapshot holding the given
// asset/amount/price triples.
func seedSnapshot(t *testing.T, triples ...string) *WalletSnapshot {
	t.Helper()
	if len(triples)%3 != 0 {
		t.Fatal("seedSnapshot needs asset/amount/price triples")
	}
	ws := EmptySnapshot()
	for i := 0; i < len(triples); i += 3 {
		if err := ws.Wallet().AddAsset(triples[i], d(triples[i+1]), d(triples[i+2])); err != nil {
			t.Fatalf("seed %s: %v", triples[i], err)
		}
	}
	return ws
}

// wantState checks the per-transaction PNL, the running PNL and the
// complete wallet content as amount/asset/price triples.
func wantState(t *testing.T, ws *WalletSnapshot, pnl, runningPnl string, triples ...string) {
	t.Helper()
	if len(triples)%3 != 0 {
		t.Fatal("wantState needs amount/asset/price triples")
	}
	if got := ws.TransactionPnl(); !got.Equal(d(pnl)) {
		t.Errorf("transaction pnl = %s, want %s", got.Nice(), pnl)
	}
	if got := ws.RunningPnl(); !got.Equal(d(runningPnl)) {
		t.Errorf("running pnl = %s, want %s", got.Nice(), runningPnl)
	}
	if got, want := ws.Wallet().AssetCount(), len(triples)/3; got != want {
		t.Errorf("wallet holds %d assets %v, want %d", got, ws.Wallet().Assets(), want)
	}
	for i := 0; i < len(triples); i += 3 {
		wantBalance(t, ws.Wallet(), triples[i+1], triples[i], triples[i+2])
	}
}

// wantBalance checks one asset's amount and average obtain price.
func wantBalance(t *testing.T, w *Wallet, asset, amount, price string) {
	t.Helper()
	if !w.Has(asset) {
		t.Fatalf("wallet does not hold %s", asset)
	}
	if got := w.AssetAmount(asset); !got.Equal(d(amount)) {
		t.Errorf("%s amount = %s, want %s", asset, got.Nice(), amount)
	}
	if got := w.AvgPrice(asset); !got.Equal(d(price)) {
		t.Errorf("%s avg price = %s, want %s", asset, got.Nice(), price)
	}
}
