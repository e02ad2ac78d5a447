package coinpnl

import "testing"

func TestEmptySnapshot(t *testing.T) {
	ws := EmptySnapshot()
	if ws.Transaction() != nil {
		t.Error("empty snapshot must carry no transaction")
	}
	if ws.Wallet().AssetCount() != 0 {
		t.Error("empty snapshot must carry an empty wallet")
	}
	if !ws.RunningPnl().IsZero() || !ws.TransactionPnl().IsZero() {
		t.Error("empty snapshot must carry zero PNL")
	}
	if ws.Timestamp() != 0 {
		t.Errorf("empty snapshot timestamp = %d, want 0", ws.Timestamp())
	}
}

func TestPrepareNextIsIndependent(t *testing.T) {
	ws := seedSnapshot(t, "BTC", "1", "20000")
	ws.AddPnl(d("7"))

	tx := clarify(t, 1000, leg{OpDeposit, "USDT", "10"})
	next := ws.PrepareNext(tx)
	if err := next.Wallet().DecreaseAsset("BTC", d("1")); err != nil {
		t.Fatal(err)
	}
	// the earlier snapshot stays untouched
	wantBalance(t, ws.Wallet(), "BTC", "1", "20000")

	if !next.RunningPnl().Equal(d("7")) {
		t.Errorf("running pnl = %s, want carried over 7", next.RunningPnl().Nice())
	}
	if !next.TransactionPnl().IsZero() {
		t.Errorf("transaction pnl = %s, want zeroed", next.TransactionPnl().Nice())
	}
	if next.Transaction() != tx {
		t.Error("prepared snapshot must reference the new transaction")
	}
}

func TestAddPnlAccumulates(t *testing.T) {
	ws := EmptySnapshot()
	ws.AddPnl(d("2.5"))
	ws.AddPnl(d("-1"))
	if !ws.TransactionPnl().Equal(d("1.5")) || !ws.RunningPnl().Equal(d("1.5")) {
		t.Errorf("pnl = %s / %s, want 1.5 / 1.5",
			ws.TransactionPnl().Nice(), ws.RunningPnl().Nice())
	}
}

func TestSnapshotYear(t *testing.T) {
	tx := clarify(t, mustTime("2022-12-31 23:59:59"), leg{OpDeposit, "USDT", "10"})
	ws := EmptySnapshot().PrepareNext(tx)
	if ws.Year() != 2022 {
		t.Errorf("year = %d, want 2022", ws.Year())
	}
}
