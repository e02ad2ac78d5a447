package coinpnl

import "testing"

func TestNewRawAccountChangeSigns(t *testing.T) {
	tests := []struct {
		op      Operation
		amount  string
		wantErr bool
	}{
		{op: OpBuy, amount: "0.1"},
		{op: OpBuy, amount: "-0.1", wantErr: true},
		{op: OpBuy, amount: "0", wantErr: true},
		{op: OpSell, amount: "-12.52"},
		{op: OpSell, amount: "12.52", wantErr: true},
		{op: OpSell, amount: "0", wantErr: true},
		{op: OpWithdraw, amount: "-1"},
		{op: OpWithdraw, amount: "1", wantErr: true},
		{op: OpDistribution, amount: "-1"},
		{op: OpDistribution, amount: "1"},
		{op: OpFee, amount: "-0.00025"},
	}
	for _, tt := range tests {
		_, err := NewRawAccountChange(1000, AccountSpot, tt.op, "LTC", d(tt.amount), "")
		if (err != nil) != tt.wantErr {
			t.Errorf("%s %s: err = %v, wantErr %v", tt.op, tt.amount, err, tt.wantErr)
		}
	}
}

func TestMergeChanges(t *testing.T) {
	changes := []*RawAccountChange{
		{UTCTime: 1000, Account: AccountSpot, Operation: OpBuy, Asset: "SLP", Amount: d("40")},
		{UTCTime: 1000, Account: AccountSpot, Operation: OpBuy, Asset: "SLP", Amount: d("164")},
		{UTCTime: 1000, Account: AccountSpot, Operation: OpBuy, Asset: "SLP", Amount: d("432")},
	}
	merged, err := MergeChanges(changes)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !merged.Amount.Equal(d("636")) {
		t.Errorf("merged amount = %s, want 636", merged.Amount.Nice())
	}
	if merged.Asset != "SLP" || merged.Operation != OpBuy || merged.UTCTime != 1000 {
		t.Errorf("merged key changed: %s %s at %d", merged.Operation, merged.Asset, merged.UTCTime)
	}
}

func TestMergeChangesSingle(t *testing.T) {
	changes := []*RawAccountChange{
		{UTCTime: 1000, Account: AccountSpot, Operation: OpSell, Asset: "USDT", Amount: d("-49.5656")},
	}
	merged, err := MergeChanges(changes)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !merged.Amount.Equal(d("-49.5656")) {
		t.Errorf("merged amount = %s, want -49.5656", merged.Amount.Nice())
	}
}

func TestMergeChangesHeterogeneous(t *testing.T) {
	tests := []struct {
		name   string
		second *RawAccountChange
	}{
		{"asset", &RawAccountChange{UTCTime: 1000, Account: AccountSpot, Operation: OpBuy, Asset: "BNB", Amount: d("1")}},
		{"operation", &RawAccountChange{UTCTime: 1000, Account: AccountSpot, Operation: OpFee, Asset: "SLP", Amount: d("1")}},
		{"account", &RawAccountChange{UTCTime: 1000, Account: AccountEarn, Operation: OpBuy, Asset: "SLP", Amount: d("1")}},
		{"time", &RawAccountChange{UTCTime: 2000, Account: AccountSpot, Operation: OpBuy, Asset: "SLP", Amount: d("1")}},
	}
	first := &RawAccountChange{UTCTime: 1000, Account: AccountSpot, Operation: OpBuy, Asset: "SLP", Amount: d("1")}
	for _, tt := range tests {
		if _, err := MergeChanges([]*RawAccountChange{first, tt.second}); err == nil {
			t.Errorf("merge with differing %s must fail", tt.name)
		}
	}
}

func TestMergeChangesEmpty(t *testing.T) {
	if _, err := MergeChanges(nil); err == nil {
		t.Error("merging an empty list must fail")
	}
}
