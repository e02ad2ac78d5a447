package coinpnl

import (
	"reflect"
	"testing"
)

func TestWalletAverageObtainPrice(t *testing.T) {
	type buy struct {
		amount, price string
	}
	buys := []buy{
		{"1.23", "20000"},
		{"1.77", "10000"},
	}
	// the same purchases in either order blend to the same balance
	orders := [][]buy{
		{buys[0], buys[1]},
		{buys[1], buys[0]},
	}
	for _, order := range orders {
		w := NewWallet()
		for _, b := range order {
			if err := w.AddAsset("BTC", mustDecimal(b.amount), mustDecimal(b.price)); err != nil {
				t.Fatal(err)
			}
		}
		if got := w.AssetAmount("BTC"); !got.Equal(mustDecimal("3")) {
			t.Errorf("order %v: amount = %s, want 3", order, got.Nice())
		}
		if got := w.AvgPrice("BTC"); !got.Equal(mustDecimal("14100")) {
			t.Errorf("order %v: avg price = %s, want 14100", order, got.Nice())
		}
	}
}

func TestWalletDecrease(t *testing.T) {
	w := NewWallet()
	if err := w.AddAsset("BTC", mustDecimal("3"), mustDecimal("14100")); err != nil {
		t.Fatal(err)
	}

	if err := w.DecreaseAsset("BTC", mustDecimal("1.88")); err != nil {
		t.Fatal(err)
	}
	if got := w.AssetAmount("BTC"); !got.Equal(mustDecimal("1.12")) {
		t.Errorf("amount = %s, want 1.12", got.Nice())
	}
	// a disposal keeps the average price of what remains
	if got := w.AvgPrice("BTC"); !got.Equal(mustDecimal("14100")) {
		t.Errorf("avg price = %s, want 14100", got.Nice())
	}

	// exact exhaustion removes the asset entirely
	if err := w.DecreaseAsset("BTC", mustDecimal("1.12")); err != nil {
		t.Fatal(err)
	}
	if w.Has("BTC") {
		t.Error("exhausted asset must be removed")
	}
	if got := w.AssetAmount("BTC"); !got.IsZero() {
		t.Errorf("amount = %s, want 0", got.Nice())
	}
	if got := w.AvgPrice("BTC"); !got.IsZero() {
		t.Errorf("avg price = %s, want 0", got.Nice())
	}

	if err := w.DecreaseAsset("BTC", mustDecimal("0.1")); err == nil {
		t.Error("decreasing an asset that is not held must fail")
	}
	if err := w.AddAsset("ETH", mustDecimal("1"), mustDecimal("2000")); err != nil {
		t.Fatal(err)
	}
	if err := w.DecreaseAsset("ETH", mustDecimal("1.5")); err == nil {
		t.Error("decreasing below zero must fail")
	}
}

func TestWalletCopyIsIndependent(t *testing.T) {
	w := NewWallet()
	if err := w.AddAsset("LTC", mustDecimal("2"), mustDecimal("190")); err != nil {
		t.Fatal(err)
	}
	c := w.Copy()
	if err := c.DecreaseAsset("LTC", mustDecimal("2")); err != nil {
		t.Fatal(err)
	}
	if !w.Has("LTC") {
		t.Error("copy must not share state with the original")
	}
}

func TestWalletDiff(t *testing.T) {
	w1 := NewWallet()
	w1.AddAsset("BTC", mustDecimal("1"), mustDecimal("20000"))
	w1.AddAsset("ETH", mustDecimal("10"), mustDecimal("2000"))
	w1.AddAsset("LTC", mustDecimal("5"), mustDecimal("100"))

	w2 := w1.Copy()
	w2.AddAsset("BTC", mustDecimal("1"), mustDecimal("10000"))
	w2.DecreaseAsset("LTC", mustDecimal("5"))
	w2.AddAsset("BNB", mustDecimal("0.1"), mustDecimal("300"))

	got := w2.Diff(w1)
	want := map[string]AssetBalance{
		"BTC": {Amount: mustDecimal("1"), Price: mustDecimal("-5000")},
		"LTC": {Amount: mustDecimal("-5"), Price: mustDecimal("-100")},
		"BNB": {Amount: mustDecimal("0.1"), Price: mustDecimal("300")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("diff = %v, want %v", got, want)
	}
}
