package coinpnl

import "testing"

func TestExtraInfoAddReplacesSameKey(t *testing.T) {
	x := NewExtraInfo()
	x.Add(priceEntry(1000, "LTC", "72"))
	x.Add(priceEntry(1000, "LTC", "73"))
	if x.Len() != 1 {
		t.Fatalf("len = %d, want 1 after replacement", x.Len())
	}
	if got := x.GetAssetPrice(1000, "LTC"); got == nil || got.Value != "73" {
		t.Errorf("got %v, want the replacing entry", got)
	}
}

func TestExtraInfoKeepsDistinctAssetsAtSameTime(t *testing.T) {
	x := NewExtraInfo()
	x.Add(priceEntry(1000, "LTC", "72"))
	x.Add(priceEntry(1000, "NOK", "0.1"))
	if x.Len() != 2 {
		t.Fatalf("len = %d, want 2", x.Len())
	}
	if got := x.GetAssetPrice(1000, "NOK"); got == nil || got.Value != "0.1" {
		t.Errorf("NOK lookup = %v", got)
	}
	if got := x.GetAssetPrice(1000, "LTC"); got == nil || got.Value != "72" {
		t.Errorf("LTC lookup = %v", got)
	}
	if got := x.GetAssetPrice(1000, "BTC"); got != nil {
		t.Errorf("BTC lookup = %v, want nil", got)
	}
}

func TestExtraInfoGetByType(t *testing.T) {
	x := NewExtraInfo()
	x.Add(&ExtraInfoEntry{UTCTime: 1000, Type: AutoInvestProportions, Asset: "BTC|ETH", Value: "0.5|0.5"})
	if got := x.Get(1000, AutoInvestProportions); got == nil || got.Asset != "BTC|ETH" {
		t.Errorf("proportions lookup = %v", got)
	}
	if got := x.Get(1000, AssetPrice); got != nil {
		t.Errorf("price lookup = %v, want nil", got)
	}
	if got := x.Get(2000, AutoInvestProportions); got != nil {
		t.Errorf("lookup at other time = %v, want nil", got)
	}
}

func TestExtraInfoContains(t *testing.T) {
	x := NewExtraInfo()
	x.Add(priceEntry(1000, "LTC", "72"))
	if !x.Contains(priceEntry(1000, "LTC", "<any value>")) {
		t.Error("provided entry reported missing")
	}
	if x.Contains(priceEntry(2000, "LTC", "72")) {
		t.Error("entry at another time reported present")
	}
	if x.Contains(&ExtraInfoEntry{UTCTime: 1000, Type: AutoInvestProportions}) {
		t.Error("entry of another type reported present")
	}
}

func TestExtraInfoAllIsTimeOrdered(t *testing.T) {
	x := NewExtraInfo()
	x.Add(priceEntry(3000, "LTC", "73"))
	x.Add(priceEntry(1000, "LTC", "71"))
	x.Add(priceEntry(2000, "LTC", "72"))
	all := x.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].UTCTime > all[i].UTCTime {
			t.Fatalf("entries out of order: %d before %d", all[i-1].UTCTime, all[i].UTCTime)
		}
	}
}

func TestParseExtraInfoType(t *testing.T) {
	tests := []struct {
		in      string
		want    ExtraInfoType
		wantErr bool
	}{
		{in: "ASSET_PRICE", want: AssetPrice},
		{in: "AUTO_INVEST_PROPORTIONS", want: AutoInvestProportions},
		{in: "asset_price", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseExtraInfoType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseExtraInfoType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseExtraInfoType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
