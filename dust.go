package coinpnl

import (
	"fmt"
	"sort"
)

// DustCollectionTransaction converts several small residual balances
// into BNB in one sweep. The cost bases of the swept assets are blended
// into the received BNB, no profit is realized.
type DustCollectionTransaction struct {
	baseTx

	// dust amounts per swept asset, negative
	sold map[string]Decimal
}

func newDustCollectionTransaction(raw *RawTransaction) (*DustCollectionTransaction, error) {
	t := &DustCollectionTransaction{
		baseTx: baseTx{raw: raw, quote: "BNB"},
		sold:   make(map[string]Decimal),
	}
	bnbReceived := Zero
	for _, c := range raw.changesOf(OpSmallAssetsExchange) {
		if c.Asset == "BNB" {
			if !c.Amount.IsPositive() {
				return nil, fmt.Errorf("dust collection at %s: BNB amount %s must be positive",
					FormatTime(raw.utcTime), c.Amount.Nice())
			}
			bnbReceived = bnbReceived.Add(c.Amount)
			continue
		}
		if !c.Amount.IsNegative() {
			return nil, fmt.Errorf("dust collection at %s: %s amount %s must be negative",
				FormatTime(raw.utcTime), c.Asset, c.Amount.Nice())
		}
		t.sold[c.Asset] = t.sold[c.Asset].Add(c.Amount)
		if t.base == "" {
			t.base = c.Asset
			t.baseAmount = c.Amount
		}
	}
	if bnbReceived.IsZero() || len(t.sold) == 0 {
		return nil, fmt.Errorf("dust collection at %s must sweep assets into BNB",
			FormatTime(raw.utcTime))
	}
	t.quoteAmount = bnbReceived
	return t, nil
}

func (t *DustCollectionTransaction) Type() string { return "Dust collection" }

func (t *DustCollectionTransaction) String() string {
	return fmt.Sprintf("Dust %d assets -> %s BNB @ %s",
		len(t.sold), t.quoteAmount.Nice(), FormatTime(t.raw.utcTime))
}

// DustAssets returns the swept asset names in lexical order.
func (t *DustCollectionTransaction) DustAssets() []string {
	assets := make([]string, 0, len(t.sold))
	for a := range t.sold {
		assets = append(assets, a)
	}
	sort.Strings(assets)
	return assets
}

func (t *DustCollectionTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	w := next.Wallet()

	totalUsd := Zero
	for _, asset := range t.DustAssets() {
		totalUsd = totalUsd.Add(t.sold[asset].Negate().Mul(w.AvgPrice(asset)))
	}
	price, err := totalUsd.Div(t.quoteAmount)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price

	for _, asset := range t.DustAssets() {
		if err := w.DecreaseAsset(asset, t.sold[asset].Negate()); err != nil {
			return nil, err
		}
	}
	if err := w.AddAsset("BNB", t.quoteAmount, price); err != nil {
		return nil, err
	}
	return next, nil
}
