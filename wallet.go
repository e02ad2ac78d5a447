package coinpnl

import (
	"fmt"
	"sort"
)

// AssetBalance is the held amount of one asset together with the average
// price, in USDT, paid to obtain it.
type AssetBalance struct {
	Amount Decimal
	Price  Decimal
}

// Wallet tracks the balance of every held asset under the average-cost
// model. The zero value is not usable, use NewWallet.
type Wallet struct {
	assets map[string]AssetBalance
}

func NewWallet() *Wallet {
	return &Wallet{assets: make(map[string]AssetBalance)}
}

// AddAsset increases the balance of an asset obtained at the given unit
// price. The recorded average price becomes the amount-weighted average
// of the existing balance and the new acquisition.
func (w *Wallet) AddAsset(asset string, amount, price Decimal) error {
	b, held := w.assets[asset]
	if !held {
		w.assets[asset] = AssetBalance{Amount: amount, Price: price}
		return nil
	}
	total := b.Amount.Add(amount)
	cost := b.Amount.Mul(b.Price).Add(amount.Mul(price))
	avg, err := cost.Div(total)
	if err != nil {
		return fmt.Errorf("cannot average obtain price of %s: %w", asset, err)
	}
	w.assets[asset] = AssetBalance{Amount: total, Price: avg}
	return nil
}

// DecreaseAsset lowers the balance of an asset. The average price is
// untouched, a disposal does not change the cost of what remains. An
// exactly exhausted asset is removed, going below zero is an error.
func (w *Wallet) DecreaseAsset(asset string, amount Decimal) error {
	b, held := w.assets[asset]
	if !held {
		return fmt.Errorf("cannot decrease %s: not held", asset)
	}
	rest := b.Amount.Sub(amount)
	if rest.IsNegative() {
		return fmt.Errorf("cannot decrease %s by %s: only %s held",
			asset, amount.Nice(), b.Amount.Nice())
	}
	if rest.IsZero() {
		delete(w.assets, asset)
		return nil
	}
	w.assets[asset] = AssetBalance{Amount: rest, Price: b.Price}
	return nil
}

// AssetAmount returns the held amount of an asset, zero when not held.
func (w *Wallet) AssetAmount(asset string) Decimal {
	return w.assets[asset].Amount
}

// AvgPrice returns the average obtain price of an asset, zero when
// not held.
func (w *Wallet) AvgPrice(asset string) Decimal {
	return w.assets[asset].Price
}

func (w *Wallet) Has(asset string) bool {
	_, held := w.assets[asset]
	return held
}

func (w *Wallet) AssetCount() int { return len(w.assets) }

// Assets returns the held asset names in lexical order.
func (w *Wallet) Assets() []string {
	names := make([]string, 0, len(w.assets))
	for a := range w.assets {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// Copy returns an independent deep copy of the wallet.
func (w *Wallet) Copy() *Wallet {
	c := NewWallet()
	for a, b := range w.assets {
		c.assets[a] = b
	}
	return c
}

// Diff returns, per asset, how this wallet differs from an earlier one:
// the change in amount and in average price. Assets that did not change
// are left out.
func (w *Wallet) Diff(earlier *Wallet) map[string]AssetBalance {
	diff := make(map[string]AssetBalance)
	seen := make(map[string]bool)
	for a, b := range w.assets {
		seen[a] = true
		prev := earlier.assets[a]
		d := AssetBalance{
			Amount: b.Amount.Sub(prev.Amount),
			Price:  b.Price.Sub(prev.Price),
		}
		if !d.Amount.IsZero() || !d.Price.IsZero() {
			diff[a] = d
		}
	}
	for a, prev := range earlier.assets {
		if seen[a] {
			continue
		}
		diff[a] = AssetBalance{Amount: prev.Amount.Negate(), Price: prev.Price.Negate()}
	}
	return diff
}
