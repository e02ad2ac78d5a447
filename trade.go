package coinpnl

import "fmt"

// BuyTransaction acquires an asset against USDT on the spot market.
type BuyTransaction struct {
	baseTx
}

func newBuyTransaction(raw *RawTransaction, bought, sold, fee *RawAccountChange) (*BuyTransaction, error) {
	t := &BuyTransaction{baseTx{
		raw:         raw,
		base:        bought.Asset,
		baseAmount:  bought.Amount,
		quote:       sold.Asset,
		quoteAmount: sold.Amount,
	}}
	t.setFee(fee)
	return t, nil
}

func (t *BuyTransaction) Type() string { return "Buy" }

func (t *BuyTransaction) String() string {
	return fmt.Sprintf("Buy %s %s/%s @ %s",
		t.baseAmount.Nice(), t.base, t.quote, FormatTime(t.raw.utcTime))
}

func (t *BuyTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	w := next.Wallet()
	t.calculateFeeInUsdt(w)

	if t.quote != QuoteCurrency {
		return nil, fmt.Errorf("buy in market %s/%s not supported, quote must be %s",
			t.base, t.quote, QuoteCurrency)
	}

	switch {
	case t.feeCurrency == "" || t.feeCurrency == QuoteCurrency:
		return t.processWithQuoteFee(next)
	case t.feeCurrency == t.base && t.feeInUsdt.IsZero():
		// fee paid in the bought asset which is not held yet: the first
		// acquisition of that asset
		return t.processFirstAcquisition(next)
	default:
		return t.processWithHeldFee(next)
	}
}

// processWithQuoteFee handles a fee charged in USDT (or no fee at all):
// the fee is part of the money spent to obtain the asset.
func (t *BuyTransaction) processWithQuoteFee(next *WalletSnapshot) (*WalletSnapshot, error) {
	usdtUsed := t.quoteAmount.Add(t.feeInUsdt).Negate()
	if err := next.Wallet().DecreaseAsset(QuoteCurrency, usdtUsed); err != nil {
		return nil, err
	}
	price, err := usdtUsed.Div(t.baseAmount)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, price); err != nil {
		return nil, err
	}
	return next, nil
}

// processFirstAcquisition handles a fee charged in the bought asset when
// nothing of it is held yet: the quote spent is pro-rated over the net
// amount received after fee.
func (t *BuyTransaction) processFirstAcquisition(next *WalletSnapshot) (*WalletSnapshot, error) {
	w := next.Wallet()
	quoteUsed := t.quoteAmount.Negate()
	if err := w.DecreaseAsset(t.quote, quoteUsed); err != nil {
		return nil, err
	}
	quoteObtainPrice := w.AvgPrice(t.quote)

	obtained := t.baseAmount.Sub(t.fee.Negate())
	ratio, err := quoteUsed.Div(obtained)
	if err != nil {
		return nil, err
	}
	price := ratio.Mul(quoteObtainPrice)
	t.obtainPrice = price
	t.feeInUsdt = t.fee.Mul(price)
	if err := w.AddAsset(t.base, obtained, price); err != nil {
		return nil, err
	}
	return next, nil
}

// processWithHeldFee handles a fee charged in an asset already held (the
// bought asset itself or a third one): the fee's USDT value raises the
// obtain price, the fee asset is decreased at its existing average price.
func (t *BuyTransaction) processWithHeldFee(next *WalletSnapshot) (*WalletSnapshot, error) {
	w := next.Wallet()
	usdtUsed := t.quoteAmount.Negate()
	if err := w.DecreaseAsset(t.quote, usdtUsed); err != nil {
		return nil, err
	}
	usdtValue := usdtUsed.Add(t.feeInUsdt.Negate())
	price, err := usdtValue.Div(t.baseAmount)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price
	if err := w.AddAsset(t.base, t.baseAmount, price); err != nil {
		return nil, err
	}
	if err := w.DecreaseAsset(t.feeCurrency, t.fee.Negate()); err != nil {
		return nil, err
	}
	return next, nil
}

// SellTransaction disposes of an asset for USDT. Only trades where USDT
// was obtained count as sells: that is the only moment profit or loss in
// USDT can be realized.
type SellTransaction struct {
	baseTx
}

func newSellTransaction(raw *RawTransaction, sold, bought, fee *RawAccountChange) (*SellTransaction, error) {
	if bought.Asset != QuoteCurrency {
		return nil, fmt.Errorf("sell at %s must obtain %s, got %s",
			FormatTime(raw.utcTime), QuoteCurrency, bought.Asset)
	}
	t := &SellTransaction{baseTx{
		raw:         raw,
		base:        sold.Asset,
		baseAmount:  sold.Amount,
		quote:       QuoteCurrency,
		quoteAmount: bought.Amount,
	}}
	t.setFee(fee)
	return t, nil
}

func (t *SellTransaction) Type() string { return "Sell" }

func (t *SellTransaction) String() string {
	return fmt.Sprintf("Sell %s %s/%s @ %s",
		t.baseAmount.Nice(), t.base, t.quote, FormatTime(t.raw.utcTime))
}

func (t *SellTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	w := next.Wallet()
	t.calculateFeeInUsdt(w)

	received := t.quoteAmount.Add(t.feeInUsdt) // fee is negative
	invested := t.baseAmount.Negate().Mul(w.AvgPrice(t.base))
	t.pnl = received.Sub(invested)
	next.AddPnl(t.pnl)
	t.obtainPrice = w.AvgPrice(t.base)

	if err := w.AddAsset(QuoteCurrency, t.quoteAmount, One); err != nil {
		return nil, err
	}
	if err := w.DecreaseAsset(t.base, t.baseAmount.Negate()); err != nil {
		return nil, err
	}
	if !t.fee.IsZero() {
		if err := w.DecreaseAsset(t.feeCurrency, t.fee.Negate()); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// CoinToCoinTransaction trades one non-USDT asset directly for another.
// No profit is realized: the cost basis of the sold asset, plus the fee,
// is carried over into the bought one.
type CoinToCoinTransaction struct {
	baseTx
}

func newCoinToCoinTransaction(raw *RawTransaction, bought, sold, fee *RawAccountChange) (*CoinToCoinTransaction, error) {
	t := &CoinToCoinTransaction{baseTx{
		raw:         raw,
		base:        bought.Asset,
		baseAmount:  bought.Amount,
		quote:       sold.Asset,
		quoteAmount: sold.Amount,
	}}
	t.setFee(fee)
	return t, nil
}

func (t *CoinToCoinTransaction) Type() string { return "Coin to coin" }

func (t *CoinToCoinTransaction) String() string {
	return fmt.Sprintf("CC %s %s -> %s %s @ %s", t.quoteAmount.Nice(), t.quote,
		t.baseAmount.Nice(), t.base, FormatTime(t.raw.utcTime))
}

func (t *CoinToCoinTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	w := next.Wallet()
	t.calculateFeeInUsdt(w)

	usdUsed := t.quoteAmount.Negate().Mul(w.AvgPrice(t.quote))
	usdUsed = usdUsed.Add(t.feeInUsdt.Negate())
	price, err := usdUsed.Div(t.baseAmount)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price
	if err := w.AddAsset(t.base, t.baseAmount, price); err != nil {
		return nil, err
	}
	if err := w.DecreaseAsset(t.quote, t.quoteAmount.Negate()); err != nil {
		return nil, err
	}
	if !t.fee.IsZero() {
		if err := w.DecreaseAsset(t.feeCurrency, t.fee.Negate()); err != nil {
			return nil, err
		}
	}
	return next, nil
}
