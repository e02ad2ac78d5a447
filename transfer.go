package coinpnl

import "fmt"

// DepositTransaction moves an asset into the exchange account. The
// obtain price cannot be derived from the ledger: USD-like assets enter
// at 1, everything else needs a user-provided price.
type DepositTransaction struct {
	baseTx
}

func newDepositTransaction(raw *RawTransaction) (*DepositTransaction, error) {
	deposit := raw.first(OpDeposit)
	if deposit == nil {
		deposit = raw.first(OpFiatDeposit)
	}
	if deposit == nil {
		return nil, fmt.Errorf("deposit at %s without a deposit change", FormatTime(raw.utcTime))
	}
	return &DepositTransaction{baseTx{
		raw:        raw,
		base:       deposit.Asset,
		baseAmount: deposit.Amount,
	}}, nil
}

func (t *DepositTransaction) Type() string { return "Deposit" }

func (t *DepositTransaction) String() string {
	return fmt.Sprintf("Deposit %s %s @ %s",
		t.baseAmount.Nice(), t.base, FormatTime(t.raw.utcTime))
}

func (t *DepositTransaction) NecessaryExtraInfo() *ExtraInfoEntry {
	if IsUsdLike(t.base) {
		return nil
	}
	return t.priceHint(t.base)
}

func (t *DepositTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	price, err := t.externalPrice(extra)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price
	next := prev.PrepareNext(t)
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, price); err != nil {
		return nil, err
	}
	return next, nil
}

func (t *baseTx) externalPrice(extra *ExtraInfoEntry) (Decimal, error) {
	if IsUsdLike(t.base) {
		return One, nil
	}
	if extra == nil {
		return Zero, fmt.Errorf("%s price at %s must be provided",
			t.base, FormatTime(t.raw.utcTime))
	}
	return ParseDecimal(extra.Value)
}

// WithdrawTransaction moves an asset out of the exchange account,
// realizing profit or loss against its cost basis at the withdrawal-day
// price.
type WithdrawTransaction struct {
	baseTx
}

func newWithdrawTransaction(raw *RawTransaction) (*WithdrawTransaction, error) {
	withdraw := raw.first(OpWithdraw)
	if withdraw == nil {
		return nil, fmt.Errorf("withdrawal at %s without a withdraw change", FormatTime(raw.utcTime))
	}
	return &WithdrawTransaction{baseTx{
		raw:        raw,
		base:       withdraw.Asset,
		baseAmount: withdraw.Amount,
	}}, nil
}

func (t *WithdrawTransaction) Type() string { return "Withdraw" }

func (t *WithdrawTransaction) String() string {
	return fmt.Sprintf("Withdraw %s %s @ %s",
		t.baseAmount.Nice(), t.base, FormatTime(t.raw.utcTime))
}

func (t *WithdrawTransaction) NecessaryExtraInfo() *ExtraInfoEntry {
	if IsUsdLike(t.base) {
		return nil
	}
	return t.priceHint(t.base)
}

func (t *WithdrawTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	realization, err := t.externalPrice(extra)
	if err != nil {
		return nil, err
	}
	next := prev.PrepareNext(t)
	w := next.Wallet()

	amount := t.baseAmount.Negate()
	t.obtainPrice = w.AvgPrice(t.base)
	invested := t.obtainPrice.Mul(amount)
	received := realization.Mul(amount)
	t.pnl = received.Sub(invested)
	next.AddPnl(t.pnl)

	if err := w.DecreaseAsset(t.base, amount); err != nil {
		return nil, err
	}
	return next, nil
}

// CardPurchaseTransaction buys crypto with a bank card: a fiat amount
// appears and disappears again, and the coin arrives. The wallet only
// ever sees the coin.
type CardPurchaseTransaction struct {
	baseTx
}

func newCardPurchaseTransaction(raw *RawTransaction) (*CardPurchaseTransaction, error) {
	var coin, fiatIn, fiatOut *RawAccountChange
	for _, c := range raw.changesOf(OpBuyCrypto) {
		switch {
		case !IsFiat(c.Asset):
			if coin == nil {
				coin = c
			}
		case c.Amount.IsPositive():
			if fiatIn == nil {
				fiatIn = c
			}
		default:
			if fiatOut == nil {
				fiatOut = c
			}
		}
	}
	if coin == nil {
		return nil, fmt.Errorf("card purchase at %s without a coin change", FormatTime(raw.utcTime))
	}
	if fiatIn == nil || fiatOut == nil {
		return nil, fmt.Errorf("card purchase at %s must contain positive and negative fiat changes",
			FormatTime(raw.utcTime))
	}
	if !fiatIn.Amount.Equal(fiatOut.Amount.Negate()) {
		return nil, fmt.Errorf("card purchase fiat amounts do not match: %s vs %s",
			fiatIn.Amount.Nice(), fiatOut.Amount.Nice())
	}
	return &CardPurchaseTransaction{baseTx{
		raw:         raw,
		base:        coin.Asset,
		baseAmount:  coin.Amount,
		quote:       fiatOut.Asset,
		quoteAmount: fiatOut.Amount,
	}}, nil
}

func (t *CardPurchaseTransaction) Type() string { return "Card purchase" }

func (t *CardPurchaseTransaction) String() string {
	return fmt.Sprintf("Card purchase %s %s for %s %s @ %s", t.baseAmount.Nice(), t.base,
		t.quoteAmount.Negate().Nice(), t.quote, FormatTime(t.raw.utcTime))
}

func (t *CardPurchaseTransaction) NecessaryExtraInfo() *ExtraInfoEntry {
	if IsUsdLike(t.quote) {
		return nil
	}
	return t.priceHint(t.quote)
}

func (t *CardPurchaseTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	fiatPrice := One
	if !IsUsdLike(t.quote) {
		if extra == nil {
			return nil, fmt.Errorf("%s price at %s must be provided",
				t.quote, FormatTime(t.raw.utcTime))
		}
		var err error
		fiatPrice, err = ParseDecimal(extra.Value)
		if err != nil {
			return nil, err
		}
	}
	usdSpent := t.quoteAmount.Negate().Mul(fiatPrice)
	price, err := usdSpent.Div(t.baseAmount)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price
	next := prev.PrepareNext(t)
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, price); err != nil {
		return nil, err
	}
	return next, nil
}

// CurrencyExchangeTransaction converts one currency directly into
// another through the exchange's convert feature.
type CurrencyExchangeTransaction struct {
	baseTx
}

func newCurrencyExchangeTransaction(raw *RawTransaction) (*CurrencyExchangeTransaction, error) {
	legs := raw.changesOf(OpConvert)
	buy, sell := legs[0], legs[1]
	if !buy.Amount.IsPositive() {
		buy, sell = sell, buy
	}
	if !buy.Amount.IsPositive() {
		return nil, fmt.Errorf("exchange at %s must contain a positive leg", FormatTime(raw.utcTime))
	}
	if !sell.Amount.IsNegative() {
		return nil, fmt.Errorf("exchange at %s must contain a negative leg", FormatTime(raw.utcTime))
	}
	return &CurrencyExchangeTransaction{baseTx{
		raw:         raw,
		base:        buy.Asset,
		baseAmount:  buy.Amount,
		quote:       sell.Asset,
		quoteAmount: sell.Amount,
	}}, nil
}

func (t *CurrencyExchangeTransaction) Type() string { return "Currency exchange" }

func (t *CurrencyExchangeTransaction) String() string {
	return fmt.Sprintf("Exchange %s %s -> %s %s @ %s", t.quoteAmount.Nice(), t.quote,
		t.baseAmount.Nice(), t.base, FormatTime(t.raw.utcTime))
}

func (t *CurrencyExchangeTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	w := next.Wallet()

	cost := t.quoteAmount.Negate().Mul(w.AvgPrice(t.quote))
	if err := w.DecreaseAsset(t.quote, t.quoteAmount.Negate()); err != nil {
		return nil, err
	}
	if IsUsdLike(t.base) {
		// converting into dollars realizes the result against the cost
		// basis of what was given up
		t.pnl = t.baseAmount.Sub(cost)
		next.AddPnl(t.pnl)
		t.obtainPrice = One
	} else {
		price, err := cost.Div(t.baseAmount)
		if err != nil {
			return nil, err
		}
		t.obtainPrice = price
	}
	if err := w.AddAsset(t.base, t.baseAmount, t.obtainPrice); err != nil {
		return nil, err
	}
	return next, nil
}
