package coinpnl

import (
	"fmt"
	"sort"
	"strings"
)

// QuoteCurrency is the stable currency all cost bases, prices and PNL
// figures are expressed in.
const QuoteCurrency = "USDT"

var usdLikeAssets = map[string]bool{
	"USD":  true,
	"USDT": true,
	"BUSD": true,
	"USDC": true,
}

// IsUsdLike reports whether an asset is pegged to (or is) the US dollar,
// so its price is definitionally 1.
func IsUsdLike(asset string) bool { return usdLikeAssets[asset] }

var fiatCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CHF": true,
	"NOK": true, "SEK": true, "DKK": true, "PLN": true,
	"RUB": true, "UAH": true,
}

func IsFiat(asset string) bool { return fiatCurrencies[asset] }

// Transaction is one clarified ledger transaction. Each kind carries the
// accounting rule that turns the previous wallet snapshot into the next.
type Transaction interface {
	UtcTime() int64
	// Type is the human readable transaction kind, as shown in reports.
	Type() string

	Base() string
	BaseAmount() Decimal
	Quote() string
	QuoteAmount() Decimal
	FeeAmount() Decimal
	FeeCurrency() string
	// FeeInUsdt is the fee converted into USDT, set by Process.
	FeeInUsdt() Decimal
	// Pnl is the profit or loss realized by this transaction, set by
	// Process.
	Pnl() Decimal
	// ObtainPrice is the base asset's acquisition (or realization) price
	// in USDT, set by Process.
	ObtainPrice() Decimal

	// NecessaryExtraInfo describes the user-provided entry this
	// transaction needs to be processed, nil when self-sufficient.
	NecessaryExtraInfo() *ExtraInfoEntry

	// Process applies the transaction to the previous snapshot and
	// returns the new one. The previous snapshot is never mutated.
	Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error)
}

// RawTransaction groups the raw account changes sharing one timestamp,
// keyed by operation kind, before clarification.
type RawTransaction struct {
	utcTime int64
	changes map[Operation][]*RawAccountChange
}

func NewRawTransaction(utcTime int64) *RawTransaction {
	return &RawTransaction{
		utcTime: utcTime,
		changes: make(map[Operation][]*RawAccountChange),
	}
}

// Append adds a raw change to the group. All changes must share the
// group's timestamp.
func (t *RawTransaction) Append(c *RawAccountChange) error {
	if c.UTCTime != t.utcTime {
		return fmt.Errorf("change at %s appended to transaction at %s",
			FormatTime(c.UTCTime), FormatTime(t.utcTime))
	}
	t.changes[c.Operation] = append(t.changes[c.Operation], c)
	return nil
}

func (t *RawTransaction) UtcTime() int64 { return t.utcTime }

func (t *RawTransaction) count(op Operation) int { return len(t.changes[op]) }

func (t *RawTransaction) first(op Operation) *RawAccountChange {
	if cs := t.changes[op]; len(cs) > 0 {
		return cs[0]
	}
	return nil
}

func (t *RawTransaction) changesOf(op Operation) []*RawAccountChange {
	return t.changes[op]
}

// consistsOf reports whether the group contains exactly the given
// operations with the given counts and nothing else.
func (t *RawTransaction) consistsOf(counts map[Operation]int) bool {
	if len(t.changes) != len(counts) {
		return false
	}
	for op, n := range counts {
		if t.count(op) != n {
			return false
		}
	}
	return true
}

// onlyAmong reports whether every change belongs to one of the given
// operations.
func (t *RawTransaction) onlyAmong(ops ...Operation) bool {
	allowed := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		allowed[op] = true
	}
	for op := range t.changes {
		if !allowed[op] {
			return false
		}
	}
	return true
}

// multiset renders the operation counts for classification errors.
func (t *RawTransaction) multiset() string {
	var parts []string
	for op, cs := range t.changes {
		parts = append(parts, fmt.Sprintf("%s x %d", op, len(cs)))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// mergedFirst folds all changes of an operation into one. Used on trade
// legs the export split into parts.
func (t *RawTransaction) mergedFirst(op Operation) (*RawAccountChange, error) {
	cs := t.changes[op]
	if len(cs) == 0 {
		return nil, nil
	}
	if len(cs) == 1 {
		return cs[0], nil
	}
	return MergeChanges(cs)
}

// Clarify finds out what kind of transaction the grouped changes form:
// deposit, withdrawal, buy, savings interest, dust transfer, etc.
func (t *RawTransaction) Clarify() (Transaction, error) {
	switch {
	case t.consistsOf(map[Operation]int{OpDeposit: 1}),
		t.consistsOf(map[Operation]int{OpFiatDeposit: 1}):
		return newDepositTransaction(t)
	case t.count(OpBuy) >= 1 && t.count(OpSell) >= 1 && t.onlyAmong(OpBuy, OpSell, OpFee):
		return t.clarifyTrade()
	case t.consistsOf(map[Operation]int{OpWithdraw: 1}):
		return newWithdrawTransaction(t)
	case t.consistsOf(map[Operation]int{OpEarnSubscription: 1}),
		t.consistsOf(map[Operation]int{OpSavingsDistribution: 1}):
		return newSavingsSubscriptionTransaction(t)
	case t.consistsOf(map[Operation]int{OpEarnRedemption: 1}):
		return newSavingsRedemptionTransaction(t)
	case t.consistsOf(map[Operation]int{OpEarnInterest: 1}):
		return newSavingsInterestTransaction(t)
	case t.consistsOf(map[Operation]int{OpCashbackVoucher: 1}):
		return newCashbackTransaction(t)
	case t.consistsOf(map[Operation]int{OpCommissionRebate: 1}):
		return newCommissionTransaction(t)
	case t.consistsOf(map[Operation]int{OpBnbVaultRewards: 1}):
		return newRewardTransaction(t)
	case t.consistsOf(map[Operation]int{OpDistribution: 1}):
		return newDistributionTransaction(t)
	case t.count(OpSmallAssetsExchange) >= 2 && t.onlyAmong(OpSmallAssetsExchange):
		return newDustCollectionTransaction(t)
	case t.count(OpBuyCrypto) >= 2 && t.onlyAmong(OpBuyCrypto):
		return newCardPurchaseTransaction(t)
	case t.consistsOf(map[Operation]int{OpConvert: 2}):
		return newCurrencyExchangeTransaction(t)
	case t.count(OpAutoInvest) >= 1 && t.onlyAmong(OpAutoInvest):
		return newAutoInvestTransaction(t)
	}
	return nil, fmt.Errorf("cannot classify transaction at %s: %s",
		FormatTime(t.utcTime), t.multiset())
}

// clarifyTrade merges split legs and decides the trade direction.
func (t *RawTransaction) clarifyTrade() (Transaction, error) {
	bought, err := t.mergedFirst(OpBuy)
	if err != nil {
		return nil, err
	}
	sold, err := t.mergedFirst(OpSell)
	if err != nil {
		return nil, err
	}
	fee, err := t.mergedFirst(OpFee)
	if err != nil {
		return nil, err
	}
	switch {
	case bought.Asset == QuoteCurrency:
		// sold an asset in an X/USDT market
		return newSellTransaction(t, sold, bought, fee)
	case sold.Asset == "USDT" || sold.Asset == "BUSD" || sold.Asset == "TUSD":
		return newBuyTransaction(t, bought, sold, fee)
	case bought.Asset == "BTC":
		// bought in a BTC/X market
		return newBuyTransaction(t, bought, sold, fee)
	}
	return newCoinToCoinTransaction(t, bought, sold, fee)
}

// baseTx carries the fields every clarified transaction shares.
type baseTx struct {
	raw *RawTransaction

	base        string
	baseAmount  Decimal
	quote       string
	quoteAmount Decimal
	fee         Decimal
	feeCurrency string

	// set during Process
	feeInUsdt   Decimal
	obtainPrice Decimal
	pnl         Decimal
}

func (t *baseTx) UtcTime() int64       { return t.raw.utcTime }
func (t *baseTx) Base() string         { return t.base }
func (t *baseTx) BaseAmount() Decimal  { return t.baseAmount }
func (t *baseTx) Quote() string        { return t.quote }
func (t *baseTx) QuoteAmount() Decimal { return t.quoteAmount }
func (t *baseTx) FeeAmount() Decimal   { return t.fee }
func (t *baseTx) FeeCurrency() string  { return t.feeCurrency }
func (t *baseTx) FeeInUsdt() Decimal   { return t.feeInUsdt }
func (t *baseTx) Pnl() Decimal         { return t.pnl }
func (t *baseTx) ObtainPrice() Decimal { return t.obtainPrice }

func (t *baseTx) NecessaryExtraInfo() *ExtraInfoEntry { return nil }

func (t *baseTx) setFee(fee *RawAccountChange) {
	if fee == nil {
		return
	}
	t.fee = fee.Amount
	t.feeCurrency = fee.Asset
}

// calculateFeeInUsdt converts the (negative) fee into USDT: directly when
// the fee is already USDT, through the wallet's average obtain price of
// the fee asset otherwise.
func (t *baseTx) calculateFeeInUsdt(w *Wallet) {
	switch {
	case t.fee.IsZero():
		t.feeInUsdt = Zero
	case t.feeCurrency == QuoteCurrency:
		t.feeInUsdt = t.fee
	default:
		t.feeInUsdt = t.fee.Mul(w.AvgPrice(t.feeCurrency))
	}
}

// priceHint builds the "needed extra info" entry for an asset price at
// the transaction's time.
func (t *baseTx) priceHint(asset string) *ExtraInfoEntry {
	return &ExtraInfoEntry{
		UTCTime: t.raw.utcTime,
		Type:    AssetPrice,
		Asset:   asset,
		Value:   fmt.Sprintf("<%s price in USD on %s>", asset, FormatTime(t.raw.utcTime)),
	}
}
