package coinpnl

import "fmt"

// SavingsSubscriptionTransaction moves an asset from the spot account
// into the savings (Earn) account. Both accounts belong to the same
// wallet, nothing changes except bookkeeping.
type SavingsSubscriptionTransaction struct {
	baseTx
}

func newSavingsSubscriptionTransaction(raw *RawTransaction) (*SavingsSubscriptionTransaction, error) {
	deposit := raw.first(OpEarnSubscription)
	if deposit == nil {
		deposit = raw.first(OpSavingsDistribution)
	}
	if deposit == nil {
		return nil, fmt.Errorf("savings subscription at %s without a required change",
			FormatTime(raw.utcTime))
	}
	return &SavingsSubscriptionTransaction{baseTx{
		raw:        raw,
		base:       deposit.Asset,
		baseAmount: deposit.Amount,
	}}, nil
}

func (t *SavingsSubscriptionTransaction) Type() string { return "Deposit to savings account" }

func (t *SavingsSubscriptionTransaction) String() string {
	return fmt.Sprintf("Save-subscribe %s %s", t.baseAmount.Nice(), t.base)
}

func (t *SavingsSubscriptionTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	t.obtainPrice = prev.Wallet().AvgPrice(t.base)
	return prev.PrepareNext(t), nil
}

// SavingsRedemptionTransaction moves an asset back from the savings
// account to spot. A wallet no-op, like the subscription.
type SavingsRedemptionTransaction struct {
	baseTx
}

func newSavingsRedemptionTransaction(raw *RawTransaction) (*SavingsRedemptionTransaction, error) {
	withdraw := raw.first(OpEarnRedemption)
	if withdraw == nil {
		return nil, fmt.Errorf("savings redemption at %s without a required change",
			FormatTime(raw.utcTime))
	}
	return &SavingsRedemptionTransaction{baseTx{
		raw:        raw,
		base:       withdraw.Asset,
		baseAmount: withdraw.Amount,
	}}, nil
}

func (t *SavingsRedemptionTransaction) Type() string { return "Withdraw from savings account" }

func (t *SavingsRedemptionTransaction) String() string {
	return fmt.Sprintf("Save-withdraw %s %s", t.baseAmount.Nice(), t.base)
}

func (t *SavingsRedemptionTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	t.obtainPrice = prev.Wallet().AvgPrice(t.base)
	return prev.PrepareNext(t), nil
}

// SavingsInterestTransaction is interest earned on the savings account:
// the asset arrives for free, at obtain price zero.
type SavingsInterestTransaction struct {
	baseTx
}

func newSavingsInterestTransaction(raw *RawTransaction) (*SavingsInterestTransaction, error) {
	interest := raw.first(OpEarnInterest)
	if interest == nil {
		return nil, fmt.Errorf("savings interest at %s without a required change",
			FormatTime(raw.utcTime))
	}
	if interest.Account != AccountEarn {
		return nil, fmt.Errorf("savings interest at %s must be added to the %s account",
			FormatTime(raw.utcTime), AccountEarn)
	}
	return &SavingsInterestTransaction{baseTx{
		raw:        raw,
		base:       interest.Asset,
		baseAmount: interest.Amount,
	}}, nil
}

func (t *SavingsInterestTransaction) Type() string { return "Savings interest" }

func (t *SavingsInterestTransaction) String() string {
	return fmt.Sprintf("Interest %s %s @ %s",
		t.baseAmount.Nice(), t.base, FormatTime(t.raw.utcTime))
}

func (t *SavingsInterestTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, Zero); err != nil {
		return nil, err
	}
	return next, nil
}
