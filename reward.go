package coinpnl

import "fmt"

// freeGrant is the common shape of cashbacks, commission rebates and
// vault rewards: an asset arrives on the spot account at no cost.
type freeGrant struct {
	baseTx
}

func newFreeGrant(raw *RawTransaction, op Operation, what string) (freeGrant, error) {
	grant := raw.first(op)
	if grant == nil {
		return freeGrant{}, fmt.Errorf("%s at %s without a required change",
			what, FormatTime(raw.utcTime))
	}
	if grant.Account != AccountSpot {
		return freeGrant{}, fmt.Errorf("%s at %s must be added to the %s account",
			what, FormatTime(raw.utcTime), AccountSpot)
	}
	return freeGrant{baseTx{
		raw:        raw,
		base:       grant.Asset,
		baseAmount: grant.Amount,
	}}, nil
}

func (t *freeGrant) processGrant(self Transaction, prev *WalletSnapshot) (*WalletSnapshot, error) {
	next := prev.PrepareNext(self)
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, Zero); err != nil {
		return nil, err
	}
	return next, nil
}

// CashbackTransaction is a cashback voucher payout.
type CashbackTransaction struct {
	freeGrant
}

func newCashbackTransaction(raw *RawTransaction) (*CashbackTransaction, error) {
	g, err := newFreeGrant(raw, OpCashbackVoucher, "cashback")
	if err != nil {
		return nil, err
	}
	return &CashbackTransaction{g}, nil
}

func (t *CashbackTransaction) Type() string { return "Cashback" }

func (t *CashbackTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	return t.processGrant(t, prev)
}

// CommissionTransaction is a referral commission rebate.
type CommissionTransaction struct {
	freeGrant
}

func newCommissionTransaction(raw *RawTransaction) (*CommissionTransaction, error) {
	g, err := newFreeGrant(raw, OpCommissionRebate, "commission rebate")
	if err != nil {
		return nil, err
	}
	return &CommissionTransaction{g}, nil
}

func (t *CommissionTransaction) Type() string { return "Commission" }

func (t *CommissionTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	return t.processGrant(t, prev)
}

// RewardTransaction is a BNB vault reward payout.
type RewardTransaction struct {
	freeGrant
}

func newRewardTransaction(raw *RawTransaction) (*RewardTransaction, error) {
	g, err := newFreeGrant(raw, OpBnbVaultRewards, "vault reward")
	if err != nil {
		return nil, err
	}
	return &RewardTransaction{g}, nil
}

func (t *RewardTransaction) Type() string { return "Reward" }

func (t *RewardTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	return t.processGrant(t, prev)
}

// DistributionTransaction is an asset grant by the exchange (airdrop,
// token migration). A negative amount reverses an earlier grant.
type DistributionTransaction struct {
	baseTx
}

func newDistributionTransaction(raw *RawTransaction) (*DistributionTransaction, error) {
	distribution := raw.first(OpDistribution)
	if distribution == nil {
		return nil, fmt.Errorf("distribution at %s without a required change",
			FormatTime(raw.utcTime))
	}
	return &DistributionTransaction{baseTx{
		raw:        raw,
		base:       distribution.Asset,
		baseAmount: distribution.Amount,
	}}, nil
}

func (t *DistributionTransaction) Type() string { return "Distribution" }

func (t *DistributionTransaction) String() string {
	return fmt.Sprintf("Distribution %s %s", t.baseAmount.Nice(), t.base)
}

func (t *DistributionTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	next := prev.PrepareNext(t)
	if t.baseAmount.IsNegative() {
		if err := next.Wallet().DecreaseAsset(t.base, t.baseAmount.Negate()); err != nil {
			return nil, err
		}
		return next, nil
	}
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, Zero); err != nil {
		return nil, err
	}
	return next, nil
}
