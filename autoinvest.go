package coinpnl

import (
	"fmt"
	"sort"
	"strings"
)

// AutoInvestSubscription is a recurring investment plan: a fixed USDT
// amount, split over several assets by proportion. The export does not
// describe the plan, it is reconstructed from the stream of auto-invest
// legs and completed from user-provided proportions.
type AutoInvestSubscription struct {
	utcTime     int64
	investment  Decimal
	proportions map[string]Decimal
	acquired    map[string]bool
}

func NewAutoInvestSubscription(utcTime int64, investment Decimal) (*AutoInvestSubscription, error) {
	if !investment.IsPositive() {
		return nil, fmt.Errorf("auto-invest amount must be positive, got %s", investment.Nice())
	}
	return &AutoInvestSubscription{
		utcTime:     utcTime,
		investment:  investment,
		proportions: make(map[string]Decimal),
		acquired:    make(map[string]bool),
	}, nil
}

func (s *AutoInvestSubscription) UtcTime() int64            { return s.utcTime }
func (s *AutoInvestSubscription) InvestmentAmount() Decimal { return s.investment }

// RegisterAcquiredAsset records that an asset was bought under this
// subscription, so the needed-proportions hint can name them all.
func (s *AutoInvestSubscription) RegisterAcquiredAsset(asset string) {
	s.acquired[asset] = true
}

// AcquiredAssets returns the names of the acquired assets in lexical
// order.
func (s *AutoInvestSubscription) AcquiredAssets() []string {
	assets := make([]string, 0, len(s.acquired))
	for a := range s.acquired {
		assets = append(assets, a)
	}
	sort.Strings(assets)
	return assets
}

func (s *AutoInvestSubscription) addAssetProportion(asset string, proportion Decimal) error {
	if _, ok := s.proportions[asset]; ok {
		return fmt.Errorf("proportion for %s already registered", asset)
	}
	s.proportions[asset] = proportion
	return nil
}

// Valid reports whether the proportions are complete: they must sum to
// exactly one.
func (s *AutoInvestSubscription) Valid() bool {
	sum := Zero
	for _, p := range s.proportions {
		sum = sum.Add(p)
	}
	return sum.Equal(One)
}

// TryConfigure completes the subscription from a proportions entry
// ("a|b|c" assets, "p1|p2|p3" values) and reports whether it is valid
// afterwards.
func (s *AutoInvestSubscription) TryConfigure(extra *ExtraInfoEntry) (bool, error) {
	if extra != nil {
		assets := strings.Split(extra.Asset, "|")
		values := strings.Split(extra.Value, "|")
		if len(assets) == 0 || len(assets) != len(values) {
			return false, fmt.Errorf("malformed proportions %q = %q", extra.Asset, extra.Value)
		}
		for i, asset := range assets {
			p, err := ParseDecimal(values[i])
			if err != nil {
				return false, fmt.Errorf("invalid proportion for %s: %w", asset, err)
			}
			if err := s.addAssetProportion(asset, p); err != nil {
				return false, err
			}
		}
	}
	return s.Valid(), nil
}

// InvestmentForAsset returns the USDT amount this subscription puts into
// one asset each cycle.
func (s *AutoInvestSubscription) InvestmentForAsset(asset string) (Decimal, error) {
	p, ok := s.proportions[asset]
	if !ok || !s.Valid() {
		return Zero, fmt.Errorf("subscription at %s cannot determine investment for %s",
			FormatTime(s.utcTime), asset)
	}
	return s.investment.Mul(p), nil
}

// NecessaryExtraInfo is the proportions entry the user must provide for
// this subscription.
func (s *AutoInvestSubscription) NecessaryExtraInfo() *ExtraInfoEntry {
	return &ExtraInfoEntry{
		UTCTime: s.utcTime,
		Type:    AutoInvestProportions,
		Asset:   strings.Join(s.AcquiredAssets(), "|"),
		Value:   "Proportions for assets in format proportion1|proportion2|...",
	}
}

// AutoInvestTransaction is one leg of an auto-invest plan: either the
// USDT spend or the acquisition of one asset. Legs arrive at different
// timestamps and are tied together by a shared subscription.
type AutoInvestTransaction struct {
	baseTx
	sub *AutoInvestSubscription
}

func newAutoInvestTransaction(raw *RawTransaction) (*AutoInvestTransaction, error) {
	change := raw.first(OpAutoInvest)
	t := &AutoInvestTransaction{baseTx: baseTx{raw: raw}}
	switch {
	case change.Asset == QuoteCurrency && change.Amount.IsNegative():
		t.quote = change.Asset
		t.quoteAmount = change.Amount
	case change.Asset != QuoteCurrency && change.Amount.IsPositive():
		t.base = change.Asset
		t.baseAmount = change.Amount
	default:
		return nil, fmt.Errorf("auto-invest at %s is neither invest nor acquire: %s %s",
			FormatTime(raw.utcTime), change.Amount.Nice(), change.Asset)
	}
	return t, nil
}

func (t *AutoInvestTransaction) Type() string { return "Auto-invest" }

func (t *AutoInvestTransaction) String() string {
	if t.IsSpend() {
		return fmt.Sprintf("Auto-invest %s %s @ %s",
			t.quoteAmount.Nice(), t.quote, FormatTime(t.raw.utcTime))
	}
	return fmt.Sprintf("Auto-acquire %s %s @ %s",
		t.baseAmount.Nice(), t.base, FormatTime(t.raw.utcTime))
}

// IsSpend reports whether this leg is the USDT investment, as opposed to
// an asset acquisition.
func (t *AutoInvestTransaction) IsSpend() bool { return t.base == "" }

// BoughtAsset is the acquired asset, empty for the spend leg.
func (t *AutoInvestTransaction) BoughtAsset() string { return t.base }

func (t *AutoInvestTransaction) Subscription() *AutoInvestSubscription { return t.sub }

// SetSubscription binds (or re-binds, when a cycle boundary was resolved
// late) the leg to a subscription.
func (t *AutoInvestTransaction) SetSubscription(s *AutoInvestSubscription) {
	t.sub = s
	if s != nil && t.base != "" {
		s.RegisterAcquiredAsset(t.base)
	}
}

func (t *AutoInvestTransaction) NecessaryExtraInfo() *ExtraInfoEntry {
	if !t.IsSpend() || t.sub == nil || t.sub.utcTime != t.raw.utcTime || t.sub.Valid() {
		return nil
	}
	return t.sub.NecessaryExtraInfo()
}

func (t *AutoInvestTransaction) Process(prev *WalletSnapshot, extra *ExtraInfoEntry) (*WalletSnapshot, error) {
	if t.sub == nil {
		return nil, fmt.Errorf("auto-invest leg at %s has no subscription", FormatTime(t.raw.utcTime))
	}
	next := prev.PrepareNext(t)
	if t.IsSpend() {
		if !t.sub.Valid() && extra != nil {
			if _, err := t.sub.TryConfigure(extra); err != nil {
				return nil, err
			}
		}
		t.obtainPrice = One
		if err := next.Wallet().DecreaseAsset(QuoteCurrency, t.quoteAmount.Negate()); err != nil {
			return nil, err
		}
		return next, nil
	}
	if !t.sub.Valid() {
		ok, err := t.sub.TryConfigure(extra)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("auto-invest proportions at %s must be provided",
				FormatTime(t.sub.utcTime))
		}
	}
	invested, err := t.sub.InvestmentForAsset(t.base)
	if err != nil {
		return nil, err
	}
	price, err := invested.Div(t.baseAmount)
	if err != nil {
		return nil, err
	}
	t.obtainPrice = price
	if err := next.Wallet().AddAsset(t.base, t.baseAmount, price); err != nil {
		return nil, err
	}
	return next, nil
}

// autoInvestCorrelator decides which subscription every auto-invest leg
// belongs to. The export gives no explicit cycle boundaries: a new cycle
// is confirmed only when the next spend leg arrives, so acquisitions are
// buffered and re-bound once the boundary question is resolved.
type autoInvestCorrelator struct {
	sub        *AutoInvestSubscription
	pending    []*AutoInvestTransaction
	prevAssets map[string]bool
}

// register consumes the next auto-invest leg, in ledger order.
func (c *autoInvestCorrelator) register(t *AutoInvestTransaction) error {
	if !t.IsSpend() {
		if c.sub == nil {
			return fmt.Errorf("auto-invest acquisition at %s before any investment",
				FormatTime(t.UtcTime()))
		}
		t.SetSubscription(c.sub)
		c.pending = append(c.pending, t)
		return nil
	}
	if err := c.resolveCycle(); err != nil {
		return err
	}
	amount := t.QuoteAmount().Negate()
	if c.sub == nil || !amount.Equal(c.sub.InvestmentAmount()) {
		sub, err := NewAutoInvestSubscription(t.UtcTime(), amount)
		if err != nil {
			return err
		}
		c.sub = sub
		c.prevAssets = nil
	}
	t.SetSubscription(c.sub)
	c.pending = append(c.pending, t)
	return nil
}

// resolveCycle closes the cycle that ran up to the incoming spend leg.
// When its acquired-asset set differs from the previous cycle's, the
// whole cycle was in fact the start of a new subscription and its legs
// are re-bound to it.
func (c *autoInvestCorrelator) resolveCycle() error {
	if len(c.pending) == 0 {
		return nil
	}
	assets := make(map[string]bool)
	for _, p := range c.pending {
		if a := p.BoughtAsset(); a != "" {
			assets[a] = true
		}
	}
	if c.prevAssets != nil && !sameAssetSet(assets, c.prevAssets) {
		first := c.pending[0]
		sub, err := NewAutoInvestSubscription(first.UtcTime(), first.QuoteAmount().Negate())
		if err != nil {
			return fmt.Errorf("auto-invest cycle at %s: %w", FormatTime(first.UtcTime()), err)
		}
		for _, p := range c.pending {
			p.SetSubscription(sub)
		}
		c.sub = sub
	}
	c.prevAssets = assets
	c.pending = nil
	return nil
}

func sameAssetSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
