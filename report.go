package coinpnl

import (
	"fmt"
	"log"
	"sort"
)

// PriceSource looks up an asset's daily close price in USDT for the day
// containing the given timestamp. Used as fallback when the user did not
// provide a price.
type PriceSource interface {
	DailyClosePrice(asset string, utcTime int64) (Decimal, error)
}

// AnnualReport is the tax-relevant summary of one calendar year: the
// running PNL and the wallet value at year end, in USD and in the home
// currency.
type AnnualReport struct {
	Timestamp       int64
	PnlUsd          Decimal
	ExchangeRate    Decimal
	PnlHome         Decimal
	WalletValueUsd  Decimal
	WalletValueHome Decimal
}

// Report folds clarified transactions into the snapshot chain and
// derives the year-end summaries from it.
type Report struct {
	extra        *ExtraInfo
	extraUpdated bool
	homeCurrency string
	prices       PriceSource

	snapshots []*WalletSnapshot
	current   *WalletSnapshot
}

// NewReport starts an empty report. prices may be nil, then a missing
// year-end price is fatal instead of being fetched.
func NewReport(extra *ExtraInfo, homeCurrency string, prices PriceSource) *Report {
	return &Report{
		extra:        extra,
		homeCurrency: homeCurrency,
		prices:       prices,
		current:      EmptySnapshot(),
	}
}

// Process applies one transaction to the chain.
func (r *Report) Process(t Transaction) error {
	next, err := t.Process(r.current, r.extraFor(t))
	if err != nil {
		return fmt.Errorf("cannot process %s at %s: %w", t.Type(), FormatTime(t.UtcTime()), err)
	}
	r.current = next
	r.snapshots = append(r.snapshots, next)
	return nil
}

// extraFor picks the user-provided entry a transaction consumes:
// auto-invest legs read the proportions filed under their subscription's
// start, everything else reads the asset price at its own time.
func (r *Report) extraFor(t Transaction) *ExtraInfoEntry {
	if at, ok := t.(*AutoInvestTransaction); ok {
		if sub := at.Subscription(); sub != nil {
			return r.extra.Get(sub.UtcTime(), AutoInvestProportions)
		}
		return nil
	}
	return r.extra.Get(t.UtcTime(), AssetPrice)
}

func (r *Report) Snapshots() []*WalletSnapshot { return r.snapshots }
func (r *Report) Current() *WalletSnapshot     { return r.current }
func (r *Report) Extras() *ExtraInfo           { return r.extra }
func (r *Report) HomeCurrency() string         { return r.homeCurrency }

// ExtraInfoUpdated reports whether the report fetched prices during
// generation, so the caller can persist them.
func (r *Report) ExtraInfoUpdated() bool { return r.extraUpdated }

// YearEndSnapshots returns the last snapshot of each year, in year
// order.
func (r *Report) YearEndSnapshots() []*WalletSnapshot {
	byYear := make(map[int]*WalletSnapshot)
	for _, s := range r.snapshots {
		byYear[s.Year()] = s
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]*WalletSnapshot, 0, len(years))
	for _, y := range years {
		out = append(out, byYear[y])
	}
	return out
}

// CreateAnnualReports builds the year-end summary for every year the
// ledger touches.
func (r *Report) CreateAnnualReports() ([]AnnualReport, error) {
	var reports []AnnualReport
	for _, s := range r.YearEndSnapshots() {
		a, err := r.annualReport(s)
		if err != nil {
			return nil, err
		}
		reports = append(reports, a)
	}
	return reports, nil
}

func (r *Report) annualReport(s *WalletSnapshot) (AnnualReport, error) {
	yearEnd := YearEnd(s.Year())
	rate, err := r.exchangeRateAt(yearEnd)
	if err != nil {
		return AnnualReport{}, err
	}
	walletUsd, err := r.TotalWalletValueAt(s.Wallet(), yearEnd)
	if err != nil {
		return AnnualReport{}, err
	}
	pnlUsd := s.RunningPnl()
	return AnnualReport{
		Timestamp:       yearEnd,
		PnlUsd:          pnlUsd,
		ExchangeRate:    rate,
		PnlHome:         pnlUsd.Mul(rate),
		WalletValueUsd:  walletUsd,
		WalletValueHome: walletUsd.Mul(rate),
	}, nil
}

// TotalWalletValueAt values every held asset at the given time.
func (r *Report) TotalWalletValueAt(w *Wallet, utcTime int64) (Decimal, error) {
	total := Zero
	for _, asset := range w.Assets() {
		price, err := r.assetPriceAt(asset, utcTime)
		if err != nil {
			return Zero, err
		}
		total = total.Add(w.AssetAmount(asset).Mul(price))
	}
	return total, nil
}

func (r *Report) assetPriceAt(asset string, utcTime int64) (Decimal, error) {
	if asset == QuoteCurrency {
		return One, nil
	}
	if e := r.extra.GetAssetPrice(utcTime, asset); e != nil {
		return ParseDecimal(e.Value)
	}
	if r.prices != nil {
		log.Printf("no %s price at %s in extra info, asking the exchange", asset, FormatTime(utcTime))
		price, err := r.prices.DailyClosePrice(asset, utcTime)
		if err != nil {
			return Zero, fmt.Errorf("missing %s price at %s: %w", asset, FormatTime(utcTime), err)
		}
		r.extra.Add(&ExtraInfoEntry{
			UTCTime: utcTime,
			Type:    AssetPrice,
			Asset:   asset,
			Value:   price.Nice(),
		})
		r.extraUpdated = true
		return price, nil
	}
	return Zero, fmt.Errorf("missing %s price at %s", asset, FormatTime(utcTime))
}

// exchangeRateAt is the home currency's USD rate: a provided entry, or
// the price source like any other asset.
func (r *Report) exchangeRateAt(utcTime int64) (Decimal, error) {
	if IsUsdLike(r.homeCurrency) {
		return One, nil
	}
	return r.assetPriceAt(r.homeCurrency, utcTime)
}

// DetectMissingInfo computes the extra-info entries the transactions
// would need but that were not provided: per-transaction needs plus the
// year-end home-currency rate for every touched year.
func DetectMissingInfo(transactions []Transaction, provided *ExtraInfo, homeCurrency string) *ExtraInfo {
	necessary := NewExtraInfo()
	years := make(map[int]bool)
	for _, t := range transactions {
		years[YearOf(t.UtcTime())] = true
		if need := t.NecessaryExtraInfo(); need != nil {
			necessary.Add(need)
		}
	}
	if !IsUsdLike(homeCurrency) {
		for year := range years {
			necessary.Add(&ExtraInfoEntry{
				UTCTime: YearEnd(year),
				Type:    AssetPrice,
				Asset:   homeCurrency,
				Value:   fmt.Sprintf("<%s/USD exchange rate at the end of year %d>", homeCurrency, year),
			})
		}
	}
	missing := NewExtraInfo()
	for _, need := range necessary.All() {
		if !provided.Contains(need) {
			missing.Add(need)
		}
	}
	return missing
}
