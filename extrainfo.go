package coinpnl

import (
	"fmt"
	"sort"
)

// ExtraInfoType tells what kind of user-provided information an
// ExtraInfoEntry carries.
type ExtraInfoType int

const (
	// AssetPrice is the USD price of one asset at one point in time.
	AssetPrice ExtraInfoType = iota
	// AutoInvestProportions is the asset split of an auto-invest
	// subscription: assets and proportions as "|"-joined lists.
	AutoInvestProportions
)

func (t ExtraInfoType) String() string {
	switch t {
	case AssetPrice:
		return "ASSET_PRICE"
	case AutoInvestProportions:
		return "AUTO_INVEST_PROPORTIONS"
	}
	return fmt.Sprintf("ExtraInfoType(%d)", int(t))
}

// ParseExtraInfoType parses the CSV spelling of an extra info type.
func ParseExtraInfoType(s string) (ExtraInfoType, error) {
	switch s {
	case "ASSET_PRICE":
		return AssetPrice, nil
	case "AUTO_INVEST_PROPORTIONS":
		return AutoInvestProportions, nil
	}
	return 0, fmt.Errorf("unknown extra info type %q", s)
}

// ExtraInfoEntry is one piece of information the exchange export cannot
// provide and the user (or a price lookup) must: typically the USD price
// of a deposited asset at the time of the deposit.
type ExtraInfoEntry struct {
	UTCTime int64
	Type    ExtraInfoType
	Asset   string
	Value   string
}

// ExtraInfo is the collection of user-provided entries, looked up by
// timestamp during report generation.
type ExtraInfo struct {
	entries map[int64][]*ExtraInfoEntry
}

func NewExtraInfo() *ExtraInfo {
	return &ExtraInfo{entries: make(map[int64][]*ExtraInfoEntry)}
}

// Add registers an entry. A later entry for the same time, type and
// asset replaces the earlier one.
func (x *ExtraInfo) Add(e *ExtraInfoEntry) {
	for i, old := range x.entries[e.UTCTime] {
		if old.Type == e.Type && old.Asset == e.Asset {
			x.entries[e.UTCTime][i] = e
			return
		}
	}
	x.entries[e.UTCTime] = append(x.entries[e.UTCTime], e)
}

// Get returns the entry of the given type at the given time, nil when
// none was provided.
func (x *ExtraInfo) Get(utcTime int64, t ExtraInfoType) *ExtraInfoEntry {
	for _, e := range x.entries[utcTime] {
		if e.Type == t {
			return e
		}
	}
	return nil
}

// GetAssetPrice returns the price entry for one asset at one time, nil
// when none was provided.
func (x *ExtraInfo) GetAssetPrice(utcTime int64, asset string) *ExtraInfoEntry {
	for _, e := range x.entries[utcTime] {
		if e.Type == AssetPrice && e.Asset == asset {
			return e
		}
	}
	return nil
}

// Contains reports whether an entry satisfying the need is present.
// Matching is on time and type: the value is whatever the user chose.
func (x *ExtraInfo) Contains(need *ExtraInfoEntry) bool {
	return x.Get(need.UTCTime, need.Type) != nil
}

// All returns every entry in timestamp order.
func (x *ExtraInfo) All() []*ExtraInfoEntry {
	times := make([]int64, 0, len(x.entries))
	for t := range x.entries {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	var all []*ExtraInfoEntry
	for _, t := range times {
		all = append(all, x.entries[t]...)
	}
	return all
}

func (x *ExtraInfo) Len() int {
	n := 0
	for _, es := range x.entries {
		n += len(es)
	}
	return n
}
