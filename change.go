package coinpnl

import "fmt"

// RawAccountChange is a single account movement from the exchange export:
// at a point in time, on one account, one asset changed by one amount.
type RawAccountChange struct {
	UTCTime   int64 // milliseconds since epoch
	Account   AccountType
	Operation Operation
	Asset     string
	Amount    Decimal
	Remark    string
}

// NewRawAccountChange builds a change and enforces the sign conventions
// of the export: acquisitions are positive, disposals negative.
func NewRawAccountChange(utcTime int64, account AccountType, op Operation,
	asset string, amount Decimal, remark string) (*RawAccountChange, error) {
	switch op {
	case OpBuy:
		if !amount.IsPositive() {
			return nil, fmt.Errorf("buy change of %s %s at %s must be positive",
				amount.Nice(), asset, FormatTime(utcTime))
		}
	case OpSell, OpWithdraw:
		if !amount.IsNegative() {
			return nil, fmt.Errorf("%s change of %s %s at %s must be negative",
				op, amount.Nice(), asset, FormatTime(utcTime))
		}
	}
	return &RawAccountChange{
		UTCTime:   utcTime,
		Account:   account,
		Operation: op,
		Asset:     asset,
		Amount:    amount,
		Remark:    remark,
	}, nil
}

// MergeChanges folds several changes of the same time, account, operation
// and asset into one change carrying the summed amount. The export splits
// a single logical movement into parts, fees in particular.
func MergeChanges(changes []*RawAccountChange) (*RawAccountChange, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("cannot merge an empty change list")
	}
	first := changes[0]
	sum := Zero
	for _, c := range changes {
		if c.UTCTime != first.UTCTime || c.Account != first.Account ||
			c.Operation != first.Operation || c.Asset != first.Asset {
			return nil, fmt.Errorf("cannot merge heterogeneous changes: %s %s %s %s vs %s %s %s %s",
				FormatTime(first.UTCTime), first.Account, first.Operation, first.Asset,
				FormatTime(c.UTCTime), c.Account, c.Operation, c.Asset)
		}
		sum = sum.Add(c.Amount)
	}
	return &RawAccountChange{
		UTCTime:   first.UTCTime,
		Account:   first.Account,
		Operation: first.Operation,
		Asset:     first.Asset,
		Amount:    sum,
		Remark:    first.Remark,
	}, nil
}
