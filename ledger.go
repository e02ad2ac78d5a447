package coinpnl

import "fmt"

// Ledger is the strictly time-ordered stream of raw account changes, as
// read from the exchange export.
type Ledger struct {
	changes []*RawAccountChange
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds a change to the ledger. Changes must arrive in
// non-decreasing timestamp order, anything else means a corrupted
// export.
func (l *Ledger) Append(c *RawAccountChange) error {
	if n := len(l.changes); n > 0 && c.UTCTime < l.changes[n-1].UTCTime {
		return fmt.Errorf("change at %s arrives after %s: ledger must be sorted by time",
			FormatTime(c.UTCTime), FormatTime(l.changes[n-1].UTCTime))
	}
	l.changes = append(l.changes, c)
	return nil
}

func (l *Ledger) Len() int { return len(l.changes) }

// Changes returns the raw changes in ledger order.
func (l *Ledger) Changes() []*RawAccountChange { return l.changes }

// GroupByTimestamp folds consecutive changes sharing a timestamp into
// raw transactions.
func (l *Ledger) GroupByTimestamp() ([]*RawTransaction, error) {
	var groups []*RawTransaction
	var current *RawTransaction
	for _, c := range l.changes {
		if current == nil || current.UtcTime() != c.UTCTime {
			current = NewRawTransaction(c.UTCTime)
			groups = append(groups, current)
		}
		if err := current.Append(c); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// Transactions groups, clarifies and correlates the whole ledger into
// processable transactions. Auto-invest legs are tied to their
// subscriptions here, in ledger order, since cycle boundaries can only
// be resolved across transactions.
func (l *Ledger) Transactions() ([]Transaction, error) {
	groups, err := l.GroupByTimestamp()
	if err != nil {
		return nil, err
	}
	correlator := &autoInvestCorrelator{}
	transactions := make([]Transaction, 0, len(groups))
	for _, g := range groups {
		t, err := g.Clarify()
		if err != nil {
			return nil, err
		}
		if at, ok := t.(*AutoInvestTransaction); ok {
			if err := correlator.register(at); err != nil {
				return nil, err
			}
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}
