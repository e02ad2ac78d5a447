package coinpnl

// WalletSnapshot is one link in the wallet history chain: the state of
// the wallet right after a transaction, together with the profit and
// loss realized by that transaction and the running total so far.
// Snapshots are never mutated once handed out, the next transaction
// works on a prepared copy.
type WalletSnapshot struct {
	transaction Transaction
	wallet      *Wallet
	pnl         Decimal
	runningPnl  Decimal
}

// EmptySnapshot is the start of the chain: no transaction, empty wallet,
// zero PNL.
func EmptySnapshot() *WalletSnapshot {
	return &WalletSnapshot{wallet: NewWallet()}
}

// PrepareNext returns the working snapshot for the next transaction: a
// deep copy of the wallet, carried-over running PNL and a zeroed
// per-transaction PNL.
func (s *WalletSnapshot) PrepareNext(t Transaction) *WalletSnapshot {
	return &WalletSnapshot{
		transaction: t,
		wallet:      s.wallet.Copy(),
		runningPnl:  s.runningPnl,
	}
}

// AddPnl records realized profit (or loss, when negative) on both the
// per-transaction and the running figure.
func (s *WalletSnapshot) AddPnl(p Decimal) {
	s.pnl = s.pnl.Add(p)
	s.runningPnl = s.runningPnl.Add(p)
}

func (s *WalletSnapshot) Wallet() *Wallet          { return s.wallet }
func (s *WalletSnapshot) Transaction() Transaction { return s.transaction }
func (s *WalletSnapshot) TransactionPnl() Decimal  { return s.pnl }
func (s *WalletSnapshot) RunningPnl() Decimal      { return s.runningPnl }

// Timestamp is the time of the transaction this snapshot resulted from,
// zero for the empty start snapshot.
func (s *WalletSnapshot) Timestamp() int64 {
	if s.transaction == nil {
		return 0
	}
	return s.transaction.UtcTime()
}

// Year is the UTC calendar year of the snapshot's transaction.
func (s *WalletSnapshot) Year() int {
	return YearOf(s.Timestamp())
}
