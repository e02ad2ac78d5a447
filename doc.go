// Package coinpnl turns a crypto exchange account statement into a
// cost-basis wallet history and a running profit-and-loss figure. It is
// designed to be local-first and auditable: the whole computation is a
// replayable fold over the exported ledger, and everything the exchange
// cannot provide is read from a user-owned extra info file.
//
// The core functionalities include:
//   - Ledger Classification: Grouping the raw, loosely-typed account
//     changes of the export by timestamp and pattern-matching them into
//     well-typed transactions (trades, transfers, rewards, savings,
//     dust collections, auto-invest legs).
//   - Average-Cost Wallet: Tracking, per asset, the held amount and the
//     weighted-average acquisition price in USDT, with realized PNL
//     computed on every disposal.
//   - Snapshot Chain: One immutable wallet snapshot per processed
//     transaction, forming the history behind every report.
//   - Auto-Invest Correlation: Stitching the spend leg and the later
//     acquisition legs of recurring investment programs back together,
//     and detecting when a program's configuration changes.
//   - Reporting: Transaction logs, balance logs and year-end summaries
//     in USD and a home currency, with missing prices fetched from the
//     exchange once and cached into the extra info file.
//
// This package serves as the foundational logic for the `cpl`
// command-line tool.
package coinpnl
