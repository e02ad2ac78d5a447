package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ctgr/coinpnl"
	"github.com/ctgr/coinpnl/renderer"
)

type balancesCmd struct {
	date string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display the wallet content and cost basis" }
func (*balancesCmd) Usage() string {
	return `cpl balances [-d <utc_time>]

  Displays every held asset with its amount and average obtain price,
  as of the last transaction, or as of -d.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Show the wallet as of this UTC time (\"2006-01-02 15:04:05\").")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := BuildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	snapshot := report.Current()
	if c.date != "" {
		utcTime, err := coinpnl.ParseTime(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		snapshot = nil
		for _, s := range report.Snapshots() {
			if s.Timestamp() > utcTime {
				break
			}
			snapshot = s
		}
		if snapshot == nil {
			fmt.Fprintf(os.Stderr, "no transaction before %s\n", c.date)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.BalanceMarkdown(snapshot))

	return subcommands.ExitSuccess
}
