package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ctgr/coinpnl/renderer"
)

type logCmd struct{}

func (*logCmd) Name() string { return "log" }
func (*logCmd) Synopsis() string {
	return "display a chronological log of all transactions and their running PNL"
}
func (*logCmd) Usage() string {
	return `cpl log

  Processes the whole ledger and displays every transaction with its
  obtain price, realized PNL and the running PNL after it.
`
}

func (*logCmd) SetFlags(f *flag.FlagSet) {}

func (p *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := BuildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LogMarkdown(report.Snapshots()))

	return subcommands.ExitSuccess
}
