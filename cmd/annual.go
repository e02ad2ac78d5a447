package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ctgr/coinpnl/renderer"
)

type annualCmd struct{}

func (*annualCmd) Name() string     { return "annual" }
func (*annualCmd) Synopsis() string { return "display the year-end PNL and wallet value summaries" }
func (*annualCmd) Usage() string {
	return `cpl annual [-currency <code>]

  Displays, for every year of the ledger, the running PNL and the
  wallet value at year end, in USD and in the home currency.
`
}

func (*annualCmd) SetFlags(f *flag.FlagSet) {}

func (p *annualCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := BuildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	reports, err := report.CreateAnnualReports()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AnnualMarkdown(reports, *homeCurrency))

	if report.ExtraInfoUpdated() {
		if err := SaveExtraInfo(report.Extras()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Saved looked up prices to %s\n", *extraInfoFile)
	}

	return subcommands.ExitSuccess
}
