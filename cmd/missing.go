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

type missingCmd struct {
	outFile string
}

func (*missingCmd) Name() string { return "missing" }
func (*missingCmd) Synopsis() string {
	return "list the extra info entries the ledger needs but does not have"
}
func (*missingCmd) Usage() string {
	return `cpl missing [-o <file>]

  Scans the ledger for transactions that need user-provided information,
  deposit prices or auto-invest proportions, and lists what is not in
  the extra info file yet. With -o, also writes the missing entries as
  a CSV template to fill in.
`
}

func (c *missingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outFile, "o", "", "Write the missing entries as a CSV template to this file.")
}

func (c *missingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	extra, err := LoadExtraInfo()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	transactions, err := ledger.Transactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	missing := coinpnl.DetectMissingInfo(transactions, extra, *homeCurrency)
	printMarkdown(renderer.MissingMarkdown(missing))

	if c.outFile != "" && missing.Len() > 0 {
		out, err := os.Create(c.outFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := coinpnl.WriteExtraInfo(out, missing); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Wrote template to %s, fill in the values and merge it into %s\n",
			c.outFile, *extraInfoFile)
	}

	return subcommands.ExitSuccess
}
