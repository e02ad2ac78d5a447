package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/ctgr/coinpnl"
)

type reportCmd struct {
	outDir string
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "generate the transaction log, balance log and annual report CSV files"
}
func (*reportCmd) Usage() string {
	return `cpl report [-o <dir>]

  Processes the whole ledger and writes three CSV files into the output
  directory: transaction-log.csv with every transaction and its PNL,
  balance-log.csv with the wallet after each transaction, and
  annual-report.csv with the year-end summaries.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outDir, "o", ".", "Directory to write the report files into.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := BuildReport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	annual, err := report.CreateAnnualReports()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := c.write("transaction-log.csv", func(f *os.File) error {
		return coinpnl.WriteTransactionLog(f, report)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := c.write("balance-log.csv", func(f *os.File) error {
		return coinpnl.WriteBalanceLog(f, report)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := c.write("annual-report.csv", func(f *os.File) error {
		return coinpnl.WriteAnnualReports(f, annual, *homeCurrency)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if report.ExtraInfoUpdated() {
		if err := SaveExtraInfo(report.Extras()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Saved looked up prices to %s\n", *extraInfoFile)
	}

	fmt.Fprintf(os.Stderr, "✅ Wrote reports to %s\n", c.outDir)
	return subcommands.ExitSuccess
}

func (c *reportCmd) write(name string, fill func(*os.File) error) error {
	path := filepath.Join(c.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer f.Close()
	if err := fill(f); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
