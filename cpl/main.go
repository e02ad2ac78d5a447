package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ctgr/coinpnl/cmd"
)

func main() {
	// Shell completion, a no-op outside of a completion request.
	completion().Complete("cpl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	csv := predict.Files("*.csv")
	sub := map[string]*complete.Command{
		"report":   {Flags: map[string]complete.Predictor{"o": predict.Dirs("*")}},
		"log":      {},
		"balances": {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
		"annual":   {},
		"missing":  {Flags: map[string]complete.Predictor{"o": csv}},
		"assist":   {},
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"ledger":        csv,
			"extra-info":    csv,
			"currency":      predict.Set{"USD", "EUR", "NOK", "GBP", "CHF"},
			"offline":       predict.Nothing,
			"eodhd-api-key": predict.Nothing,
		},
	}
}
