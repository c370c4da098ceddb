// Command sb analyses a multi-account portfolio. See 'sb topic'.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/snowball/cmd"
	"github.com/etnz/snowball/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("sb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	if name := flag.Arg(0); name != "" && !registered(name) {
		if ok, code := cmd.RunExtension(name, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(name string) bool {
	if name == "help" || name == "flags" {
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	global := map[string]complete.Predictor{
		"data":      predict.Dirs("*"),
		"currency":  predict.Set{"PLN", "EUR", "USD", "GBP", "CHF"},
		"price-url": predict.Something,
		"db":        predict.Files("*.db"),
		"v":         predict.Nothing,
	}
	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		flags := make(map[string]complete.Predictor)
		fs.VisitAll(func(f *flag.Flag) {
			switch f.Name {
			case "o":
				flags[f.Name] = predict.Files("*.xlsx")
			case "exclude":
				flags[f.Name] = predict.Set{"retirement", "brokerage", "crypto", "cash"}
			case "period":
				flags[f.Name] = predict.Set{"month", "quarter", "year"}
			default:
				flags[f.Name] = predict.Something
			}
		})
		sub[c.Name()] = &complete.Command{Flags: flags}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return &complete.Command{Sub: sub, Flags: global}
}
