package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type drawdownCmd struct {
	analysisFlags
	active bool
}

func (*drawdownCmd) Name() string     { return "drawdown" }
func (*drawdownCmd) Synopsis() string { return "display the decline from the running peak" }
func (*drawdownCmd) Usage() string {
	return `sb drawdown [-active] [-offline]

  Displays the drawdown of the total value every month, and the maximum drawdown.
`
}

func (c *drawdownCmd) SetFlags(f *flag.FlagSet) {
	c.analysisFlags.SetFlags(f)
	f.BoolVar(&c.active, "active", false, "Only the actively managed accounts.")
}

func (c *drawdownCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.active {
		printMarkdown(renderer.Drawdown("Active Drawdown", a.ActiveDrawdown))
	} else {
		printMarkdown(renderer.Drawdown("Drawdown", a.Drawdown))
	}
	return subcommands.ExitSuccess
}
