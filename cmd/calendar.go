package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type calendarCmd struct {
	analysisFlags
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the monthly returns heatmap and seasonality" }
func (*calendarCmd) Usage() string {
	return `sb calendar [-offline]

  Displays the time weighted return of every month of the actively managed
  accounts, with quarter and year totals, then the average return of each
  calendar month. See 'sb topic calendar'.
`
}

func (c *calendarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Calendar(a.Calendar) + renderer.Seasonality(a.Seasonality))
	return subcommands.ExitSuccess
}
