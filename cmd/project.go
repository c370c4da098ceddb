package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type projectCmd struct {
	analysisFlags
	rate     float64
	trailing int
	target   float64
	until    string
	months   int
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the portfolio value forward" }
func (*projectCmd) Usage() string {
	return `sb project [-rate <annual %>] [-trailing <months>] [-target <value>] [-until <month>]

  Compounds the current total value every month, at a fixed annual rate or at
  the geometric mean monthly return of the trailing months, until the target
  value or month is reached.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	c.analysisFlags.SetFlags(f)
	f.Float64Var(&c.rate, "rate", math.NaN(), "Annual rate in percent. Defaults to the trailing rate.")
	f.IntVar(&c.trailing, "trailing", 12, "Number of trailing months of the trailing rate.")
	f.Float64Var(&c.target, "target", 0, "Target total value.")
	f.StringVar(&c.until, "until", "", "Target month, as YYYY-MM.")
	f.IntVar(&c.months, "months", snowball.DefaultMaxMonths, "Maximum number of months.")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := snowball.ProjectionOptions{MaxMonths: c.months}
	if c.until != "" {
		m, err := date.ParseMonth(c.until)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -until: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.TargetMonth = m
	}

	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	last := a.Timeline.Last()
	if c.target > 0 {
		opts.TargetValue = snowball.M(c.target, last.TotalValue.Currency())
	}

	monthly := snowball.TrailingMonthlyRate(a.Timeline, c.trailing)
	if !math.IsNaN(c.rate) {
		monthly = snowball.AnnualToMonthly(c.rate / 100)
	}
	p := snowball.Project(last.TotalValue, last.Month, monthly, opts)
	printMarkdown(renderer.Projection(p, opts))
	return subcommands.ExitSuccess
}
