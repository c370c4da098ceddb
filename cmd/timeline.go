package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type timelineCmd struct {
	analysisFlags
	from, to string
	period   string
}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display the month by month history of the portfolio" }
func (*timelineCmd) Usage() string {
	return `sb timeline [-from <month>] [-to <month>] [-period <period>] [-offline] [-exclude <kinds>]

  Displays for every month the invested capital, profit, value, real value,
  money weighted return, cumulative time weighted return and benchmarks.

  -period restricts the timeline to the quarter or year of its last month.
`
}

func (c *timelineCmd) SetFlags(f *flag.FlagSet) {
	c.analysisFlags.SetFlags(f)
	f.StringVar(&c.from, "from", "", "First month to display, as YYYY-MM.")
	f.StringVar(&c.to, "to", "", "Last month to display, as YYYY-MM.")
	f.StringVar(&c.period, "period", "", "Display only the current period: month, quarter or year.")
}

func (c *timelineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var from, to date.Month
	for _, m := range []struct {
		flag  string
		value string
		month *date.Month
	}{{"from", c.from, &from}, {"to", c.to, &to}} {
		if m.value == "" {
			continue
		}
		parsed, err := date.ParseMonth(m.value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -%s: %v\n", m.flag, err)
			return subcommands.ExitUsageError
		}
		*m.month = parsed
	}
	var period date.Period
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -period: %v\n", err)
			return subcommands.ExitUsageError
		}
		period = p
	}

	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	t := a.Timeline
	r := t.Span()
	if c.period != "" {
		r = period.Range(r.To)
	}
	if !from.IsZero() {
		r.From = from.Start()
	}
	if !to.IsZero() {
		r.To = to.End()
	}
	printMarkdown(renderer.Timeline(t.Within(r)))
	return subcommands.ExitSuccess
}
