package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	analysisFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `sb summary [-offline] [-exclude <kinds>] [-on <date>]

  Displays the total value, profit and returns of the portfolio, the
  allocation per account, and a count of the data issues found.
`
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString(renderer.Summary(a.Summary))
	if last := a.Timeline.Last(); !last.Month.IsZero() {
		b.WriteString(renderer.Allocation(last))
	}
	if n := len(a.Report.Messages); n > 0 {
		fmt.Fprintf(&b, "%d data issues found, run `sb check` for details.\n", n)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
