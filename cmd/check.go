package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct {
	analysisFlags
	strict bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "report the issues of the data directory" }
func (*checkCmd) Usage() string {
	return `sb check [-strict] [-offline]

  Reports rejected files, invalid rows, history inconsistencies and missing
  prices. Exits with a failure when a file was rejected, or with -strict when
  anything is reported.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	c.analysisFlags.SetFlags(f)
	f.BoolVar(&c.strict, "strict", false, "Fail on warnings too.")
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Report(a.Report))
	if a.Report.HasStructural() || (c.strict && !a.Report.Empty()) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
