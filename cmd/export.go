package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	analysisFlags
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the analysis to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `sb export [-o <file.xlsx>] [-offline]

  Writes the timeline, the monthly returns calendar and the live assets to a
  spreadsheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.analysisFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "snowball.xlsx", "Output file.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := export.Write(c.output, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Successfully exported to %s\n", c.output)
	return subcommands.ExitSuccess
}
