package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type assetsCmd struct {
	analysisFlags
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "display live positions and the net invested capital" }
func (*assetsCmd) Usage() string {
	return `sb assets [-offline]

  Displays the positions repriced with the latest quotes, and the
  reconciliation of the net invested capital of each account.
  See 'sb topic snowball'.
`
}

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Assets(a.Assets, a.Reconciliations))
	return subcommands.ExitSuccess
}
