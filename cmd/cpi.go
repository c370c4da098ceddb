package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/ingest"
	"github.com/etnz/snowball/insee"
	"github.com/google/subcommands"
)

// cpiCmd implements the "cpi" command.
type cpiCmd struct {
	idBank string
	from   string
}

func (*cpiCmd) Name() string     { return "cpi" }
func (*cpiCmd) Synopsis() string { return "fetches the consumer price index from INSEE" }
func (*cpiCmd) Usage() string {
	return `sb cpi [-from <month>] [-id <idbank>]

  Downloads a monthly price index from bdm.insee.fr and writes its month over
  month rates to cpi.csv in the data directory. See 'sb topic inflation'.
`
}

func (c *cpiCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.idBank, "id", insee.CPI, "INSEE series identifier.")
	f.StringVar(&c.from, "from", "2000-01", "First month to fetch, as YYYY-MM.")
}

func (c *cpiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := date.ParseMonth(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	// the month before 'from' gives the first rate.
	series, err := insee.Fetch(ctx, c.idBank, from.Add(-1), date.ThisMonth())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from data.insee.fr: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	rates := insee.Rates(series.Values)
	if err := insee.WriteRates(&buf, rates); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// written tables must be readable back.
	if _, report, err := ingest.Rates(bytes.NewReader(buf.Bytes()), ingest.CPIFile); err != nil || !report.Empty() {
		fmt.Fprintf(os.Stderr, "Error: invalid rates table: %v %v\n", err, report.Messages)
		return subcommands.ExitFailure
	}

	path := filepath.Join(DataDir(), ingest.CPIFile)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Successfully fetched %s (%s), %d monthly rates written to %s\n", series.IDBank, series.Libelle, len(rates), path)
	return subcommands.ExitSuccess
}
