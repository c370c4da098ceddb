package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/ingest"
	"github.com/etnz/snowball/pricefeed"
	"github.com/etnz/snowball/store"
)

// engine memoizes analyses for the lifetime of the process.
var engine = snowball.NewEngine(10 * time.Minute)

// analysisFlags are the flags shared by the commands running an analysis.
type analysisFlags struct {
	offline bool
	exclude string
	asOf    string
}

func (a *analysisFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&a.offline, "offline", false, "Do not fetch quotes, use the prices of the data directory.")
	f.StringVar(&a.exclude, "exclude", "", "Comma separated account kinds to leave out, e.g. retirement.")
	f.StringVar(&a.asOf, "on", "", "Valuation day, as YYYY-MM-DD. Defaults to the end of the last recorded month, cannot be earlier.")
}

func (a *analysisFlags) options() (snowball.AnalysisOptions, error) {
	var opts snowball.AnalysisOptions
	for _, s := range strings.Split(a.exclude, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		k, err := snowball.ParseAccountKind(s)
		if err != nil {
			return opts, err
		}
		opts.Exclude = append(opts.Exclude, k)
	}
	if a.asOf != "" {
		d, err := date.Parse(a.asOf)
		if err != nil {
			return opts, err
		}
		opts.AsOf = d
	}
	return opts, nil
}

// analyze loads the data directory, refreshes quotes and runs the analysis.
// The report of the loading is merged in the analysis report.
func (a *analysisFlags) analyze(ctx context.Context) (*snowball.Analysis, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	in, loadReport, err := ingest.Dir(DataDir(), Currency())
	if err != nil {
		return nil, fmt.Errorf("cannot load data directory %q: %w", DataDir(), err)
	}
	if !a.offline {
		refreshPrices(ctx, &in)
	}
	res, err := engine.Analyze(in, opts)
	if err != nil {
		return nil, err
	}
	analysis := *res
	analysis.Report = loadReport
	analysis.Report.Merge(res.Report)
	return &analysis, nil
}

// symbols returns the symbols of open positions.
func symbols(assets []snowball.LiveAsset) []string {
	var res []string
	for _, a := range assets {
		if a.Status == snowball.Open && a.Symbol != "" {
			res = append(res, a.Symbol)
		}
	}
	return res
}

// refreshPrices sets the online and previous session prices of in. Quotes are
// fetched at most once per session: today's stored session is reused. Any
// failure leaves the fallback prices in charge.
func refreshPrices(ctx context.Context, in *snowball.Inputs) {
	wanted := symbols(in.Assets)
	if len(wanted) == 0 {
		return
	}

	db, err := store.Open(DBPath())
	if err != nil {
		log.Printf("quote sessions are not stored: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	today := date.Today()
	var quotes pricefeed.Quotes
	found := false
	if db != nil {
		if quotes, found, err = db.Session(ctx, today); err != nil {
			log.Printf("cannot read today's session: %v", err)
		}
	}
	if !found {
		client := pricefeed.New(pricefeed.Config{URL: PriceURL(), CacheDir: filepath.Join(os.TempDir(), "snowball")})
		quotes, err = client.Fetch(ctx, wanted)
		switch {
		case errors.Is(err, pricefeed.ErrUnavailable):
			log.Printf("price feed unavailable, using fallback prices: %v", err)
			return
		case err != nil:
			log.Printf("some quotes are missing: %v", err)
		}
		if db != nil {
			if err := db.SaveSession(ctx, quotes); err != nil {
				log.Printf("cannot save session: %v", err)
			}
		}
	}

	previous := quotes.Previous
	if db != nil {
		if prior, ok, err := db.LatestSession(ctx, today); err == nil && ok {
			previous = withDefaults(previous, prior.Current)
		}
	}
	in.Prices.Online = quotes.Current
	in.Prices.Previous = previous
}

// withDefaults returns p completed with the prices of def it misses.
func withDefaults(p, def snowball.Prices) snowball.Prices {
	res := make(snowball.Prices, len(p)+len(def))
	for s, v := range def {
		res[s] = v
	}
	for s, v := range p {
		res[s] = v
	}
	return res
}

// printMarkdown prints md rendered for the terminal, or as is when it cannot
// be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Printf("cannot render markdown: %v", err)
	fmt.Print(md)
}
