package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/etnz/snowball"
)

// Conventional file names in a data directory.
const (
	HistoryDir    = "history"
	BenchmarkDir  = "benchmarks"
	PositionsFile = "positions.csv"
	ClosedFile    = "closed.csv"
	FlowsFile     = "cashflows.csv"
	PricesFile    = "prices.csv"
	CPIFile       = "cpi.csv"
)

// LoadDir reads a data directory:
//
//	history/<account>.csv   monthly history of each account
//	positions.csv           open, cash and closed positions
//	closed.csv              realized profits
//	cashflows.csv           deposits, withdrawals, dividends, interests
//	prices.csv              fallback prices
//	cpi.csv                 monthly inflation, in percent
//	benchmarks/<name>.csv   benchmark indexes
//
// Only the history directory is required. A file rejected for a missing
// column is left out of the inputs and reported as Structural, the other
// files are still loaded.
func LoadDir(fsys fs.FS, currency string) (snowball.Inputs, snowball.Report, error) {
	in := snowball.Inputs{Currency: currency}
	var report snowball.Report
	p := Parser{Currency: currency}

	histories, err := fs.Glob(fsys, path.Join(HistoryDir, "*.csv"))
	if err != nil {
		return in, report, err
	}
	if len(histories) == 0 {
		return in, report, fmt.Errorf("no account history in %s/", HistoryDir)
	}
	sort.Strings(histories)
	for _, name := range histories {
		kind, err := snowball.ParseAccountKind(strings.TrimSuffix(path.Base(name), ".csv"))
		if err != nil {
			report.Addf(snowball.Structural, "", name, "file name is not an account: %v", err)
			continue
		}
		err = withFile(fsys, name, func(f fs.File) error {
			s, r, err := p.History(f, name, kind)
			report.Merge(r)
			if err == nil {
				in.Series = append(in.Series, s)
			}
			return nil
		})
		if err != nil {
			return in, report, err
		}
	}

	optional := []struct {
		name string
		load func(fs.File) (snowball.Report, error)
	}{
		{PositionsFile, func(f fs.File) (r snowball.Report, err error) {
			in.Assets, r, err = p.Positions(f, PositionsFile)
			return r, err
		}},
		{ClosedFile, func(f fs.File) (r snowball.Report, err error) {
			in.Closed, r, err = p.Closed(f, ClosedFile)
			return r, err
		}},
		{FlowsFile, func(f fs.File) (r snowball.Report, err error) {
			in.CashFlows, r, err = p.CashFlows(f, FlowsFile)
			return r, err
		}},
		{PricesFile, func(f fs.File) (r snowball.Report, err error) {
			in.Prices.Fallback, r, err = Prices(f, PricesFile)
			return r, err
		}},
		{CPIFile, func(f fs.File) (r snowball.Report, err error) {
			in.CPI, r, err = Rates(f, CPIFile)
			return r, err
		}},
	}
	for _, o := range optional {
		err := withFile(fsys, o.name, func(f fs.File) error {
			r, err := o.load(f)
			report.Merge(r)
			if err != nil && !errors.Is(err, snowball.ErrMissingColumn) {
				return err
			}
			return nil
		})
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("no %s, skipped", o.name)
			continue
		}
		if err != nil {
			return in, report, err
		}
	}

	benchmarks, _ := fs.Glob(fsys, path.Join(BenchmarkDir, "*.csv"))
	sort.Strings(benchmarks)
	for _, name := range benchmarks {
		err := withFile(fsys, name, func(f fs.File) error {
			b, r, err := Index(f, name)
			report.Merge(r)
			if err == nil {
				b.Name = strings.TrimSuffix(path.Base(name), ".csv")
				in.Benchmarks = append(in.Benchmarks, b)
			}
			return nil
		})
		if err != nil {
			return in, report, err
		}
	}
	return in, report, nil
}

// withFile opens name and calls fn.
func withFile(fsys fs.FS, name string, fn func(fs.File) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

// Dir is LoadDir on a directory of the local file system.
func Dir(dir, currency string) (snowball.Inputs, snowball.Report, error) {
	return LoadDir(os.DirFS(dir), currency)
}
