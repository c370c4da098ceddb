// Package insee downloads consumer price index series from INSEE and turns
// them into the monthly inflation rates used to compute real values.
package insee

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/go-resty/resty/v2"
)

// CPI is the idBank of the monthly consumer price index, all households.
const CPI = "001759970"

// baseURL of the INSEE series service.
var baseURL = "https://bdm.insee.fr/series"

// Fetch downloads the series idBank between from and to (included).
func Fetch(ctx context.Context, idBank string, from, to date.Month) (*Series, error) {
	if to.Before(from) {
		from, to = to, from
	}
	url := fmt.Sprintf("%s/%s/csv?lang=fr&ordre=antechronologique&transposition=donneescolonne&periodeDebut=%d&anneeDebut=%d&periodeFin=%d&anneeFin=%d&revision=sansrevisions",
		baseURL,
		idBank,
		from.Month(),
		from.Year(),
		to.Month(),
		to.Year(),
	)
	log.Println("Downloading from INSEE:", url)

	resp, err := resty.New().SetTimeout(time.Minute).R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: %w", idBank, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: received status %s", idBank, resp.Status())
	}

	body := resp.Body()
	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive from INSEE response: %w", err)
	}

	var foundFiles []string
	for _, f := range zipReader.File {
		foundFiles = append(foundFiles, f.Name)
		if f.Name == "valeurs_mensuelles.csv" || f.Name == "valeurs_trimestrielles.csv" {
			log.Println("Found", f.Name)
			csvFile, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open '%s' from zip archive: %w", f.Name, err)
			}
			defer csvFile.Close()
			return parseSeries(csvFile)
		}
	}
	return nil, fmt.Errorf("could not find a values file in downloaded zip file for ID %s (found: %s)", idBank, strings.Join(foundFiles, ", "))
}

// Series holds the data from an INSEE time series CSV file.
type Series struct {
	Libelle    string
	IDBank     string
	LastUpdate time.Time
	// Values are keyed by month. Quarterly values are on the quarter's last month.
	Values map[date.Month]float64
}

// parsePeriod parses "2025-08" or the quarterly "2025-T2" (June 2025).
func parsePeriod(s string) (date.Month, error) {
	if y, q, ok := strings.Cut(s, "-T"); ok {
		year, err := strconv.Atoi(y)
		if err != nil {
			return date.Month{}, fmt.Errorf("invalid year in quarterly date %q: %w", s, err)
		}
		quarter, err := strconv.Atoi(q)
		if err != nil || quarter < 1 || quarter > 4 {
			return date.Month{}, fmt.Errorf("invalid quarter in quarterly date %q", s)
		}
		return date.NewMonth(year, time.Month(quarter*3)), nil
	}
	m, err := date.ParseMonth(s)
	if err != nil {
		return date.Month{}, fmt.Errorf("unrecognized insee date format: %w", err)
	}
	return m, nil
}

// parseSeries reads the INSEE CSV format from an io.Reader.
func parseSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 4 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}

	series := &Series{
		Libelle: records[0][1],
		IDBank:  records[1][1],
		Values:  make(map[date.Month]float64),
	}
	series.LastUpdate, err = time.Parse("02/01/2006 15:04", records[2][1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse last update date %q: %w", records[2][1], err)
	}

	for _, rec := range records[4:] {
		if len(rec) < 2 || rec[1] == "" {
			continue
		}
		m, err := parsePeriod(rec[0])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value %q for date %q: %w", rec[1], rec[0], err)
		}
		series.Values[m] = val
	}
	return series, nil
}

// Rates converts an index into month over month rates, as ratios. A month
// gets a rate only when the previous month's index is known.
func Rates(index map[date.Month]float64) snowball.RateTable {
	rates := make(snowball.RateTable)
	for m, v := range index {
		prev, ok := index[m.Add(-1)]
		if !ok || prev == 0 {
			continue
		}
		rates[m] = v/prev - 1
	}
	return rates
}

// WriteRates writes rates as a month,rate csv, in percent, chronologically.
func WriteRates(w io.Writer, rates snowball.RateTable) error {
	months := make([]date.Month, 0, len(rates))
	for m := range rates {
		months = append(months, m)
	}
	slices.SortFunc(months, date.Month.Compare)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "rate"}); err != nil {
		return err
	}
	for _, m := range months {
		if err := cw.Write([]string{m.String(), strconv.FormatFloat(100*rates[m], 'f', 4, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
