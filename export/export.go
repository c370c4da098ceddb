// Package export writes an analysis to an xlsx workbook.
package export

import (
	"fmt"
	"time"

	"github.com/etnz/snowball"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook, in order.
const (
	TimelineSheet = "Timeline"
	CalendarSheet = "Calendar"
	AssetsSheet   = "Assets"
)

// builtin excelize number formats.
const (
	moneyFormat   = 4  // #,##0.00
	percentFormat = 10 // 0.00%
)

// Workbook builds the workbook of an analysis. Amounts are numbers in the
// analysis currency, returns are fractions formatted as percents and absent
// values are empty cells.
func Workbook(a *snowball.Analysis) (*excelize.File, error) {
	f := excelize.NewFile()
	w := &workbook{File: f}
	if err := w.init(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", TimelineSheet); err != nil {
		f.Close()
		return nil, err
	}
	w.timeline(a.Timeline)
	w.sheet(CalendarSheet)
	w.calendar(a.Calendar)
	w.sheet(AssetsSheet)
	w.assets(a.Assets)
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot build workbook: %w", w.err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write saves the workbook of an analysis at path.
func Write(path string, a *snowball.Analysis) error {
	f, err := Workbook(a)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", path, err)
	}
	return nil
}

// workbook keeps the first error, so that sheets are written without
// checking every cell.
type workbook struct {
	*excelize.File
	money, percent, header int
	err                    error
}

func (w *workbook) init() (err error) {
	if w.money, err = w.NewStyle(&excelize.Style{NumFmt: moneyFormat}); err != nil {
		return err
	}
	if w.percent, err = w.NewStyle(&excelize.Style{NumFmt: percentFormat}); err != nil {
		return err
	}
	w.header, err = w.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	return err
}

func (w *workbook) sheet(name string) {
	if w.err != nil {
		return
	}
	_, w.err = w.NewSheet(name)
}

// row writes values on the 1-based row, from column A. Columns listed in
// money and percent get the matching style.
func (w *workbook) row(sheet string, row int, values []any, styles map[int]int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.SetSheetRow(sheet, cell, &values); w.err != nil {
		return
	}
	for col, style := range styles {
		if col >= len(values) || values[col] == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if w.err = w.SetCellStyle(sheet, cell, cell, style); w.err != nil {
			return
		}
	}
}

func (w *workbook) headers(sheet string, names ...string) {
	values := make([]any, len(names))
	for i, n := range names {
		values[i] = n
	}
	w.row(sheet, 1, values, nil)
	if w.err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(names), 1)
	w.err = w.SetCellStyle(sheet, "A1", last, w.header)
	if w.err == nil {
		w.err = w.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}
}

// fraction returns an optional percent as a fraction, nil when absent.
func fraction(p *snowball.Percent) any {
	if p == nil {
		return nil
	}
	return p.Ratio()
}

func (w *workbook) timeline(t snowball.Timeline) {
	names := []string{"Month", "Invested", "Profit", "Value", "Real Value", "ROI", "TWR"}
	for _, k := range snowball.AccountKinds {
		names = append(names, k.String())
	}
	w.headers(TimelineSheet, names...)
	styles := map[int]int{1: w.money, 2: w.money, 3: w.money, 4: w.money, 5: w.percent, 6: w.percent}
	for i := range snowball.AccountKinds {
		styles[7+i] = w.money
	}
	for i, r := range t {
		values := []any{r.Month.String(), r.Investment.Float(), r.Profit.Float(), r.TotalValue.Float(),
			r.RealTotalValue.Float(), r.ROI.Ratio(), r.CumulativeTWR.Ratio()}
		for _, k := range snowball.AccountKinds {
			if a, ok := r.Account(k); ok {
				values = append(values, a.Value.Float())
			} else {
				values = append(values, nil)
			}
		}
		w.row(TimelineSheet, i+2, values, styles)
	}
}

func (w *workbook) calendar(years []snowball.CalendarYear) {
	names := []string{"Year"}
	for m := time.January; m <= time.December; m++ {
		names = append(names, m.String()[:3])
	}
	names = append(names, "Q1", "Q2", "Q3", "Q4", "Total")
	w.headers(CalendarSheet, names...)
	styles := make(map[int]int)
	for col := 1; col < len(names); col++ {
		styles[col] = w.percent
	}
	for i, y := range years {
		values := []any{y.Year}
		for _, c := range y.Months {
			values = append(values, fraction(c))
		}
		for _, c := range y.Quarters {
			values = append(values, fraction(c))
		}
		values = append(values, fraction(y.Total))
		w.row(CalendarSheet, i+2, values, styles)
	}
}

func (w *workbook) assets(assets []snowball.LiveAsset) {
	w.headers(AssetsSheet, "Symbol", "Account", "Status", "Quantity", "Cost", "Value", "Profit", "ROI", "Live", "24h")
	styles := map[int]int{4: w.money, 5: w.money, 6: w.money, 7: w.percent, 9: w.percent}
	for i, a := range assets {
		values := []any{a.Symbol, a.Account.String(), a.Status.String(), a.Quantity.String(),
			a.PurchaseValue.Float(), a.CurrentValue.Float(), a.Profit.Float(), a.ROI.Ratio(),
			a.IsLivePrice, fraction(a.Change24h)}
		w.row(AssetsSheet, i+2, values, styles)
	}
}
