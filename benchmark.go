package snowball

import "github.com/etnz/snowball/date"

// Benchmark is a market index to compare the portfolio with.
type Benchmark struct {
	Name  string                 `json:"name"`
	Index map[date.Month]float64 `json:"index"`
}

// BenchmarkReturn is a benchmark's cumulative change since the first
// timeline month it is known. Return is nil before that month.
type BenchmarkReturn struct {
	Name   string   `json:"name"`
	Return *Percent `json:"return,omitempty"`
}

func (b Benchmark) history() *date.History[float64] {
	h := new(date.History[float64])
	for m, v := range b.Index {
		h.Append(m, v)
	}
	return h
}

// BenchmarkReturns computes, for every row, the return of each benchmark
// since the first row. Missing index months are forward filled. An index
// starting after the first row is rebased on its first known month, rows
// before it have no return.
func BenchmarkReturns(t Timeline, benchmarks []Benchmark) [][]BenchmarkReturn {
	res := make([][]BenchmarkReturn, len(t))
	if len(t) == 0 || len(benchmarks) == 0 {
		return res
	}
	for _, b := range benchmarks {
		h := b.history()
		var base float64
		for i, r := range t {
			br := BenchmarkReturn{Name: b.Name}
			if v, ok := h.ValueAsOf(r.Month); ok {
				if base == 0 {
					base = v
				}
				if base != 0 {
					br.Return = PercentOf(v/base - 1).ptr()
				}
			}
			res[i] = append(res[i], br)
		}
	}
	return res
}
