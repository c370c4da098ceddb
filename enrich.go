package snowball

import "slices"

// Enrich returns a copy of t with the derived fields computed: ROI,
// cumulative TWR, real total value and benchmark returns.
func Enrich(t Timeline, cpi RateTable, benchmarks []Benchmark) Timeline {
	out := slices.Clone(t)
	twr := CumulativeTWR(out)
	realValues := RealValues(out, cpi)
	bench := BenchmarkReturns(out, benchmarks)
	for i := range out {
		out[i].ROI = ROI(out[i])
		out[i].CumulativeTWR = PercentOf(twr[i])
		out[i].RealTotalValue = realValues[i]
		out[i].Benchmarks = bench[i]
	}
	return out
}
