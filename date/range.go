package date

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Overlaps returns true if the month m has at least one day in the range.
func (r Range) Overlaps(m Month) bool { return !m.End().Before(r.From) && !m.Start().After(r.To) }
