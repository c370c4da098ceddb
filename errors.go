package snowball

import "errors"

var (
	// ErrMissingColumn is returned when a required column is absent from an
	// account series. The series must not be merged.
	ErrMissingColumn = errors.New("missing column")

	// ErrEmptyTimeline is returned when there is nothing to analyze.
	ErrEmptyTimeline = errors.New("empty timeline")

	// ErrAsOfBeforeHistory is returned when the valuation day is before the
	// last recorded month.
	ErrAsOfBeforeHistory = errors.New("valuation day before the last recorded month")
)
