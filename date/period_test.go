package date

import (
	"testing"
	"time"
)

func TestPeriodRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{"day", New(2025, time.September, 8), Daily, Range{New(2025, time.September, 8), New(2025, time.September, 8)}},
		{"wednesday", New(2025, time.September, 10), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"leap february", New(2024, time.February, 10), Monthly, Range{New(2024, time.February, 1), New(2024, time.February, 29)}},
		{"second quarter", New(2025, time.May, 20), Quarterly, Range{New(2025, time.April, 1), New(2025, time.June, 30)}},
		{"year", New(2025, time.May, 20), Yearly, Range{New(2025, time.January, 1), New(2025, time.December, 31)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.period.Range(tc.in); got != tc.want {
				t.Errorf("%v.Range() = %v, want %v", tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Overlaps(t *testing.T) {
	r := NewRange(New(2024, time.November, 15), New(2025, time.January, 31))
	testCases := []struct {
		m    Month
		want bool
	}{
		{NewMonth(2024, 10), false},
		{NewMonth(2024, 11), true},
		{NewMonth(2025, 1), true},
		{NewMonth(2025, 2), false},
	}
	for _, tc := range testCases {
		if got := r.Overlaps(tc.m); got != tc.want {
			t.Errorf("Overlaps(%v) = %v, want %v", tc.m, got, tc.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"day": Daily, "Weekly": Weekly, "month": Monthly, "quarter": Quarterly, "YEARLY": Yearly} {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParsePeriod("decade"); err == nil {
		t.Errorf("ParsePeriod(decade) want error")
	}
}
