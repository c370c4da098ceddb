package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MonthFormat is the canonical month key format.
const MonthFormat = "2006-01"

// Month is a calendar month key. Every monthly series (account snapshots,
// CPI rates, benchmark indexes) is keyed by Month, and two keys are equal
// only when they designate the same calendar month.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month: NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month {
	d := New(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// ThisMonth returns the current month.
func ThisMonth() Month { return MonthOf(Today()) }

// Year of the month.
func (m Month) Year() int { return m.y }

// Month of the year.
func (m Month) Month() time.Month { return m.m }

// Quarter returns the quarter in [1..4].
func (m Month) Quarter() int { return int(m.m-1)/3 + 1 }

// IsZero returns true for the zero Month.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// Add returns the month i months after m (before if i is negative).
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.index() < x.index() }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.index() > x.index() }

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after x.
func (m Month) Compare(x Month) int {
	switch a, b := m.index(), x.index(); {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sub returns the number of months from x to m.
func (m Month) Sub(x Month) int { return m.index() - x.index() }

func (m Month) index() int { return m.y*12 + int(m.m) - 1 }

// Start returns the first day of the month.
func (m Month) Start() Date { return New(m.y, m.m, 1) }

// End returns the last day of the month.
func (m Month) End() Date { return New(m.y, m.m+1, 0) }

// String formats the month as "2006-01".
func (m Month) String() string { return m.Start().Format(MonthFormat) }

var (
	isoMonthRE    = regexp.MustCompile(`^(\d{4})-(\d{1,2})(?:-(\d{1,2}))?$`)
	dottedMonthRE = regexp.MustCompile(`^(?:(\d{1,2})\.)?(\d{1,2})[./](\d{4})$`)
)

// ParseMonth parses a month key. It accepts "2024-3", "2024-03", full dates
// like "2024-03-31" (the day is ignored) and the European forms "03.2024",
// "03/2024" and "31.03.2024".
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)
	var ys, ms string
	if match := isoMonthRE.FindStringSubmatch(str); match != nil {
		ys, ms = match[1], match[2]
	} else if match := dottedMonthRE.FindStringSubmatch(str); match != nil {
		ys, ms = match[3], match[2]
	} else {
		return Month{}, fmt.Errorf("invalid month %q want format %q", str, "2006-01")
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Month{}, fmt.Errorf("invalid year in month %q: %w", str, err)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 1 || m > 12 {
		return Month{}, fmt.Errorf("invalid month number in %q", str)
	}
	return NewMonth(y, time.Month(m)), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// MarshalText implements encoding.TextMarshaler, so Month can be used as a JSON map key.
func (m Month) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	v, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

var _ json.Marshaler = Month{}

// MarshalJSON encodes the month as a JSON string.
func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

// UnmarshalJSON decodes a month from a JSON string.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(str))
}
