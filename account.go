package snowball

import (
	"fmt"
	"strings"

	"github.com/etnz/snowball/date"
)

// AccountKind identifies a sub-portfolio.
type AccountKind int

const (
	// Retirement is the employer sponsored retirement plan. It is excluded
	// from the actively managed sub-portfolio.
	Retirement AccountKind = iota
	// Brokerage is the (tax sheltered or not) stock account.
	Brokerage
	Crypto
	Cash
)

// AccountKinds lists all kinds in display order.
var AccountKinds = []AccountKind{Retirement, Brokerage, Crypto, Cash}

// strategy is the per kind interpretation of an account.
type strategy struct {
	name string
	// active is true when the account belongs to the actively managed sub-portfolio.
	active bool
	// repriced is false when positions keep their face value unless a price
	// is explicitly quoted.
	repriced bool
	// taxSheltered accounts contribute to the tax shield estimate.
	taxSheltered bool
}

var strategies = map[AccountKind]strategy{
	Retirement: {name: "retirement", active: false, repriced: true, taxSheltered: true},
	Brokerage:  {name: "brokerage", active: true, repriced: true},
	Crypto:     {name: "crypto", active: true, repriced: true},
	Cash:       {name: "cash", active: true, repriced: false},
}

// kindAliases maps the names found in exported files to a kind.
var kindAliases = map[string]AccountKind{
	"retirement": Retirement,
	"ppk":        Retirement,
	"pension":    Retirement,
	"brokerage":  Brokerage,
	"broker":     Brokerage,
	"ike":        Brokerage,
	"stocks":     Brokerage,
	"crypto":     Crypto,
	"cash":       Cash,
	"savings":    Cash,
}

func (k AccountKind) strategy() strategy { return strategies[k] }

func (k AccountKind) String() string {
	if s, ok := strategies[k]; ok {
		return s.name
	}
	return fmt.Sprintf("account(%d)", int(k))
}

// Active reports whether k is part of the actively managed sub-portfolio.
func (k AccountKind) Active() bool { return k.strategy().active }

// ParseAccountKind parses a kind name or one of its aliases, case insensitive.
func ParseAccountKind(s string) (AccountKind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown account kind %q", s)
}

func (k AccountKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *AccountKind) UnmarshalText(text []byte) error {
	v, err := ParseAccountKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// AccountSnapshot is the state of one account at the end of a month.
type AccountSnapshot struct {
	Month       date.Month `json:"month"`
	NetInvested Money      `json:"netInvested"`
	Profit      Money      `json:"profit"`
}

// TotalValue returns NetInvested + Profit.
func (s AccountSnapshot) TotalValue() Money { return s.NetInvested.Add(s.Profit) }

// AccountSeries is the monthly history of one account.
type AccountSeries struct {
	Kind      AccountKind       `json:"kind"`
	Snapshots []AccountSnapshot `json:"snapshots"`
}

// history returns the series as a date.History, later snapshots of the same
// month overwriting earlier ones.
func (s AccountSeries) history() *date.History[AccountSnapshot] {
	h := new(date.History[AccountSnapshot])
	for _, snap := range s.Snapshots {
		h.Append(snap.Month, snap)
	}
	return h
}
