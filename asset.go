package snowball

import (
	"fmt"

	"github.com/etnz/snowball/date"
)

// PositionStatus is the life cycle state of a position.
type PositionStatus int

const (
	Open PositionStatus = iota
	Closed
	CashPosition
)

var statusNames = [...]string{"open", "closed", "cash"}

func (s PositionStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// ParsePositionStatus parses "open", "closed" or "cash".
func ParsePositionStatus(s string) (PositionStatus, error) {
	for i, n := range statusNames {
		if n == s {
			return PositionStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown position status %q", s)
}

func (s PositionStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *PositionStatus) UnmarshalText(text []byte) error {
	v, err := ParsePositionStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// repriced reports whether positions in this state are revalued from prices.
// Closed positions are immutable history.
func (s PositionStatus) repriced() bool { return s == Open || s == CashPosition }

// LiveAsset is a currently held position.
type LiveAsset struct {
	Symbol   string         `json:"symbol"`
	Account  AccountKind    `json:"account"`
	Status   PositionStatus `json:"status"`
	Quantity Quantity       `json:"quantity"`
	// PurchaseValue is the cost basis.
	PurchaseValue Money   `json:"purchaseValue"`
	CurrentValue  Money   `json:"currentValue"`
	Profit        Money   `json:"profit"`
	ROI           Percent `json:"roi"`
	IsLivePrice   bool    `json:"isLivePrice"`
	// Change24h is absent unless the price is live and a previous session
	// price is known.
	Change24h *Percent `json:"change24h,omitempty"`
}

// ClosedPosition is a sold position, with its realized profit or loss.
type ClosedPosition struct {
	Symbol         string      `json:"symbol"`
	Account        AccountKind `json:"account"`
	PurchaseValue  Money       `json:"purchaseValue"`
	SaleValue      Money       `json:"saleValue"`
	RealizedProfit Money       `json:"realizedProfit"`
	Closed         date.Date   `json:"closed,omitzero"`
}

// FlowKind is the kind of cash flow event.
type FlowKind int

const (
	Deposit FlowKind = iota
	Withdrawal
	Dividend
	Interest
)

var flowKindNames = [...]string{"deposit", "withdrawal", "dividend", "interest"}

func (k FlowKind) String() string {
	if k < 0 || int(k) >= len(flowKindNames) {
		return fmt.Sprintf("flow(%d)", int(k))
	}
	return flowKindNames[k]
}

// ParseFlowKind parses a flow kind name.
func ParseFlowKind(s string) (FlowKind, error) {
	for i, n := range flowKindNames {
		if n == s {
			return FlowKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cash flow kind %q", s)
}

func (k FlowKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *FlowKind) UnmarshalText(text []byte) error {
	v, err := ParseFlowKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// external reports whether the flow moves money across the portfolio boundary.
func (k FlowKind) external() bool { return k == Deposit || k == Withdrawal }

// FlowStatus tells whether an internal flow reduces the net invested base.
type FlowStatus int

const (
	// Active internal flows were reinvested and are subtracted from net invested capital.
	Active FlowStatus = iota
	// Legacy flows are informational only.
	Legacy
)

func (s FlowStatus) String() string {
	if s == Legacy {
		return "legacy"
	}
	return "active"
}

// ParseFlowStatus parses "active" or "legacy". Empty means active.
func ParseFlowStatus(s string) (FlowStatus, error) {
	switch s {
	case "", "active":
		return Active, nil
	case "legacy", "info", "informational":
		return Legacy, nil
	}
	return 0, fmt.Errorf("unknown cash flow status %q", s)
}

func (s FlowStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *FlowStatus) UnmarshalText(text []byte) error {
	v, err := ParseFlowStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CashFlow is a dated movement of money on an account.
type CashFlow struct {
	Date    date.Date   `json:"date"`
	Account AccountKind `json:"account"`
	Kind    FlowKind    `json:"kind"`
	Amount  Money       `json:"amount"`
	Status  FlowStatus  `json:"status"`
	Note    string      `json:"note,omitempty"`
}

// Prices maps a symbol to a price.
type Prices map[string]float64

// positive returns the price of symbol if it is strictly positive.
func (p Prices) positive(symbol string) (float64, bool) {
	v, ok := p[symbol]
	return v, ok && v > 0
}
