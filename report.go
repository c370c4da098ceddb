package snowball

import (
	"fmt"
	"strings"
)

// Category classifies a report message.
type Category int

const (
	// Structural messages are fatal for the series they refer to.
	Structural Category = iota
	// Value messages report a skipped row.
	Value
	// Consistency messages report a broken identity or a reconciliation mismatch.
	Consistency
	// MissingPrice messages report a held symbol without any price.
	MissingPrice
)

var categoryNames = [...]string{"structural", "value", "consistency", "missing-price"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(text []byte) error {
	for i, n := range categoryNames {
		if n == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown report category %q", text)
}

// Message is a single finding.
type Message struct {
	Category Category `json:"category"`
	// Account is the account kind the message refers to, if any.
	Account string `json:"account,omitempty"`
	// Ref locates the finding: a file and line, a month, a symbol.
	Ref         string `json:"ref,omitempty"`
	Text        string `json:"text"`
	Discrepancy Money  `json:"discrepancy,omitzero"`
}

func (m Message) String() string {
	var b strings.Builder
	b.WriteString(m.Category.String())
	if m.Account != "" {
		b.WriteString(" [" + m.Account + "]")
	}
	if m.Ref != "" {
		b.WriteString(" " + m.Ref)
	}
	b.WriteString(": " + m.Text)
	if !m.Discrepancy.IsZero() {
		b.WriteString(" (discrepancy " + m.Discrepancy.String() + ")")
	}
	return b.String()
}

// Report accumulates non fatal findings. The zero value is ready to use.
type Report struct {
	Messages []Message `json:"messages"`
}

func (r *Report) Add(m Message) { r.Messages = append(r.Messages, m) }

// Addf adds a message without discrepancy.
func (r *Report) Addf(c Category, account, ref, format string, args ...any) {
	r.Add(Message{Category: c, Account: account, Ref: ref, Text: fmt.Sprintf(format, args...)})
}

// Merge appends all messages of o.
func (r *Report) Merge(o Report) { r.Messages = append(r.Messages, o.Messages...) }

// Count returns the number of messages in category c.
func (r Report) Count(c Category) int {
	n := 0
	for _, m := range r.Messages {
		if m.Category == c {
			n++
		}
	}
	return n
}

// HasStructural reports whether any message is structural.
func (r Report) HasStructural() bool { return r.Count(Structural) > 0 }

// Warnings returns the non structural messages.
func (r Report) Warnings() []Message {
	var w []Message
	for _, m := range r.Messages {
		if m.Category != Structural {
			w = append(w, m)
		}
	}
	return w
}

// Empty reports whether there is nothing to report.
func (r Report) Empty() bool { return len(r.Messages) == 0 }
