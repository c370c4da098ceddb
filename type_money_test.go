package snowball

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(1234.5, "EUR"), "1,234.50"},
		{M(1234.5, "USD"), "1,234.50"},
		{M(-10, "USD"), "10.00"},
		{NO(3.14159), "3.14"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.m.String(); !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	got := NO(1).Add(PLN(2))
	if !got.Equal(PLN(3)) {
		t.Errorf("NO(1)+PLN(2) = %v, want %v", got, PLN(3))
	}
	defer func() {
		if recover() == nil {
			t.Error("adding two different currencies must panic")
		}
	}()
	PLN(1).Add(M(1, "EUR"))
}

func TestMoney_Ratio(t *testing.T) {
	if r, ok := PLN(50).Ratio(PLN(200)); !ok || r != 0.25 {
		t.Errorf("Ratio() = %v, %v, want 0.25, true", r, ok)
	}
	if _, ok := PLN(50).Ratio(PLN(0)); ok {
		t.Error("Ratio() by zero must not be ok")
	}
}

func TestMoney_Within(t *testing.T) {
	tests := []struct {
		a, b      Money
		tolerance float64
		want      bool
	}{
		{PLN(100), PLN(101), 1, true},
		{PLN(100), PLN(101.01), 1, false},
		{PLN(100), PLN(95), 5, true},
		{PLN(100), PLN(94.99), 5, false},
	}
	for _, tt := range tests {
		if got := tt.a.Within(tt.b, tt.tolerance); got != tt.want {
			t.Errorf("%v.Within(%v, %v) = %v, want %v", tt.a, tt.b, tt.tolerance, got, tt.want)
		}
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(PLN(12.345))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"currency":"PLN","amount":"12.35"}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !back.Equal(PLN(12.35)) {
		t.Errorf("json.Unmarshal() = %v, want %v", back, PLN(12.35))
	}
}

func TestPercent(t *testing.T) {
	p := PercentOf(0.116666)
	if got, want := p.Round(2), Percent(11.67); got != want {
		t.Errorf("Round(2) = %v, want %v", got, want)
	}
	if got := Percent(0.001).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
	if got := Percent(-12.5).String(); got != "-12.50%" {
		t.Errorf("String() = %q, want %q", got, "-12.50%")
	}
}
