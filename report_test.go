package snowball

import (
	"encoding/json"
	"testing"
)

func TestReport(t *testing.T) {
	var r Report
	r.Addf(Structural, "crypto", "crypto.csv", "missing column %q", "profit")
	r.Addf(Value, "crypto", "crypto.csv:3", "invalid date")
	var o Report
	o.Add(Message{Category: Consistency, Text: "mismatch", Discrepancy: PLN(6)})
	r.Merge(o)

	if got := r.Count(Value); got != 1 {
		t.Errorf("Count(Value) = %d, want 1", got)
	}
	if !r.HasStructural() {
		t.Error("HasStructural() = false, want true")
	}
	if got := len(r.Warnings()); got != 2 {
		t.Errorf("len(Warnings()) = %d, want 2", got)
	}
	want := `structural [crypto] crypto.csv: missing column "profit"`
	if got := r.Messages[0].String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestReport_JSON(t *testing.T) {
	var r Report
	r.Addf(MissingPrice, "", "X", "no price")
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"messages":[{"category":"missing-price","ref":"X","text":"no price"}]}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
	var back Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.Messages[0].Category != MissingPrice {
		t.Errorf("Category = %v, want %v", back.Messages[0].Category, MissingPrice)
	}
}
