package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

type patchPayload struct {
	Notes      Optional[string]          `json:"notes"`
	ActualCost Optional[decimal.Decimal] `json:"actual_cost"`
}

func TestOptionalAbsentField(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Notes.IsSet() {
		t.Fatal("absent field must not be set")
	}
	if p.Notes.Ptr() != nil {
		t.Fatal("absent field must yield nil pointer")
	}
}

func TestOptionalExplicitNull(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{"notes":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Notes.IsSet() {
		t.Fatal("null field must be set")
	}
	if !p.Notes.IsNull() {
		t.Fatal("null field must be null")
	}
}

func TestOptionalValue(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{"notes":"urgent","actual_cost":84.90}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	notes, ok := p.Notes.Value()
	if !ok || notes != "urgent" {
		t.Fatalf("unexpected notes %q ok=%v", notes, ok)
	}
	cost, ok := p.ActualCost.Value()
	if !ok || !cost.Equal(decimal.RequireFromString("84.90")) {
		t.Fatalf("unexpected cost %s ok=%v", cost, ok)
	}
}
