package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDedupeItems(t *testing.T) {
	items := []BudgetItem{
		{Category: "Aluguel", Type: NatureExpense, Planned: decimal.NewFromInt(1000)},
		{Category: "Aluguel", Type: NatureExpense, Planned: decimal.NewFromInt(900)}, // dup, dropped
		{Category: "Aluguel", Type: NatureIncome, Planned: decimal.NewFromInt(5)},    // same name, other type
		{Category: "Mercado", Type: NatureExpense, Planned: decimal.NewFromInt(800)},
	}
	out := DedupeItems(items)
	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	if !out[0].Planned.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("dedupe must keep the first occurrence, got %s", out[0].Planned)
	}
}

func TestSumPlanned(t *testing.T) {
	items := []BudgetItem{
		{Category: "Aluguel", Type: NatureExpense, Planned: decimal.NewFromInt(1000)},
		{Category: "Mercado", Type: NatureExpense, Planned: decimal.NewFromInt(800)},
		{Category: "Salário", Type: NatureIncome, Planned: decimal.NewFromInt(4000)},
	}
	if got := SumPlanned(items, NatureExpense); !got.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("expense planned = %s, want 1800", got)
	}
	if got := SumPlanned(items, NatureIncome); !got.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("income planned = %s, want 4000", got)
	}
}

func TestBudgetValidate(t *testing.T) {
	base := NewMonth(2025, 5)
	good := Budget{
		UserID: "u1",
		Name:   "Orçamento 2025",
		Start:  NewDate(2025, 1, 1),
		End:    NewDate(2025, 12, 31),
		Type:   BudgetManual,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	auto := good
	auto.Type = BudgetAutomatic
	if err := auto.Validate(); err == nil {
		t.Fatal("automatic budget without base month should fail")
	}
	auto.BaseMonth = &base
	if err := auto.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	inverted := good
	inverted.Start, inverted.End = inverted.End, inverted.Start
	if err := inverted.Validate(); err == nil {
		t.Fatal("inverted period should fail")
	}
}
