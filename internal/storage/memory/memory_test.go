package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

func TestStoreIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	seed := []core.Expense{{ID: "a1", Name: "Net", Category: "Utilities",
		Amount: decimal.NewFromInt(50), DueDay: 10,
		PaidByMonth: map[core.MonthKey]string{}}}
	store := New(seed)

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loaded[0].PaidByMonth["2024-02"] = "2024-02-15T10:00:00Z"

	again, _ := store.Load(ctx)
	if again[0].IsPaid("2024-02") {
		t.Fatalf("mutating a loaded copy must not affect the store")
	}
}

func TestStoreFailSaves(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	store.FailSaves(true)
	if err := store.Save(ctx, nil); err == nil {
		t.Fatalf("expected save failure")
	}
	store.FailSaves(false)
	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if store.Saves() != 1 {
		t.Fatalf("expected 1 completed save, got %d", store.Saves())
	}
}
