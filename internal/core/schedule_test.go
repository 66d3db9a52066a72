package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func expense(name string, amount int64, dueDay int) Expense {
	return Expense{
		ID:       "id-" + name,
		Name:     name,
		Category: "General",
		Amount:   decimal.NewFromInt(amount),
		DueDay:   dueDay,
	}
}

func TestDueDateForMonthClamping(t *testing.T) {
	cases := []struct {
		name    string
		dueDay  int
		now     time.Time
		wantDay int
	}{
		{"within month", 15, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 15},
		{"day 31 in 30-day month", 31, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), 30},
		{"day 31 in leap february", 31, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 29},
		{"day 31 in non-leap february", 31, time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), 28},
		{"day 29 in non-leap february", 29, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 28},
		{"day 1", 1, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DueDateForMonth(expense("x", 1, tc.dueDay), tc.now)
			want := time.Date(tc.now.Year(), tc.now.Month(), tc.wantDay, 0, 0, 0, 0, time.UTC)
			if !got.Equal(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	// Rent due on day 31, mid leap-year February: due Feb 29, 14 days out
	now := time.Date(2024, 2, 15, 13, 45, 0, 0, time.UTC)
	rent := expense("Rent", 1200, 31)

	due := DueDateForMonth(rent, now)
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !due.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, due)
	}
	if got := DaysUntilDue(rent, now); got != 14 {
		t.Fatalf("expected 14 days until due, got %d", got)
	}

	// Past the due date the count goes negative
	late := time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	if got := DaysUntilDue(expense("Gym", 30, 10), late); got != -19 {
		t.Fatalf("expected -19, got %d", got)
	}

	// Due today regardless of time of day
	if got := DaysUntilDue(expense("Net", 50, 15), now); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestSortScheduleOrdersByDueDateThenName(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []Expense{
		expense("Zoo", 10, 5),
		expense("Rent", 1200, 1),
		expense("Apple", 5, 5),
		expense("water", 40, 20),
	}

	sorted := SortSchedule(records, now)
	gotNames := make([]string, len(sorted))
	for i, e := range sorted {
		gotNames[i] = e.Name
	}
	want := []string{"Rent", "Apple", "Zoo", "water"}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, gotNames)
		}
	}

	// Input left untouched
	if records[0].Name != "Zoo" {
		t.Fatalf("input slice must not be reordered")
	}

	// Re-sorting a sorted list is a no-op
	again := SortSchedule(sorted, now)
	for i := range sorted {
		if again[i].Name != sorted[i].Name {
			t.Fatalf("re-sort changed order at %d: %s vs %s", i, again[i].Name, sorted[i].Name)
		}
	}
}

func TestSortScheduleCaseInsensitiveTieBreak(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []Expense{expense("zoo", 10, 5), expense("Apple", 5, 5)}
	sorted := SortSchedule(records, now)
	if sorted[0].Name != "Apple" || sorted[1].Name != "zoo" {
		t.Fatalf("expected [Apple zoo], got [%s %s]", sorted[0].Name, sorted[1].Name)
	}
}

func TestTotalsPartition(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	key := MonthKeyFor(now)

	rent := expense("Rent", 1200, 1)
	net := expense("Net", 50, 10)
	gym := expense("Gym", 30, 20)
	rent.TogglePaid(key, now)
	gym.TogglePaid(key, now)
	records := []Expense{rent, net, gym}

	all := TotalAll(records)
	paid := TotalPaid(records, now)
	unpaid := TotalUnpaid(records, now)

	if !all.Equal(decimal.NewFromInt(1280)) {
		t.Fatalf("expected total 1280, got %s", all)
	}
	if !paid.Equal(decimal.NewFromInt(1230)) {
		t.Fatalf("expected paid 1230, got %s", paid)
	}
	if !paid.Add(unpaid).Equal(all) {
		t.Fatalf("paid %s + unpaid %s != total %s", paid, unpaid, all)
	}
}

func TestCategoryTotals(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	key := MonthKeyFor(now)

	rent := expense("Rent", 1200, 1)
	rent.Category = "Housing"
	net := expense("Net", 50, 10)
	net.Category = "Utilities"
	power := expense("Power", 80, 12)
	power.Category = "Utilities"
	rent.TogglePaid(key, now)
	records := []Expense{rent, net, power}

	totals := CategoryTotals(records, now, false)
	if !totals["Housing"].Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected Housing 1200, got %s", totals["Housing"])
	}
	if !totals["Utilities"].Equal(decimal.NewFromInt(130)) {
		t.Fatalf("expected Utilities 130, got %s", totals["Utilities"])
	}

	// Category sums add up to the grand total
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}
	if !sum.Equal(TotalAll(records)) {
		t.Fatalf("category sums %s != total %s", sum, TotalAll(records))
	}

	paidOnly := CategoryTotals(records, now, true)
	if len(paidOnly) != 1 || !paidOnly["Housing"].Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected only Housing paid, got %v", paidOnly)
	}

	// A different reference month sees nothing paid
	january := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := CategoryTotals(records, january, true); len(got) != 0 {
		t.Fatalf("expected empty for january, got %v", got)
	}
}

func TestPercentageBreakdown(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"Housing":   decimal.NewFromInt(75),
		"Utilities": decimal.NewFromInt(25),
	}
	pct := PercentageBreakdown(totals)
	if !pct["Housing"].Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected Housing 75%%, got %s", pct["Housing"])
	}
	if !pct["Utilities"].Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected Utilities 25%%, got %s", pct["Utilities"])
	}
}

func TestPercentageBreakdownZeroTotal(t *testing.T) {
	if got := PercentageBreakdown(nil); len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %v", got)
	}
	zero := map[string]decimal.Decimal{"Other": decimal.Zero}
	if got := PercentageBreakdown(zero); len(got) != 0 {
		t.Fatalf("expected empty breakdown for zero totals, got %v", got)
	}
}
