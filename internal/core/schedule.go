// Package core provides the expense scheduling and aggregation model.
//
// This file implements the pure derivation functions: due dates for the
// reference month, schedule ordering, and paid/unpaid and per-category
// totals. All functions take the record list and a reference "now" and hold
// no state; callers recompute on every query.
package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DueDateForMonth resolves the expense's due day within now's month. The due
// day is clamped into the month's length, so day 31 lands on Feb 28 (29 in
// leap years). The clamp is recomputed per month and never persisted: the
// bill "moves" in short months and returns to its configured day afterwards.
func DueDateForMonth(e Expense, now time.Time) time.Time {
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := e.DueDay
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue returns whole days from today to the expense's due date in
// now's month. Time-of-day is not part of the comparison; negative means
// overdue.
func DaysUntilDue(e Expense, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(DueDateForMonth(e, now).Sub(today).Hours() / 24)
}

// SortSchedule returns a copy of records ordered by due date ascending, with
// a case-insensitive name tie-break for same-day bills. The order is total
// and deterministic; sorting an already-sorted list is a no-op.
func SortSchedule(records []Expense, now time.Time) []Expense {
	out := append([]Expense(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := DueDateForMonth(out[i], now), DueDateForMonth(out[j], now)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// TotalAll sums all amounts regardless of paid status.
func TotalAll(records []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range records {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// TotalPaid sums the amounts of records paid for now's month.
func TotalPaid(records []Expense, now time.Time) decimal.Decimal {
	key := MonthKeyFor(now)
	sum := decimal.Zero
	for _, e := range records {
		if e.IsPaid(key) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// TotalUnpaid sums the amounts of records not paid for now's month.
// TotalPaid and TotalUnpaid always partition TotalAll.
func TotalUnpaid(records []Expense, now time.Time) decimal.Decimal {
	return TotalAll(records).Sub(TotalPaid(records, now))
}

// CategoryTotals sums amounts grouped by category. With paidOnly set, only
// records paid for now's month contribute.
func CategoryTotals(records []Expense, now time.Time, paidOnly bool) map[string]decimal.Decimal {
	key := MonthKeyFor(now)
	totals := make(map[string]decimal.Decimal)
	for _, e := range records {
		if paidOnly && !e.IsPaid(key) {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// PercentageBreakdown converts category totals into each category's share of
// the grand total, times 100. A zero grand total yields an empty map rather
// than a division by zero.
func PercentageBreakdown(totals map[string]decimal.Decimal) map[string]decimal.Decimal {
	grand := decimal.Zero
	for _, v := range totals {
		grand = grand.Add(v)
	}
	out := make(map[string]decimal.Decimal, len(totals))
	if grand.IsZero() {
		return out
	}
	hundred := decimal.NewFromInt(100)
	for k, v := range totals {
		out[k] = v.Div(grand).Mul(hundred)
	}
	return out
}
