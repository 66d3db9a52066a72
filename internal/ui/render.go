// Package ui renders derived schedule and summary data for the terminal.
// It is a pure presentation layer: every value it prints comes from the
// core aggregation functions, recomputed per render.
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	paidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
)

const chartBarWidth = 30

// RenderSchedule prints the month's bills ordered by due date, with the
// days-until-due count and per-month paid marker.
func RenderSchedule(records []core.Expense, now time.Time) string {
	if len(records) == 0 {
		return mutedStyle.Render("No bills yet. Add one with 'billtrack add'.") + "\n"
	}

	key := core.MonthKeyFor(now)
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Bills for %s", string(key))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-38s %-15s %10s  %-10s %8s  %s\n",
		"ID", "NAME", "AMOUNT", "DUE", "IN DAYS", "STATUS"))

	for _, e := range core.SortSchedule(records, now) {
		due := core.DueDateForMonth(e, now)
		days := core.DaysUntilDue(e, now)

		status := mutedStyle.Render("unpaid")
		if e.IsPaid(key) {
			status = paidStyle.Render("paid")
		}

		daysCol := fmt.Sprintf("%d", days)
		if days < 0 && !e.IsPaid(key) {
			daysCol = overdueStyle.Render(daysCol)
		}

		b.WriteString(fmt.Sprintf("%-38s %-15s %10s  %-10s %8s  %s\n",
			e.ID,
			truncate(e.Name, 15),
			core.FormatAmount(e.Amount),
			due.Format("2006-01-02"),
			daysCol,
			status))
	}
	return b.String()
}

// RenderSummary prints the month's totals: everything, paid so far, and the
// unpaid remainder.
func RenderSummary(records []core.Expense, now time.Time) string {
	total := core.TotalAll(records)
	paid := core.TotalPaid(records, now)
	unpaid := core.TotalUnpaid(records, now)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Summary for %s", string(core.MonthKeyFor(now)))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-8s %12s\n", "Total", core.FormatAmount(total)))
	b.WriteString(fmt.Sprintf("%-8s %12s\n", "Paid", paidStyle.Render(core.FormatAmount(paid))))
	b.WriteString(fmt.Sprintf("%-8s %12s\n", "Unpaid", core.FormatAmount(unpaid)))
	return b.String()
}

// RenderChart prints a category breakdown bar chart. With paidOnly set, only
// bills paid for now's month contribute.
func RenderChart(records []core.Expense, now time.Time, paidOnly bool) string {
	totals := core.CategoryTotals(records, now, paidOnly)
	pct := core.PercentageBreakdown(totals)
	if len(pct) == 0 {
		return mutedStyle.Render("Nothing to chart.") + "\n"
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	// Largest slice first, name tie-break for a stable chart
	sort.Slice(names, func(i, j int) bool {
		a, b := totals[names[i]], totals[names[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})

	title := "Spending by category"
	if paidOnly {
		title += " (paid this month)"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	for _, name := range names {
		share := pct[name]
		width := int(share.Mul(decimal.NewFromInt(chartBarWidth)).
			Div(decimal.NewFromInt(100)).Round(0).IntPart())
		if width < 1 {
			width = 1
		}
		if width > chartBarWidth {
			width = chartBarWidth
		}
		b.WriteString(fmt.Sprintf("%-15s %s %10s  %5s%%\n",
			truncate(name, 15),
			barStyle.Render(strings.Repeat("█", width)),
			core.FormatAmount(totals[name]),
			share.StringFixed(1)))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
