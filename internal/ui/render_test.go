package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

func testRecords(now time.Time) []core.Expense {
	rent := core.Expense{ID: "id-rent", Name: "Rent", Category: "Housing",
		Amount: decimal.NewFromInt(1200), DueDay: 31}
	net := core.Expense{ID: "id-net", Name: "Net", Category: "Utilities",
		Amount: decimal.NewFromInt(50), DueDay: 10}
	rent.TogglePaid(core.MonthKeyFor(now), now)
	return []core.Expense{net, rent}
}

func TestRenderScheduleEmpty(t *testing.T) {
	out := RenderSchedule(nil, time.Now())
	if !strings.Contains(out, "No bills yet") {
		t.Fatalf("expected empty-state message, got %q", out)
	}
}

func TestRenderScheduleOrdersAndMarks(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	out := RenderSchedule(testRecords(now), now)

	// Net (due day 10) sorts before Rent (clamped to Feb 29)
	if strings.Index(out, "Net") > strings.Index(out, "Rent") {
		t.Fatalf("expected Net before Rent:\n%s", out)
	}
	if !strings.Contains(out, "2024-02-29") {
		t.Fatalf("expected clamped leap-year due date:\n%s", out)
	}
	if !strings.Contains(out, "paid") || !strings.Contains(out, "unpaid") {
		t.Fatalf("expected paid markers:\n%s", out)
	}
}

func TestRenderSummary(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	out := RenderSummary(testRecords(now), now)

	for _, want := range []string{"1250.00", "1200.00", "50.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in summary:\n%s", want, out)
		}
	}
}

func TestRenderChart(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	out := RenderChart(testRecords(now), now, false)

	if !strings.Contains(out, "Housing") || !strings.Contains(out, "Utilities") {
		t.Fatalf("expected both categories:\n%s", out)
	}
	if !strings.Contains(out, "96.0%") || !strings.Contains(out, "4.0%") {
		t.Fatalf("expected percentage shares:\n%s", out)
	}
	// Largest slice renders first
	if strings.Index(out, "Housing") > strings.Index(out, "Utilities") {
		t.Fatalf("expected Housing first:\n%s", out)
	}
}

func TestRenderChartPaidOnlyAndEmpty(t *testing.T) {
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	out := RenderChart(testRecords(now), now, true)
	if strings.Contains(out, "Utilities") {
		t.Fatalf("unpaid category should be excluded:\n%s", out)
	}

	if out := RenderChart(nil, now, false); !strings.Contains(out, "Nothing to chart") {
		t.Fatalf("expected empty-state message, got %q", out)
	}
}
