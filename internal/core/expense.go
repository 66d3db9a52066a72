package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned when the user leaves the category field blank.
const DefaultCategory = "Other"

type (
	// MonthKey identifies a calendar month as "YYYY-MM". Paid status is
	// scoped per month key.
	MonthKey string

	// Expense is a recurring monthly bill. DueDay is a day-of-month, not a
	// full date; the actual due date for a given month is derived by the
	// schedule functions. PaidByMonth maps a month key to the RFC3339
	// timestamp at which that month's instance was marked paid; an absent
	// key means unpaid.
	Expense struct {
		ID          string
		Name        string
		Category    string
		Amount      decimal.Decimal
		DueDay      int
		PaidByMonth map[MonthKey]string
	}
)

var (
	ErrEmptyID       = errors.New("empty id")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDueDay = errors.New("invalid due day")
	ErrBadMonthKey   = errors.New("invalid month key")
)

// ParseMonthKey validates that s is a well-formed "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", ErrBadMonthKey
	}
	return MonthKey(s), nil
}

// MonthKeyFor returns the month key for now's year and month.
func MonthKeyFor(now time.Time) MonthKey {
	return MonthKey(now.Format("2006-01"))
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if e.DueDay < 1 || e.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

// IsPaid reports whether the expense has been marked paid for the month.
func (e Expense) IsPaid(key MonthKey) bool {
	_, ok := e.PaidByMonth[key]
	return ok
}

// PaidAt returns the timestamp at which the month was marked paid. A missing
// key or a malformed stored timestamp both report not-paid-at; presence of
// the key alone still counts as paid (see IsPaid).
func (e Expense) PaidAt(key MonthKey) (time.Time, bool) {
	raw, ok := e.PaidByMonth[key]
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// TogglePaid marks the month paid at now, or unpaid if it was already paid.
// Applying it twice restores the original state.
func (e *Expense) TogglePaid(key MonthKey, now time.Time) {
	if e.PaidByMonth == nil {
		e.PaidByMonth = make(map[MonthKey]string)
	}
	if _, ok := e.PaidByMonth[key]; ok {
		delete(e.PaidByMonth, key)
		return
	}
	e.PaidByMonth[key] = now.Format(time.RFC3339)
}

// Clone returns a deep copy, so callers can hand out snapshots without
// sharing the paid map.
func (e Expense) Clone() Expense {
	out := e
	out.PaidByMonth = make(map[MonthKey]string, len(e.PaidByMonth))
	for k, v := range e.PaidByMonth {
		out.PaidByMonth[k] = v
	}
	return out
}
