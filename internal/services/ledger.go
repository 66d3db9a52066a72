// Package services provides the command API over the expense collection.
//
// The Ledger owns the in-memory collection and mirrors it to the store after
// every mutation, writing the whole collection each time. Mutations run
// serially under a mutex; no two saves are ever in flight at once.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"billtrack/internal/core"
	applog "billtrack/internal/log"
)

var ErrNotFound = errors.New("expense not found")

// Store is the persistence collaborator: load once at startup, save the full
// collection after each mutation.
type Store interface {
	Load(ctx context.Context) ([]core.Expense, error)
	Save(ctx context.Context, records []core.Expense) error
}

type Ledger struct {
	mu      sync.Mutex
	store   Store
	records []core.Expense
}

// NewLedger loads the persisted collection and returns a ledger owning it.
func NewLedger(ctx context.Context, store Store) (*Ledger, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return &Ledger{store: store, records: records}, nil
}

// Snapshot returns a deep copy of the collection for pure queries.
func (l *Ledger) Snapshot() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneAll(l.records)
}

// Add creates a new expense from an already-validated draft. The id is
// generated here and is immutable afterwards.
func (l *Ledger) Add(ctx context.Context, d Draft) (core.Expense, error) {
	e := core.Expense{
		ID:          uuid.NewString(),
		Name:        d.Name,
		Category:    d.Category,
		Amount:      d.Amount,
		DueDay:      d.DueDay,
		PaidByMonth: make(map[core.MonthKey]string),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := append(cloneAll(l.records), e)
	if err := l.store.Save(ctx, next); err != nil {
		return core.Expense{}, fmt.Errorf("save after add: %w", err)
	}
	l.records = next

	slog.InfoContext(ctx, "Expense added",
		applog.FieldExpenseID, e.ID,
		applog.FieldName, e.Name,
		applog.FieldCategory, e.Category,
		applog.FieldDueDay, e.DueDay)
	return e.Clone(), nil
}

// Update replaces the named expense's fields with the draft. Identity is
// preserved and the paid history carries over from the previous version.
func (l *Ledger) Update(ctx context.Context, id string, d Draft) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return core.Expense{}, fmt.Errorf("update expense %s: %w", id, ErrNotFound)
	}

	next := cloneAll(l.records)
	e := next[idx]
	e.Name = d.Name
	e.Category = d.Category
	e.Amount = d.Amount
	e.DueDay = d.DueDay
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %s: %w", id, err)
	}
	next[idx] = e

	if err := l.store.Save(ctx, next); err != nil {
		return core.Expense{}, fmt.Errorf("save after update: %w", err)
	}
	l.records = next

	slog.InfoContext(ctx, "Expense updated", applog.FieldExpenseID, id, applog.FieldName, e.Name)
	return e.Clone(), nil
}

// Delete removes the named expense.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete expense %s: %w", id, ErrNotFound)
	}

	next := cloneAll(l.records)
	next = append(next[:idx], next[idx+1:]...)

	if err := l.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save after delete: %w", err)
	}
	l.records = next

	slog.InfoContext(ctx, "Expense deleted", applog.FieldExpenseID, id)
	return nil
}

// TogglePaid flips the paid state of the expense for now's month.
func (l *Ledger) TogglePaid(ctx context.Context, id string, now time.Time) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return core.Expense{}, fmt.Errorf("toggle paid %s: %w", id, ErrNotFound)
	}

	key := core.MonthKeyFor(now)
	next := cloneAll(l.records)
	next[idx].TogglePaid(key, now)

	if err := l.store.Save(ctx, next); err != nil {
		return core.Expense{}, fmt.Errorf("save after toggle: %w", err)
	}
	l.records = next

	slog.InfoContext(ctx, "Paid state toggled",
		applog.FieldExpenseID, id,
		applog.FieldMonthKey, string(key),
		applog.FieldPaid, next[idx].IsPaid(key))
	return next[idx].Clone(), nil
}

// Replace swaps in a whole new collection, used by import. Ids must already
// be unique; duplicates are rejected.
func (l *Ledger) Replace(ctx context.Context, records []core.Expense) error {
	seen := make(map[string]struct{}, len(records))
	for _, e := range records {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("replace collection: %w", err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("replace collection: duplicate id %s", e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneAll(records)
	if err := l.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save after replace: %w", err)
	}
	l.records = next

	slog.InfoContext(ctx, "Collection replaced", applog.FieldCount, len(next))
	return nil
}

// Get returns a copy of the named expense.
func (l *Ledger) Get(id string) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.indexOf(id)
	if idx < 0 {
		return core.Expense{}, fmt.Errorf("get expense %s: %w", id, ErrNotFound)
	}
	return l.records[idx].Clone(), nil
}

// indexOf must be called with the mutex held.
func (l *Ledger) indexOf(id string) int {
	for i, e := range l.records {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
