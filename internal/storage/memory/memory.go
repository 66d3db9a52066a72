// Package memory provides an in-process store with the same Load/Save
// contract as the SQLite store. It backs the "memory" data backend and
// service tests; nothing survives process exit.
package memory

import (
	"context"
	"errors"
	"sync"

	"billtrack/internal/core"
)

var errSaveFailed = errors.New("save failed")

type Store struct {
	mu      sync.Mutex
	records []core.Expense
	saves   int
	failing bool
}

func New(seed []core.Expense) *Store {
	s := &Store{}
	s.records = cloneAll(seed)
	return s
}

// Load returns a copy of the stored collection.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.records), nil
}

// Save replaces the stored collection with a copy of records.
func (s *Store) Save(_ context.Context, records []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errSaveFailed
	}
	s.records = cloneAll(records)
	s.saves++
	return nil
}

func (s *Store) Close() error { return nil }

// Saves reports how many saves have completed, for tests asserting the
// save-after-every-mutation contract.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailSaves makes every subsequent Save return an error.
func (s *Store) FailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = fail
}

func cloneAll(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
