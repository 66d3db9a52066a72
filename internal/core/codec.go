package core

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FallbackCategory is assigned when a persisted record has no category
// field. Distinct from DefaultCategory, which applies at input time.
const FallbackCategory = "General"

// expenseJSON is the flat persisted shape of a record. Pointer fields
// distinguish absent from zero so required fields can be enforced on decode.
type expenseJSON struct {
	ID          *string           `json:"id"`
	Name        *string           `json:"name"`
	Category    *string           `json:"category,omitempty"`
	Amount      *decimal.Decimal  `json:"amount"`
	DueDay      *int              `json:"dueDay"`
	PaidByMonth map[string]string `json:"paidByMonth,omitempty"`
}

// EncodeExpense serializes a single record to its flat JSON shape.
func EncodeExpense(e Expense) ([]byte, error) {
	paid := make(map[string]string, len(e.PaidByMonth))
	for k, v := range e.PaidByMonth {
		paid[string(k)] = v
	}
	rec := expenseJSON{
		ID:          &e.ID,
		Name:        &e.Name,
		Category:    &e.Category,
		Amount:      &e.Amount,
		DueDay:      &e.DueDay,
		PaidByMonth: paid,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode expense %s: %w", e.ID, err)
	}
	return data, nil
}

// DecodeExpense parses a single persisted record.
//
// Tolerated: a missing category falls back to FallbackCategory, a missing or
// null paidByMonth becomes an empty map, and malformed month keys inside
// paidByMonth are dropped. Rejected with an error: missing or wrong-typed
// id, name, amount, or dueDay, plus any invariant violation (negative
// amount, due day out of range).
func DecodeExpense(data []byte) (Expense, error) {
	var rec expenseJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return Expense{}, fmt.Errorf("decode expense: %w", err)
	}
	if rec.ID == nil {
		return Expense{}, fmt.Errorf("decode expense: %w", ErrEmptyID)
	}
	if rec.Name == nil {
		return Expense{}, fmt.Errorf("decode expense %s: %w", *rec.ID, ErrEmptyName)
	}
	if rec.Amount == nil {
		return Expense{}, fmt.Errorf("decode expense %s: %w", *rec.ID, ErrInvalidAmount)
	}
	if rec.DueDay == nil {
		return Expense{}, fmt.Errorf("decode expense %s: %w", *rec.ID, ErrInvalidDueDay)
	}

	e := Expense{
		ID:          *rec.ID,
		Name:        *rec.Name,
		Category:    FallbackCategory,
		Amount:      *rec.Amount,
		DueDay:      *rec.DueDay,
		PaidByMonth: make(map[MonthKey]string, len(rec.PaidByMonth)),
	}
	if rec.Category != nil && *rec.Category != "" {
		e.Category = *rec.Category
	}
	for k, v := range rec.PaidByMonth {
		key, err := ParseMonthKey(k)
		if err != nil {
			continue
		}
		e.PaidByMonth[key] = v
	}

	if err := e.Validate(); err != nil {
		return Expense{}, fmt.Errorf("decode expense %s: %w", e.ID, err)
	}
	return e, nil
}

// EncodeCollection serializes the full collection to a single JSON array
// blob, the unit of persistence.
func EncodeCollection(records []Expense) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(records))
	for _, e := range records {
		data, err := EncodeExpense(e)
		if err != nil {
			return nil, err
		}
		raw = append(raw, data)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a persisted blob into records plus the decode
// errors of any rejected entries. The caller decides whether rejects are
// dropped or surfaced; aggregation only ever sees the valid remainder.
func DecodeCollection(data []byte) ([]Expense, []error, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode collection: %w", err)
	}
	records := make([]Expense, 0, len(raw))
	var rejects []error
	for i, entry := range raw {
		e, err := DecodeExpense(entry)
		if err != nil {
			rejects = append(rejects, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		records = append(records, e)
	}
	return records, rejects, nil
}
