package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"billtrack/internal/core"
)

// PresetCategories is the suggestion list front ends can offer. Category is
// free-form; picking outside the list is fine.
var PresetCategories = []string{
	"Housing",
	"Utilities",
	"Insurance",
	"Subscriptions",
	"Transport",
	"Health",
	"Other",
}

// Draft holds validated field values ready to become (or replace) a record.
type Draft struct {
	Name     string
	Category string
	Amount   decimal.Decimal
	DueDay   int
}

// ParseDraft validates raw user-entered field values. Rejected input never
// reaches the ledger: the name must be non-empty, the amount non-negative
// and parseable, and the due day in [1, 31]. A blank category becomes
// core.DefaultCategory.
func ParseDraft(name, category, amount, dueDay string) (Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Draft{}, core.ErrEmptyName
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = core.DefaultCategory
	}

	amt, err := core.ParseAmount(amount)
	if err != nil {
		return Draft{}, fmt.Errorf("amount %q: %w", amount, err)
	}

	day, err := strconv.Atoi(strings.TrimSpace(dueDay))
	if err != nil || day < 1 || day > 31 {
		return Draft{}, fmt.Errorf("due day %q: %w", dueDay, core.ErrInvalidDueDay)
	}

	return Draft{Name: name, Category: category, Amount: amt, DueDay: day}, nil
}
