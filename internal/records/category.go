package records

import (
	"fmt"
	"strings"
)

// Category is one of the three independent submission types tracked per record.
type Category string

const (
	Handover Category = "handover"
	Deposits Category = "deposits"
	Invoices Category = "invoices"
)

// Categories returns the fixed category set in dashboard order.
func Categories() []Category {
	return []Category{Handover, Deposits, Invoices}
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate fails for anything outside the fixed category set.
func (c Category) Validate() error {
	switch c {
	case Handover, Deposits, Invoices:
		return nil
	}
	return fmt.Errorf("%w: %q (expected handover, deposits or invoices)", ErrUnknownCategory, string(c))
}

// Label is the display name of the category.
func (c Category) Label() string {
	switch c {
	case Handover:
		return "Handover"
	case Deposits:
		return "Deposits"
	case Invoices:
		return "Invoices"
	}
	return string(c)
}

// RejectedLabel names the terminal failure state of the category.
// Invoices have "missing invoices" instead of a rejection.
func (c Category) RejectedLabel() string {
	if c == Invoices {
		return "Missing invoices"
	}
	return "Rejected"
}
