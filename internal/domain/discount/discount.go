// Package discount implements promotional code rules and validation.
// Codes come from a small fixed table (optionally extended by ingested
// campaign codes) and are single-use per client.
package discount

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sajjplace/storefront/internal/domain/pricing"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	// KindPercentSubtotal applies a percentage discount to the cart subtotal.
	KindPercentSubtotal Kind = "percent_subtotal"
	// KindPercentLine applies a percentage discount to a single designated
	// product line; it yields nothing when that product is not in the cart.
	KindPercentLine Kind = "percent_line"
)

var (
	// ErrUnknownCode is returned when a code is not in the table.
	ErrUnknownCode = errors.New("unknown discount code")
	// ErrAlreadyUsed is returned when this client has already consumed the code.
	ErrAlreadyUsed = errors.New("discount code already used")
)

var hundred = decimal.NewFromInt(100)

// Rule defines a discount code's behaviour.
type Rule struct {
	Code        string          `json:"code"`
	Kind        Kind            `json:"kind"`
	Rate        decimal.Decimal `json:"rate"` // percent, 0-100
	ProductID   string          `json:"productId,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Amount computes the discount this rule grants for the given cart lines.
// The result is rounded to 2 decimal places and never negative.
func (r Rule) Amount(lines []pricing.Line) decimal.Decimal {
	var base decimal.Decimal
	switch r.Kind {
	case KindPercentSubtotal:
		base = pricing.Subtotal(lines)
	case KindPercentLine:
		for _, l := range lines {
			if l.ProductID == r.ProductID {
				base = base.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
			}
		}
	default:
		return decimal.Zero
	}

	amount := base.Mul(r.Rate).Div(hundred).Round(2)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Normalize canonicalizes user input: trimmed and uppercased.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Table maps normalized codes to their rules.
type Table map[string]Rule

// DefaultTable returns the built-in promotional codes.
func DefaultTable() Table {
	return Table{
		"SAJJ10": {
			Code:        "SAJJ10",
			Kind:        KindPercentSubtotal,
			Rate:        decimal.NewFromInt(10),
			Description: "10% off your order",
		},
		"SAMPLE10": {
			Code:        "SAMPLE10",
			Kind:        KindPercentLine,
			Rate:        decimal.NewFromInt(10),
			ProductID:   "p6",
			Description: "10% off the Sample kit",
		},
	}
}

// Merge adds the given rules to the table, overwriting existing codes.
func (t Table) Merge(rules []Rule) {
	for _, r := range rules {
		t[Normalize(r.Code)] = r
	}
}
