// Package invoicing turns invoice requests into issued invoices with per-line tax.
package invoicing

import "salesinvoice/internal/core/types"

// Tax is the amount computed for one invoice line and the reason it applies.
type Tax struct {
	Amount      types.Money `json:"amount"`
	Description string      `json:"description"`
}

// NewTax creates a Tax value.
func NewTax(amount types.Money, description string) Tax {
	return Tax{Amount: amount, Description: description}
}

// Equal compares amounts numerically and descriptions exactly.
func (t Tax) Equal(other Tax) bool {
	return t.Amount.Equal(other.Amount) && t.Description == other.Description
}
