package invoicing

import (
	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/client"
)

// Factory builds invoices. It holds no state.
type Factory struct{}

// NewFactory creates an invoice factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a new invoice with no lines.
func (f *Factory) Create(c client.Data) *Invoice {
	return &Invoice{
		id:     id.New(),
		client: c,
		lines:  make([]InvoiceLine, 0),
		net:    types.Zero(),
		gross:  types.Zero(),
	}
}

// AddLine appends a line built from item and tax and returns the same invoice.
func (f *Factory) AddLine(inv *Invoice, item RequestItem, tax Tax) *Invoice {
	inv.append(InvoiceLine{Item: item, Tax: tax})
	return inv
}
