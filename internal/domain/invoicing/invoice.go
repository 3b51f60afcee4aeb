package invoicing

import (
	"slices"

	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/client"
)

// InvoiceLine is a requested item together with its computed tax.
type InvoiceLine struct {
	Item RequestItem `json:"item"`
	Tax  Tax         `json:"tax"`
}

// Net is the line total before tax.
func (l InvoiceLine) Net() types.Money { return l.Item.TotalCost }

// Gross is the line total including tax.
func (l InvoiceLine) Gross() types.Money { return l.Item.TotalCost.Add(l.Tax.Amount) }

// Invoice is the result of issuance. Lines are appended only through Factory.
type Invoice struct {
	id     id.ID
	client client.Data
	lines  []InvoiceLine

	net   types.Money
	gross types.Money
}

func (inv *Invoice) ID() id.ID           { return inv.id }
func (inv *Invoice) Client() client.Data { return inv.client }
func (inv *Invoice) Len() int            { return len(inv.lines) }

// Lines returns a copy of the lines in request order. Never nil.
func (inv *Invoice) Lines() []InvoiceLine {
	out := make([]InvoiceLine, len(inv.lines))
	copy(out, inv.lines)
	return out
}

// Net is the sum of line totals before tax.
func (inv *Invoice) Net() types.Money { return inv.net }

// Gross is the sum of line totals including tax.
func (inv *Invoice) Gross() types.Money { return inv.gross }

// TaxTotal is the sum of all line taxes.
func (inv *Invoice) TaxTotal() types.Money { return inv.gross.Sub(inv.net) }

// SameLines reports whether both invoices carry equal lines in the same order.
func (inv *Invoice) SameLines(other *Invoice) bool {
	return slices.EqualFunc(inv.lines, other.lines, func(a, b InvoiceLine) bool {
		return a.Item.Product.Equal(b.Item.Product) &&
			a.Item.Quantity == b.Item.Quantity &&
			a.Item.TotalCost.Equal(b.Item.TotalCost) &&
			a.Tax.Equal(b.Tax)
	})
}

func (inv *Invoice) append(line InvoiceLine) {
	inv.lines = append(inv.lines, line)
	inv.net = inv.net.Add(line.Net())
	inv.gross = inv.gross.Add(line.Gross())
}
