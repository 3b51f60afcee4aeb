package invoicing

import (
	"context"

	"salesinvoice/pkg/logger"
)

// BookKeeper issues invoices from requests.
type BookKeeper struct {
	factory *Factory
}

// NewBookKeeper creates a BookKeeper that builds invoices with factory.
func NewBookKeeper(factory *Factory) *BookKeeper {
	return &BookKeeper{factory: factory}
}

// Issuance builds an invoice with one line per requested item, in request order.
//
// The whole request is validated before the policy is consulted, so an invalid
// item means no tax is computed at all. The policy is then called exactly once per
// item. A policy error is returned as-is and no invoice is produced.
func (b *BookKeeper) Issuance(ctx context.Context, request *InvoiceRequest, policy TaxPolicy) (*Invoice, error) {
	if err := request.Validate(ctx); err != nil {
		return nil, err
	}

	invoice := b.factory.Create(request.Client())

	for _, item := range request.items {
		tax, err := policy.CalculateTax(ctx, item.Product.Type, item.TotalCost)
		if err != nil {
			logger.Warn(ctx, "tax calculation failed",
				"client_id", request.Client().ID,
				"line_no", invoice.Len()+1,
				"classification", item.Product.Type,
				"error", err,
			)
			return nil, err
		}
		invoice = b.factory.AddLine(invoice, item, tax)
	}

	logger.Debug(ctx, "invoice issued",
		"invoice_id", invoice.ID(),
		"client_id", invoice.Client().ID,
		"lines", invoice.Len(),
		"gross", invoice.Gross().String(),
	)
	return invoice, nil
}
