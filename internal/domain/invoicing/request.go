package invoicing

import (
	"context"
	"slices"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/client"
	"salesinvoice/internal/domain/catalogs/product"
)

// RequestItem is one requested line: a product, how many, and the net total for the line.
type RequestItem struct {
	Product   product.Data `json:"product"`
	Quantity  int          `json:"quantity"`
	TotalCost types.Money  `json:"totalCost"`
}

// NewRequestItem creates a request item.
func NewRequestItem(p product.Data, quantity int, totalCost types.Money) RequestItem {
	return RequestItem{Product: p, Quantity: quantity, TotalCost: totalCost}
}

// Validate checks the item can be invoiced. lineNo is 1-based and only used for error details.
func (i RequestItem) Validate(ctx context.Context, lineNo int) error {
	if i.Quantity < 1 {
		return apperror.NewInvalidRequestItem(lineNo, "quantity must be positive").
			WithDetail("quantity", i.Quantity)
	}
	if err := i.Product.Validate(ctx); err != nil {
		return apperror.NewInvalidRequestItem(lineNo, "invalid product").WithCause(err)
	}
	return nil
}

// InvoiceRequest is the client's ordered list of items to bill.
// Items can only be appended; their order is the order of the issued lines.
type InvoiceRequest struct {
	client client.Data
	items  []RequestItem
}

// NewInvoiceRequest creates an empty request for client.
func NewInvoiceRequest(c client.Data) *InvoiceRequest {
	return &InvoiceRequest{client: c}
}

// Add appends an item. Adding the same item twice yields two lines.
func (r *InvoiceRequest) Add(item RequestItem) {
	r.items = append(r.items, item)
}

// Client returns the requesting client.
func (r *InvoiceRequest) Client() client.Data { return r.client }

// Items returns a copy of the requested items in insertion order.
func (r *InvoiceRequest) Items() []RequestItem {
	return slices.Clone(r.items)
}

// Len returns the number of requested items.
func (r *InvoiceRequest) Len() int { return len(r.items) }

// Validate checks the client, then reports the first invalid item.
func (r *InvoiceRequest) Validate(ctx context.Context) error {
	if err := r.client.Validate(); err != nil {
		return err
	}
	for i, item := range r.items {
		if err := item.Validate(ctx, i+1); err != nil {
			return err
		}
	}
	return nil
}
