package dto

import (
	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/client"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/invoicing"
)

// --- Requests ---

// ClientRequest identifies the billed client.
type ClientRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

// ProductRequest is the product snapshot sent with each item.
type ProductRequest struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Type  string      `json:"type" binding:"required"`
	Price types.Money `json:"price"`
}

// RequestItemRequest is one requested line.
type RequestItemRequest struct {
	Product   ProductRequest `json:"product"`
	Quantity  int            `json:"quantity"`
	TotalCost types.Money    `json:"totalCost"`
}

// IssueInvoiceRequest is the body of POST /invoices/issuance.
type IssueInvoiceRequest struct {
	Client ClientRequest        `json:"client"`
	Items  []RequestItemRequest `json:"items" binding:"dive"`
}

// ToDomain builds the invoice request, preserving item order.
func (r IssueInvoiceRequest) ToDomain() (*invoicing.InvoiceRequest, error) {
	req := invoicing.NewInvoiceRequest(client.NewData(r.Client.ID, r.Client.Name))
	for i, item := range r.Items {
		p, err := item.Product.toDomain(i + 1)
		if err != nil {
			return nil, err
		}
		req.Add(invoicing.NewRequestItem(p, item.Quantity, item.TotalCost))
	}
	return req, nil
}

// toDomain converts the product of line lineNo (1-based).
func (p ProductRequest) toDomain(lineNo int) (product.Data, error) {
	t, err := product.ParseType(p.Type)
	if err != nil {
		return product.Data{}, apperror.NewInvalidRequestItem(lineNo, "unknown product type").
			WithDetail("type", p.Type).
			WithCause(err)
	}

	productID := id.ID{}
	if p.ID != "" {
		productID, err = id.Parse(p.ID)
		if err != nil {
			return product.Data{}, apperror.NewValidation("invalid product id").
				WithDetail("field", "product.id").
				WithDetail("lineNo", lineNo).
				WithCause(err)
		}
	}
	return product.NewData(productID, p.Name, t, p.Price), nil
}

// TaxQuoteRequest is the body of POST /taxes/quote.
type TaxQuoteRequest struct {
	Type string      `json:"type" binding:"required"`
	Net  types.Money `json:"net"`
}

// --- Responses ---

// TaxResponse is a computed tax.
type TaxResponse struct {
	Amount      types.Money `json:"amount"`
	Description string      `json:"description"`
}

// FromTax converts a domain tax.
func FromTax(t invoicing.Tax) TaxResponse {
	return TaxResponse{Amount: t.Amount, Description: t.Description}
}

// ProductResponse echoes the product snapshot of a line.
type ProductResponse struct {
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Price types.Money `json:"price"`
}

// InvoiceLineResponse is one issued line.
type InvoiceLineResponse struct {
	LineNo   int             `json:"lineNo"`
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Net      types.Money     `json:"net"`
	Tax      TaxResponse     `json:"tax"`
	Gross    types.Money     `json:"gross"`
}

// InvoiceResponse is the issued invoice.
type InvoiceResponse struct {
	ID     string                `json:"id"`
	Client ClientRequest         `json:"client"`
	Lines  []InvoiceLineResponse `json:"lines"`
	Net    types.Money           `json:"net"`
	Tax    types.Money           `json:"tax"`
	Gross  types.Money           `json:"gross"`
}

// FromInvoice converts an issued invoice.
func FromInvoice(inv *invoicing.Invoice) InvoiceResponse {
	lines := inv.Lines()
	out := make([]InvoiceLineResponse, 0, len(lines))
	for i, l := range lines {
		p := l.Item.Product
		resp := InvoiceLineResponse{
			LineNo: i + 1,
			Product: ProductResponse{
				Name:  p.Name,
				Type:  string(p.Type),
				Price: p.Price,
			},
			Quantity: l.Item.Quantity,
			Net:      l.Net(),
			Tax:      FromTax(l.Tax),
			Gross:    l.Gross(),
		}
		if !id.IsNil(p.ProductID) {
			resp.Product.ID = p.ProductID.String()
		}
		out = append(out, resp)
	}

	c := inv.Client()
	return InvoiceResponse{
		ID:     inv.ID().String(),
		Client: ClientRequest{ID: c.ID, Name: c.Name},
		Lines:  out,
		Net:    inv.Net(),
		Tax:    inv.TaxTotal(),
		Gross:  inv.Gross(),
	}
}
