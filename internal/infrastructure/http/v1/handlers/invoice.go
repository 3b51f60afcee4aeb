package handlers

import (
	"github.com/gin-gonic/gin"

	"salesinvoice/internal/domain/invoicing"
	"salesinvoice/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler issues invoices with the configured tax policy.
type InvoiceHandler struct {
	*BaseHandler
	bookKeeper *invoicing.BookKeeper
	policy     invoicing.TaxPolicy
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, bookKeeper *invoicing.BookKeeper, policy invoicing.TaxPolicy) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		bookKeeper:  bookKeeper,
		policy:      policy,
	}
}

// RegisterRoutes registers invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/issuance", h.Issue)
}

// Issue computes an invoice for the posted request.
// POST /api/v1/invoices/issuance
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req dto.IssueInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	request, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	invoice, err := h.bookKeeper.Issuance(c.Request.Context(), request, h.policy)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(invoice))
}
