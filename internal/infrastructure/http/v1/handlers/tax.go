package handlers

import (
	"github.com/gin-gonic/gin"

	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/invoicing"
	"salesinvoice/internal/infrastructure/http/v1/dto"
)

// TaxHandler exposes the configured tax policy for single quotes.
type TaxHandler struct {
	*BaseHandler
	policy invoicing.TaxPolicy
}

// NewTaxHandler creates a new tax handler.
func NewTaxHandler(base *BaseHandler, policy invoicing.TaxPolicy) *TaxHandler {
	return &TaxHandler{BaseHandler: base, policy: policy}
}

// RegisterRoutes registers tax routes.
func (h *TaxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", h.Quote)
}

// Quote returns the tax the policy would charge for one net amount.
// POST /api/v1/taxes/quote
func (h *TaxHandler) Quote(c *gin.Context) {
	var req dto.TaxQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := product.ParseType(req.Type)
	if err != nil {
		h.Error(c, err)
		return
	}

	tax, err := h.policy.CalculateTax(c.Request.Context(), t, req.Net)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTax(tax))
}
