package invoicing

import (
	"context"

	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
)

// TaxPolicy computes the tax due on a net amount for a product classification.
// Implementations must return a Tax or an error; there is no silent default.
// BookKeeper shares one policy across concurrent issuances, so implementations
// must be stateless or synchronized.
type TaxPolicy interface {
	CalculateTax(ctx context.Context, t product.Type, net types.Money) (Tax, error)
}

// TaxPolicyFunc adapts a function to TaxPolicy.
type TaxPolicyFunc func(ctx context.Context, t product.Type, net types.Money) (Tax, error)

// CalculateTax implements TaxPolicy.
func (f TaxPolicyFunc) CalculateTax(ctx context.Context, t product.Type, net types.Money) (Tax, error) {
	return f(ctx, t, net)
}
