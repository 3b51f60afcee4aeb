package taxes

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/invoicing"
)

var tracer = otel.Tracer("salesinvoice/taxes")

// WithTimeout bounds each tax calculation. Only policies that honor ctx can be interrupted.
// A non-positive d returns next unchanged.
func WithTimeout(next invoicing.TaxPolicy, d time.Duration) invoicing.TaxPolicy {
	if d <= 0 {
		return next
	}
	return invoicing.TaxPolicyFunc(func(ctx context.Context, t product.Type, net types.Money) (invoicing.Tax, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		tax, err := next.CalculateTax(ctx, t, net)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return invoicing.Tax{}, apperror.NewTimeout("tax calculation", err).
				WithDetail("classification", string(t))
		}
		return tax, err
	})
}

// WithTracing records a span per tax calculation.
func WithTracing(next invoicing.TaxPolicy) invoicing.TaxPolicy {
	return invoicing.TaxPolicyFunc(func(ctx context.Context, t product.Type, net types.Money) (invoicing.Tax, error) {
		ctx, span := tracer.Start(ctx, "tax.calculate",
			trace.WithAttributes(
				attribute.String("tax.classification", string(t)),
				attribute.String("tax.net", net.String()),
			))
		defer span.End()

		tax, err := next.CalculateTax(ctx, t, net)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return tax, err
		}
		span.SetAttributes(attribute.String("tax.amount", tax.Amount.String()))
		return tax, nil
	})
}
