package taxes

import (
	"context"
	"time"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/invoicing"
)

// RateRepository looks up stored rates. Implementations live in infrastructure layer.
type RateRepository interface {
	// FindEffective returns the rate for t effective at the given date,
	// or a NotFound AppError.
	FindEffective(ctx context.Context, t product.Type, at time.Time) (*Rate, error)
	Upsert(ctx context.Context, rate *Rate) error
	List(ctx context.Context) ([]Rate, error)
}

// StoredRatePolicy reads the effective rate from a repository on every call.
type StoredRatePolicy struct {
	repo RateRepository
	now  func() time.Time
}

// NewStoredRatePolicy creates a policy backed by repo.
func NewStoredRatePolicy(repo RateRepository) *StoredRatePolicy {
	return &StoredRatePolicy{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CalculateTax implements invoicing.TaxPolicy.
func (p *StoredRatePolicy) CalculateTax(ctx context.Context, t product.Type, net types.Money) (invoicing.Tax, error) {
	if err := checkNet(t, net); err != nil {
		return invoicing.Tax{}, err
	}

	rate, err := p.repo.FindEffective(ctx, t, p.now())
	if err != nil {
		if apperror.IsNotFound(err) {
			return invoicing.Tax{}, apperror.NewUnsupportedClassification(string(t)).WithCause(err)
		}
		return invoicing.Tax{}, apperror.NewPolicyFailure(err).
			WithDetail("classification", string(t))
	}

	return rate.Apply(net), nil
}

var _ invoicing.TaxPolicy = (*StoredRatePolicy)(nil)
