// Package taxes provides TaxPolicy implementations and decorators.
package taxes

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/invoicing"
)

// Rate is a tax rate applicable to one classification over a date range.
type Rate struct {
	ID             id.ID           `db:"id" json:"id"`
	Classification product.Type    `db:"classification" json:"classification"`
	Rate           decimal.Decimal `db:"rate" json:"rate"`
	Description    string          `db:"description" json:"description"`
	EffectiveFrom  time.Time       `db:"effective_from" json:"effectiveFrom"`
	EffectiveTo    *time.Time      `db:"effective_to" json:"effectiveTo,omitempty"`
}

// Apply computes the tax on net, rounded to cents.
func (r Rate) Apply(net types.Money) invoicing.Tax {
	return invoicing.NewTax(net.MultiplyBy(r.Rate).Round(types.MoneyScale), r.Description)
}

// ActiveAt reports whether the rate is effective on date at.
func (r Rate) ActiveAt(at time.Time) bool {
	if at.Before(r.EffectiveFrom) {
		return false
	}
	return r.EffectiveTo == nil || at.Before(*r.EffectiveTo)
}

// DefaultRates returns the built-in rate table.
func DefaultRates() []Rate {
	since := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Rate{
		{ID: id.New(), Classification: product.TypeDrug, Rate: decimal.RequireFromString("0.05"), Description: "5% (D)", EffectiveFrom: since},
		{ID: id.New(), Classification: product.TypeFood, Rate: decimal.RequireFromString("0.07"), Description: "7% (F)", EffectiveFrom: since},
		{ID: id.New(), Classification: product.TypeStandard, Rate: decimal.RequireFromString("0.23"), Description: "23%", EffectiveFrom: since},
	}
}

// RatePolicy applies the rate of a classification that is in force on the current date.
type RatePolicy struct {
	rates map[product.Type][]Rate // newest EffectiveFrom first
	now   func() time.Time
}

// NewRatePolicy creates a policy from rates. When several rates of a classification
// are in force at once, the one with the latest EffectiveFrom wins; on equal start
// dates the later entry wins.
func NewRatePolicy(rates []Rate) *RatePolicy {
	m := make(map[product.Type][]Rate, len(rates))
	for _, r := range rates {
		m[r.Classification] = append(m[r.Classification], r)
	}
	for _, list := range m {
		slices.Reverse(list)
		slices.SortStableFunc(list, func(a, b Rate) int {
			return b.EffectiveFrom.Compare(a.EffectiveFrom)
		})
	}
	return &RatePolicy{
		rates: m,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// NewDefaultRatePolicy creates a policy over DefaultRates.
func NewDefaultRatePolicy() *RatePolicy {
	return NewRatePolicy(DefaultRates())
}

// CalculateTax implements invoicing.TaxPolicy.
func (p *RatePolicy) CalculateTax(ctx context.Context, t product.Type, net types.Money) (invoicing.Tax, error) {
	if err := checkNet(t, net); err != nil {
		return invoicing.Tax{}, err
	}
	rate, ok := p.effective(t, p.now())
	if !ok {
		return invoicing.Tax{}, apperror.NewUnsupportedClassification(string(t))
	}
	return rate.Apply(net), nil
}

func (p *RatePolicy) effective(t product.Type, at time.Time) (Rate, bool) {
	for _, r := range p.rates[t] {
		if r.ActiveAt(at) {
			return r, true
		}
	}
	return Rate{}, false
}

func checkNet(t product.Type, net types.Money) error {
	if net.IsNegative() {
		return apperror.NewPolicyFailure(fmt.Errorf("negative net amount %s", net)).
			WithDetail("classification", string(t))
	}
	return nil
}

var _ invoicing.TaxPolicy = (*RatePolicy)(nil)
