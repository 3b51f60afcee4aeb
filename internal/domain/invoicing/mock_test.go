package invoicing

import (
	"context"
	"sync"

	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
)

type taxCall struct {
	Type product.Type
	Net  types.Money
}

// recordingPolicy captures every call and answers with CalculateTaxFunc or a fixed tax.
type recordingPolicy struct {
	mu               sync.Mutex
	calls            []taxCall
	CalculateTaxFunc func(ctx context.Context, t product.Type, net types.Money) (Tax, error)
	tax              Tax
}

func (p *recordingPolicy) CalculateTax(ctx context.Context, t product.Type, net types.Money) (Tax, error) {
	p.mu.Lock()
	p.calls = append(p.calls, taxCall{Type: t, Net: net})
	p.mu.Unlock()

	if p.CalculateTaxFunc != nil {
		return p.CalculateTaxFunc(ctx, t, net)
	}
	return p.tax, nil
}

func (p *recordingPolicy) Calls() []taxCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]taxCall, len(p.calls))
	copy(out, p.calls)
	return out
}

// timesCalledWith counts calls whose arguments match exactly.
func (p *recordingPolicy) timesCalledWith(t product.Type, net types.Money) int {
	n := 0
	for _, c := range p.Calls() {
		if c.Type == t && c.Net.Equal(net) {
			n++
		}
	}
	return n
}

var _ TaxPolicy = (*recordingPolicy)(nil)
