package taxes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/product"
)

// MockRateRepository is a test implementation of RateRepository.
type MockRateRepository struct {
	FindEffectiveFunc func(ctx context.Context, t product.Type, at time.Time) (*Rate, error)
	calls             int
}

func (m *MockRateRepository) FindEffective(ctx context.Context, t product.Type, at time.Time) (*Rate, error) {
	m.calls++
	return m.FindEffectiveFunc(ctx, t, at)
}

func (m *MockRateRepository) Upsert(ctx context.Context, rate *Rate) error { return nil }

func (m *MockRateRepository) List(ctx context.Context) ([]Rate, error) { return nil, nil }

var _ RateRepository = (*MockRateRepository)(nil)

func TestStoredRatePolicy_QueriesEveryCall(t *testing.T) {
	var seenAt time.Time
	repo := &MockRateRepository{
		FindEffectiveFunc: func(ctx context.Context, pt product.Type, at time.Time) (*Rate, error) {
			seenAt = at
			return &Rate{Classification: pt, Rate: decimal.RequireFromString("0.10"), Description: "10%"}, nil
		},
	}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policy := NewStoredRatePolicy(repo)
	policy.now = func() time.Time { return fixed }

	for i := 0; i < 3; i++ {
		tax, err := policy.CalculateTax(context.Background(), product.TypeStandard, types.MustMoney("15"))
		require.NoError(t, err)
		assert.True(t, tax.Amount.Equal(types.MustMoney("1.5")))
	}

	assert.Equal(t, 3, repo.calls)
	assert.Equal(t, fixed, seenAt)
}

func TestStoredRatePolicy_Errors(t *testing.T) {
	notFound := &MockRateRepository{
		FindEffectiveFunc: func(ctx context.Context, pt product.Type, at time.Time) (*Rate, error) {
			return nil, apperror.NewNotFound("tax rate", string(pt))
		},
	}
	_, err := NewStoredRatePolicy(notFound).CalculateTax(context.Background(), product.TypeDrug, types.MustMoney("1"))
	assert.True(t, apperror.HasCode(err, apperror.CodeUnsupportedClassification))

	dbErr := errors.New("connection refused")
	broken := &MockRateRepository{
		FindEffectiveFunc: func(ctx context.Context, pt product.Type, at time.Time) (*Rate, error) {
			return nil, dbErr
		},
	}
	_, err = NewStoredRatePolicy(broken).CalculateTax(context.Background(), product.TypeDrug, types.MustMoney("1"))
	assert.True(t, apperror.HasCode(err, apperror.CodePolicyFailure))
	assert.ErrorIs(t, err, dbErr)
}
