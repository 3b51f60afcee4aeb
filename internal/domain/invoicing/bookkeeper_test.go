package invoicing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/client"
	"salesinvoice/internal/domain/catalogs/product"
)

type bookKeeperFixture struct {
	bookKeeper  *BookKeeper
	policy      *recordingPolicy
	request     *InvoiceRequest
	productData product.Data
	money       types.Money
	tax         Tax
}

func newFixture() *bookKeeperFixture {
	money := types.NewMoney(2.0)
	tax := NewTax(money, "tax")
	return &bookKeeperFixture{
		bookKeeper:  NewBookKeeper(NewFactory()),
		policy:      &recordingPolicy{tax: tax},
		request:     NewInvoiceRequest(client.NewData("1", "name")),
		productData: product.NewData(id.New(), "Standard item", product.TypeStandard, money),
		money:       money,
		tax:         tax,
	}
}

func (f *bookKeeperFixture) addTimes(n int) RequestItem {
	item := NewRequestItem(f.productData, 1, f.money)
	for i := 0; i < n; i++ {
		f.request.Add(item)
	}
	return item
}

func TestIssuance_State(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"no entries", 0},
		{"one entry", 1},
		{"ten entries", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.addTimes(tt.items)

			invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
			require.NoError(t, err)
			require.NotNil(t, invoice)

			lines := invoice.Lines()
			assert.NotNil(t, lines)
			assert.Len(t, lines, tt.items)
		})
	}
}

func TestIssuance_Behaviour(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"no entries", 0},
		{"two entries", 2},
		{"ten entries", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.addTimes(tt.items)

			_, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
			require.NoError(t, err)

			assert.Len(t, f.policy.Calls(), tt.items)
			assert.Equal(t, tt.items, f.policy.timesCalledWith(product.TypeStandard, f.money))
		})
	}
}

func TestIssuance_OneEntryCallsPolicyWithItemArguments(t *testing.T) {
	f := newFixture()
	f.addTimes(1)

	invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
	require.NoError(t, err)

	require.Len(t, f.policy.Calls(), 1)
	call := f.policy.Calls()[0]
	assert.Equal(t, product.TypeStandard, call.Type)
	assert.True(t, call.Net.Equal(types.MustMoney("2.0")))

	line := invoice.Lines()[0]
	assert.True(t, line.Tax.Equal(f.tax))
	assert.Equal(t, "1", invoice.Client().ID)
	assert.Equal(t, "name", invoice.Client().Name)
}

func TestIssuance_PreservesOrderAndPerItemArguments(t *testing.T) {
	f := newFixture()
	items := []RequestItem{
		NewRequestItem(product.NewData(id.New(), "Bread", product.TypeFood, types.MustMoney("3.10")), 2, types.MustMoney("6.20")),
		NewRequestItem(product.NewData(id.New(), "Aspirin", product.TypeDrug, types.MustMoney("9.99")), 1, types.MustMoney("9.99")),
		NewRequestItem(product.NewData(id.New(), "Chair", product.TypeStandard, types.MustMoney("50")), 3, types.MustMoney("150")),
	}
	for _, item := range items {
		f.request.Add(item)
	}
	f.policy.CalculateTaxFunc = func(ctx context.Context, pt product.Type, net types.Money) (Tax, error) {
		return NewTax(net.Multiply(2), string(pt)), nil
	}

	invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
	require.NoError(t, err)

	lines := invoice.Lines()
	calls := f.policy.Calls()
	require.Len(t, lines, len(items))
	require.Len(t, calls, len(items))
	for i, item := range items {
		assert.Equal(t, item.Product.ProductID, lines[i].Item.Product.ProductID, "line %d", i)
		assert.Equal(t, item.Product.Type, calls[i].Type, "call %d", i)
		assert.True(t, item.TotalCost.Equal(calls[i].Net), "call %d", i)
		assert.Equal(t, string(item.Product.Type), lines[i].Tax.Description)
	}
}

func TestIssuance_Totals(t *testing.T) {
	f := newFixture()
	f.request.Add(NewRequestItem(f.productData, 1, types.MustMoney("0.10")))
	f.request.Add(NewRequestItem(f.productData, 2, types.MustMoney("0.20")))
	f.policy.tax = NewTax(types.MustMoney("0.01"), "1 cent")

	invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
	require.NoError(t, err)

	assert.Equal(t, "0.3", invoice.Net().String())
	assert.Equal(t, "0.02", invoice.TaxTotal().String())
	assert.Equal(t, "0.32", invoice.Gross().String())
	assert.Equal(t, "0.21", invoice.Lines()[1].Gross().String())
}

func TestIssuance_PolicyFailureAbortsWithoutInvoice(t *testing.T) {
	f := newFixture()
	f.addTimes(5)
	policyErr := errors.New("unsupported classification")
	f.policy.CalculateTaxFunc = func(ctx context.Context, pt product.Type, net types.Money) (Tax, error) {
		if len(f.policy.Calls()) == 3 {
			return Tax{}, policyErr
		}
		return f.tax, nil
	}

	invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)

	assert.Nil(t, invoice)
	assert.Same(t, policyErr, err)
	assert.Len(t, f.policy.Calls(), 3, "no calls after the failing item")
}

func TestIssuance_InvalidItemRejectedBeforeAnyTaxCall(t *testing.T) {
	f := newFixture()
	f.addTimes(2)
	f.request.Add(NewRequestItem(f.productData, 0, f.money))

	invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)

	assert.Nil(t, invoice)
	require.True(t, apperror.IsInvalidRequestItem(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, 3, appErr.Details["lineNo"])
	assert.Empty(t, f.policy.Calls())
}

func TestIssuance_BlankClientRejectedBeforeAnyTaxCall(t *testing.T) {
	f := newFixture()
	f.request = NewInvoiceRequest(client.NewData("  ", "nameless"))
	f.addTimes(2)

	invoice, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)

	assert.Nil(t, invoice)
	require.True(t, apperror.HasCode(err, apperror.CodeValidation))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "client.id", appErr.Details["field"])
	assert.Empty(t, f.policy.Calls())
}

func TestIssuance_DoesNotMutateRequest(t *testing.T) {
	f := newFixture()
	f.addTimes(3)
	before := f.request.Items()

	_, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
	require.NoError(t, err)

	assert.Equal(t, before, f.request.Items())
	assert.Equal(t, 3, f.request.Len())
}

func TestIssuance_RepeatedIssuanceYieldsEqualLines(t *testing.T) {
	f := newFixture()
	f.addTimes(4)

	first, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
	require.NoError(t, err)
	second, err := f.bookKeeper.Issuance(context.Background(), f.request, f.policy)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.True(t, first.SameLines(second))
}

func TestIssuance_ConcurrentCallsDoNotShareState(t *testing.T) {
	bookKeeper := NewBookKeeper(NewFactory())
	policy := TaxPolicyFunc(func(ctx context.Context, pt product.Type, net types.Money) (Tax, error) {
		return NewTax(types.Zero(), "exempt"), nil
	})

	const workers = 8
	results := make(chan int, workers)
	for w := 0; w < workers; w++ {
		go func(n int) {
			req := NewInvoiceRequest(client.NewData(fmt.Sprint(n), "client"))
			p := product.NewData(id.New(), "item", product.TypeStandard, types.MustMoney("1"))
			for i := 0; i <= n; i++ {
				req.Add(NewRequestItem(p, 1, types.MustMoney("1")))
			}
			inv, err := bookKeeper.Issuance(context.Background(), req, policy)
			if err != nil {
				results <- -1
				return
			}
			results <- inv.Len() - (n + 1)
		}(w)
	}

	for w := 0; w < workers; w++ {
		assert.Equal(t, 0, <-results)
	}
}
