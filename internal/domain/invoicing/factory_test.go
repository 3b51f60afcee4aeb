package invoicing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
	"salesinvoice/internal/domain/catalogs/client"
	"salesinvoice/internal/domain/catalogs/product"
)

func TestFactory_CreateReturnsIndependentInvoices(t *testing.T) {
	f := NewFactory()
	c := client.NewData("1", "name")

	a := f.Create(c)
	b := f.Create(c)
	item := NewRequestItem(product.NewData(id.New(), "x", product.TypeFood, types.MustMoney("1")), 1, types.MustMoney("1"))
	f.AddLine(a, item, NewTax(types.MustMoney("0.07"), "7% (F)"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Lines())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFactory_AddLineAppendsAtEnd(t *testing.T) {
	f := NewFactory()
	inv := f.Create(client.NewData("1", "name"))
	first := NewRequestItem(product.NewData(id.New(), "first", product.TypeFood, types.MustMoney("1")), 1, types.MustMoney("1"))
	second := NewRequestItem(product.NewData(id.New(), "second", product.TypeDrug, types.MustMoney("2")), 1, types.MustMoney("2"))

	got := f.AddLine(inv, first, NewTax(types.Zero(), "a"))
	got = f.AddLine(got, second, NewTax(types.Zero(), "b"))

	lines := got.Lines()
	assert.Same(t, inv, got)
	assert.Equal(t, "first", lines[0].Item.Product.Name)
	assert.Equal(t, "second", lines[1].Item.Product.Name)
}

func TestInvoice_LinesReturnsCopy(t *testing.T) {
	f := NewFactory()
	inv := f.Create(client.NewData("1", "name"))
	item := NewRequestItem(product.NewData(id.New(), "x", product.TypeFood, types.MustMoney("1")), 1, types.MustMoney("1"))
	f.AddLine(inv, item, NewTax(types.Zero(), "a"))

	lines := inv.Lines()
	lines[0].Tax = NewTax(types.MustMoney("99"), "tampered")

	assert.Equal(t, "a", inv.Lines()[0].Tax.Description)
}

func TestInvoice_SameLinesComparesWholeProduct(t *testing.T) {
	f := NewFactory()
	base := product.NewData(id.New(), "Bread", product.TypeFood, types.MustMoney("2.50"))
	tax := NewTax(types.MustMoney("0.18"), "7% (F)")

	renamed := base
	renamed.Name = "Rye bread"
	repriced := base
	repriced.Price = types.MustMoney("3")
	resnapped := base
	resnapped.SnapshotDate = base.SnapshotDate.Add(time.Hour)
	samePriceOtherScale := base
	samePriceOtherScale.Price = types.MustMoney("2.500")

	tests := []struct {
		name  string
		other product.Data
		want  bool
	}{
		{"identical", base, true},
		{"price with different scale", samePriceOtherScale, true},
		{"different name", renamed, false},
		{"different price", repriced, false},
		{"different snapshot date", resnapped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := f.AddLine(f.Create(client.NewData("1", "name")), NewRequestItem(base, 1, types.MustMoney("2.50")), tax)
			b := f.AddLine(f.Create(client.NewData("1", "name")), NewRequestItem(tt.other, 1, types.MustMoney("2.50")), tax)

			assert.Equal(t, tt.want, a.SameLines(b))
		})
	}
}
