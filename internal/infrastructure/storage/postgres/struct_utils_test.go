package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"salesinvoice/internal/core/id"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/taxes"
)

type AuditFields struct {
	CreatedBy string `db:"created_by"`
}

type auditedRate struct {
	taxes.Rate
	AuditFields
	Note string `db:"-"`
}

func TestExtractDBColumns_Rate(t *testing.T) {
	cols := ExtractDBColumns[taxes.Rate]()

	assert.Equal(t, []string{"id", "classification", "rate", "description", "effective_from", "effective_to"}, cols)
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[*auditedRate]()

	assert.Contains(t, cols, "classification")
	assert.Contains(t, cols, "created_by")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_Rate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &auditedRate{
		Rate: taxes.Rate{
			ID:             id.New(),
			Classification: product.TypeFood,
			Rate:           decimal.RequireFromString("0.07"),
			Description:    "7% (F)",
			EffectiveFrom:  from,
		},
		AuditFields: AuditFields{CreatedBy: "seed"},
		Note:        "ignored",
	}

	m := StructToMap(r)

	assert.Equal(t, r.ID, m["id"])
	assert.Equal(t, product.TypeFood, m["classification"])
	assert.Equal(t, "7% (F)", m["description"])
	assert.Equal(t, from, m["effective_from"])
	assert.Nil(t, m["effective_to"])
	assert.Equal(t, "seed", m["created_by"])
	assert.Len(t, m, 7)
}
