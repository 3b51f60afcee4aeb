// Package product provides the read-only product snapshot consumed by invoicing.
package product

import (
	"context"
	"strings"
	"time"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/core/id"
	"salesinvoice/internal/core/types"
)

// Type is the product classification that selects the applicable tax rule.
type Type string

const (
	TypeStandard Type = "STANDARD"
	TypeFood     Type = "FOOD"
	TypeDrug     Type = "DRUG"
)

// Types lists every known classification.
func Types() []Type {
	return []Type{TypeStandard, TypeFood, TypeDrug}
}

// Valid reports whether t is a known classification.
func (t Type) Valid() bool {
	switch t {
	case TypeStandard, TypeFood, TypeDrug:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// ParseType parses a classification case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", apperror.NewValidation("unknown product type").
			WithDetail("field", "type").
			WithDetail("value", s)
	}
	return t, nil
}

// Data is a snapshot of a catalog product at the moment it was requested.
type Data struct {
	ProductID    id.ID       `json:"productId"`
	Name         string      `json:"name"`
	Type         Type        `json:"type"`
	Price        types.Money `json:"price"`
	SnapshotDate time.Time   `json:"snapshotDate"`
}

// NewData creates a product snapshot taken now.
func NewData(productID id.ID, name string, t Type, price types.Money) Data {
	return Data{
		ProductID:    productID,
		Name:         name,
		Type:         t,
		Price:        price,
		SnapshotDate: time.Now().UTC(),
	}
}

// Validate checks the snapshot carries a usable classification and price.
func (d Data) Validate(ctx context.Context) error {
	if !d.Type.Valid() {
		return apperror.NewValidation("unknown product type").
			WithDetail("field", "type").
			WithDetail("value", string(d.Type))
	}
	if d.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	return nil
}

// Equal compares every field of the snapshot; prices compare numerically.
func (d Data) Equal(other Data) bool {
	return d.ProductID == other.ProductID &&
		d.Name == other.Name &&
		d.Type == other.Type &&
		d.Price.Equal(other.Price) &&
		d.SnapshotDate.Equal(other.SnapshotDate)
}
