// Package client provides the client identity snapshot printed on invoices.
package client

import (
	"strings"

	"salesinvoice/internal/core/apperror"
)

// Data identifies the billed client.
type Data struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewData creates a client snapshot.
func NewData(clientID, name string) Data {
	return Data{ID: clientID, Name: name}
}

// Validate requires a non-blank identifier.
func (d Data) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return apperror.NewValidation("client id is required").
			WithDetail("field", "client.id")
	}
	return nil
}
