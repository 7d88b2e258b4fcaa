// Package saletype provides the SaleType catalog. A sale type's name selects
// which margin rate applies to a transaction: names matching "intergroupe"
// use the inter-group rate, everything else the direct rate.
package saletype

import (
	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/domain/pricing"
)

// SaleType represents a sale channel.
type SaleType struct {
	entity.Catalog
}

// NewSaleType creates a new SaleType.
func NewSaleType(code, name string) *SaleType {
	return &SaleType{
		Catalog: entity.NewCatalog(code, name),
	}
}

// IsInterGroup reports whether this sale type uses the inter-group rate.
func (s *SaleType) IsInterGroup() bool {
	return pricing.IsInterGroup(s.Name)
}

// ToSaleType converts to the pricing engine's form.
func (s *SaleType) ToSaleType() pricing.SaleType {
	return pricing.SaleType{
		ID:   s.ID.String(),
		Name: s.Name,
	}
}
