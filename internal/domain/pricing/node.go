// Package pricing implements the catalog-driven pricing and margin
// derivation engine: per-parent option caches, target resolution across the
// brand/model/version hierarchy, and the pure margin calculator.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Target identifies the catalog level a sale or objective is recorded
// against. The values are the domain's French terms, which is also what the
// legacy DMS and the UI exchange.
type Target string

const (
	TargetBrand   Target = "marque"
	TargetModel   Target = "modele"
	TargetVersion Target = "version"
)

// Valid reports whether t is a known target level.
func (t Target) Valid() bool {
	switch t {
	case TargetBrand, TargetModel, TargetVersion:
		return true
	}
	return false
}

// Node is the canonical catalog node consumed by the pricing engine.
// Brand and model nodes carry aggregate average prices; version nodes carry
// authoritative values. IDs are strings so nodes can come either from the
// local store (UUID) or straight from the legacy DMS (numeric ids).
type Node struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Level  Target `json:"level"`
	Active bool   `json:"active"`

	// ParentID is the owning brand id for models and the owning model id
	// for versions. Empty for brands.
	ParentID string `json:"parentId,omitempty"`

	// BrandID is advisory on version nodes: the effective brand is always
	// the parent model's brand.
	BrandID string `json:"brandId,omitempty"`

	Price                decimal.Decimal `json:"price"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// SaleType selects which margin rate applies to a transaction.
type SaleType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsInterGroup reports whether a sale-type name selects the inter-group
// margin rate. The match is case-insensitive on the trimmed name; any
// unrecognized name falls back to the direct rate.
func IsInterGroup(saleTypeName string) bool {
	return strings.EqualFold(strings.TrimSpace(saleTypeName), "intergroupe")
}
