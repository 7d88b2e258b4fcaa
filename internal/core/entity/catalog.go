package entity

import (
	"context"

	"dealerdesk/internal/core/apperror"
)

// Catalog is the base type for reference data: brands, models, versions,
// sale types. Catalog rows are fetched and cached by the pricing engine and
// never locally mutated; activate/deactivate goes through the repository and
// invalidates caches by reloading the owning feature.
type Catalog struct {
	BaseEntity

	// Code is a human-readable identifier (unique across the catalog)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Active controls whether the entry appears in selectors
	Active bool `db:"active" json:"active"`

	// LegacyID keys the entry back to the legacy DMS record it was synced
	// from (empty for entries created locally)
	LegacyID string `db:"legacy_id" json:"legacyId,omitempty"`
}

// NewCatalog creates a new Catalog with generated ID. Entries start active.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
		Active:     true,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Activate makes the entry selectable again.
func (c *Catalog) Activate() {
	c.Active = true
}

// Deactivate hides the entry from selectors without deleting it.
func (c *Catalog) Deactivate() {
	c.Active = false
}
