// Package version provides the Version catalog: the most specific pricing
// source. A version belongs to exactly one model; its sale price and margin
// rates are authoritative, not averages.
package version

import (
	"context"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/pricing"
)

// Version represents a sellable vehicle configuration.
type Version struct {
	entity.Catalog

	// ModelID is the owning model; the effective brand is always the parent
	// model's brand
	ModelID id.ID `db:"model_id" json:"modelId"`

	// BrandID is advisory, denormalized for selector filtering only
	BrandID *id.ID `db:"brand_id" json:"brandId,omitempty"`

	// SalePrice is the authoritative unit price
	SalePrice decimal.Decimal `db:"sale_price" json:"salePrice"`

	// MarginRateDirect applies to direct sales
	MarginRateDirect decimal.Decimal `db:"margin_rate_direct" json:"marginRateDirect"`

	// MarginRateInterGroup applies to inter-group sales
	MarginRateInterGroup decimal.Decimal `db:"margin_rate_inter_group" json:"marginRateInterGroup"`
}

// NewVersion creates a new Version with required fields.
func NewVersion(code, name string, modelID id.ID) *Version {
	return &Version{
		Catalog: entity.NewCatalog(code, name),
		ModelID: modelID,
	}
}

// Validate implements entity.Validatable interface.
func (v *Version) Validate(ctx context.Context) error {
	if err := v.Catalog.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(v.ModelID) {
		return apperror.NewValidation("model is required").
			WithDetail("field", "modelId")
	}
	if v.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}
	if v.MarginRateDirect.IsNegative() || v.MarginRateInterGroup.IsNegative() {
		return apperror.NewValidation("margin rate cannot be negative")
	}
	return nil
}

// ToNode converts the version to the pricing engine's node form.
func (v *Version) ToNode() pricing.Node {
	node := pricing.Node{
		ID:                   v.ID.String(),
		Name:                 v.Name,
		Level:                pricing.TargetVersion,
		Active:               v.Active,
		ParentID:             v.ModelID.String(),
		Price:                v.SalePrice,
		MarginRateDirect:     v.MarginRateDirect,
		MarginRateInterGroup: v.MarginRateInterGroup,
	}
	if v.BrandID != nil {
		node.BrandID = v.BrandID.String()
	}
	return node
}
