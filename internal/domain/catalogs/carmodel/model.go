// Package carmodel provides the Model catalog (modele). A model belongs to
// exactly one brand; its pricing attributes are aggregate averages over the
// model's versions.
package carmodel

import (
	"context"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/pricing"
)

// Model represents a vehicle model line within a brand.
type Model struct {
	entity.Catalog

	// BrandID is the owning brand
	BrandID id.ID `db:"brand_id" json:"brandId"`

	// AverageSalePrice is the aggregate unit price over the model's versions
	AverageSalePrice decimal.Decimal `db:"average_sale_price" json:"averageSalePrice"`

	// MarginRateDirect applies to direct sales
	MarginRateDirect decimal.Decimal `db:"margin_rate_direct" json:"marginRateDirect"`

	// MarginRateInterGroup applies to inter-group sales
	MarginRateInterGroup decimal.Decimal `db:"margin_rate_inter_group" json:"marginRateInterGroup"`
}

// NewModel creates a new Model with required fields.
func NewModel(code, name string, brandID id.ID) *Model {
	return &Model{
		Catalog: entity.NewCatalog(code, name),
		BrandID: brandID,
	}
}

// Validate implements entity.Validatable interface.
func (m *Model) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(m.BrandID) {
		return apperror.NewValidation("brand is required").
			WithDetail("field", "brandId")
	}
	if m.MarginRateDirect.IsNegative() || m.MarginRateInterGroup.IsNegative() {
		return apperror.NewValidation("margin rate cannot be negative")
	}
	return nil
}

// ToNode converts the model to the pricing engine's node form.
func (m *Model) ToNode() pricing.Node {
	return pricing.Node{
		ID:                   m.ID.String(),
		Name:                 m.Name,
		Level:                pricing.TargetModel,
		Active:               m.Active,
		ParentID:             m.BrandID.String(),
		BrandID:              m.BrandID.String(),
		Price:                m.AverageSalePrice,
		MarginRateDirect:     m.MarginRateDirect,
		MarginRateInterGroup: m.MarginRateInterGroup,
	}
}
