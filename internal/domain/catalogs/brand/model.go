// Package brand provides the Brand catalog (marque). Brands are the top
// level of the vehicle hierarchy; their pricing attributes are aggregate
// averages over the brand's versions and apply when a sale or objective is
// recorded at brand level.
package brand

import (
	"context"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/domain/pricing"
)

// Brand represents a vehicle make.
type Brand struct {
	entity.Catalog

	// ImageURL is the optional logo reference
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`

	// BranchID is the optional owning branch in the legacy backend
	BranchID *int64 `db:"branch_id" json:"branchId,omitempty"`

	// AverageSalePrice is the aggregate unit price over the brand's versions
	AverageSalePrice decimal.Decimal `db:"average_sale_price" json:"averageSalePrice"`

	// MarginRateDirect applies to direct sales (fraction, 0.05 = 5%)
	MarginRateDirect decimal.Decimal `db:"margin_rate_direct" json:"marginRateDirect"`

	// MarginRateInterGroup applies to inter-group sales
	MarginRateInterGroup decimal.Decimal `db:"margin_rate_inter_group" json:"marginRateInterGroup"`
}

// NewBrand creates a new Brand with required fields.
func NewBrand(code, name string) *Brand {
	return &Brand{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (b *Brand) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}
	return validateRates(b.MarginRateDirect, b.MarginRateInterGroup)
}

// ToNode converts the brand to the pricing engine's node form.
func (b *Brand) ToNode() pricing.Node {
	return pricing.Node{
		ID:                   b.ID.String(),
		Name:                 b.Name,
		Level:                pricing.TargetBrand,
		Active:               b.Active,
		Price:                b.AverageSalePrice,
		MarginRateDirect:     b.MarginRateDirect,
		MarginRateInterGroup: b.MarginRateInterGroup,
	}
}

// validateRates rejects negative margin rates. Rates above 1 are allowed:
// some premium lines genuinely carry them, the form only warns.
func validateRates(rates ...decimal.Decimal) error {
	for _, r := range rates {
		if r.IsNegative() {
			return apperror.NewValidation("margin rate cannot be negative").
				WithDetail("value", r.String())
		}
	}
	return nil
}
