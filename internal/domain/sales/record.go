// Package sales provides the sale record and sales objective documents.
// Both carry the pricing values frozen at save time: the server never
// recomputes a stored document when catalog prices change later.
package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/pricing"
)

// SaleRecord documents a concluded sale against a catalog target.
type SaleRecord struct {
	entity.BaseDocument

	// Target is the catalog level the sale is recorded against
	Target pricing.Target `db:"target" json:"target"`

	// BrandID is always set; ModelID and VersionID depend on the target level
	BrandID   id.ID  `db:"brand_id" json:"brandId"`
	ModelID   *id.ID `db:"model_id" json:"modelId,omitempty"`
	VersionID *id.ID `db:"version_id" json:"versionId,omitempty"`

	SaleTypeID id.ID `db:"sale_type_id" json:"saleTypeId"`

	// Volume is the number of units sold
	Volume int64 `db:"volume" json:"volume"`

	// Snapshot pricing, frozen at save time
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Revenue      decimal.Decimal `db:"revenue" json:"revenue"`
	MarginRate   decimal.Decimal `db:"margin_rate" json:"marginRate"`
	MarginAmount decimal.Decimal `db:"margin_amount" json:"marginAmount"`
}

// NewSaleRecord creates an empty sale record document.
func NewSaleRecord() *SaleRecord {
	return &SaleRecord{
		BaseDocument: entity.NewBaseDocument(),
		Target:       pricing.TargetVersion,
	}
}

// Validate implements entity.Validatable interface.
func (r *SaleRecord) Validate(ctx context.Context) error {
	return validateTargetChain(r.Target, r.BrandID, r.ModelID, r.VersionID, r.SaleTypeID, r.Volume)
}

// validateTargetChain enforces the target invariant shared by sale records
// and objectives: the target level's own id and every id above it are set.
func validateTargetChain(
	target pricing.Target,
	brandID id.ID,
	modelID, versionID *id.ID,
	saleTypeID id.ID,
	volume int64,
) error {
	if !target.Valid() {
		return apperror.NewValidation("unknown target level").
			WithDetail("field", "target").
			WithDetail("value", string(target))
	}
	if id.IsNil(brandID) {
		return apperror.NewValidation("brand is required").
			WithDetail("field", "brandId")
	}
	if target != pricing.TargetBrand && (modelID == nil || id.IsNil(*modelID)) {
		return apperror.NewValidation("model is required for this target level").
			WithDetail("field", "modelId")
	}
	if target == pricing.TargetVersion && (versionID == nil || id.IsNil(*versionID)) {
		return apperror.NewValidation("version is required for this target level").
			WithDetail("field", "versionId")
	}
	if id.IsNil(saleTypeID) {
		return apperror.NewValidation("sale type is required").
			WithDetail("field", "saleTypeId")
	}
	if volume <= 0 {
		return apperror.NewValidation("volume must be greater than zero").
			WithDetail("field", "volume")
	}
	return nil
}
