package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/pricing"
)

// Objective documents a sales objective: a volume target against a catalog
// node for a given year, with the projected revenue and margin frozen from
// the catalog prices current at save time.
type Objective struct {
	entity.BaseDocument

	// Year the objective applies to
	Year int `db:"year" json:"year"`

	Target    pricing.Target `db:"target" json:"target"`
	BrandID   id.ID          `db:"brand_id" json:"brandId"`
	ModelID   *id.ID         `db:"model_id" json:"modelId,omitempty"`
	VersionID *id.ID         `db:"version_id" json:"versionId,omitempty"`

	SaleTypeID id.ID `db:"sale_type_id" json:"saleTypeId"`

	// Volume is the targeted number of units
	Volume int64 `db:"volume" json:"volume"`

	// Projected values, frozen at save time
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Revenue      decimal.Decimal `db:"revenue" json:"revenue"`
	MarginRate   decimal.Decimal `db:"margin_rate" json:"marginRate"`
	MarginAmount decimal.Decimal `db:"margin_amount" json:"marginAmount"`
}

// NewObjective creates an empty objective for the given year.
func NewObjective(year int) *Objective {
	return &Objective{
		BaseDocument: entity.NewBaseDocument(),
		Target:       pricing.TargetVersion,
		Year:         year,
	}
}

// Validate implements entity.Validatable interface.
func (o *Objective) Validate(ctx context.Context) error {
	if o.Year < 2000 || o.Year > time.Now().Year()+10 {
		return apperror.NewValidation("year is out of range").
			WithDetail("field", "year").
			WithDetail("value", o.Year)
	}
	return validateTargetChain(o.Target, o.BrandID, o.ModelID, o.VersionID, o.SaleTypeID, o.Volume)
}
