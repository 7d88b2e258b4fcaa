package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/sales"
)

// DocumentResponse contains the fields shared by sale records and
// objectives.
type DocumentResponse struct {
	BaseResponse
	Target     string  `json:"target"`
	BrandID    string  `json:"brandId"`
	ModelID    *string `json:"modelId,omitempty"`
	VersionID  *string `json:"versionId,omitempty"`
	SaleTypeID string  `json:"saleTypeId"`
	Volume     int64   `json:"volume"`

	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Revenue      decimal.Decimal `json:"revenue"`
	MarginRate   decimal.Decimal `json:"marginRate"`
	MarginAmount decimal.Decimal `json:"marginAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaleRecordResponse contains sale record fields.
type SaleRecordResponse struct {
	DocumentResponse
}

// FromSaleRecord creates SaleRecordResponse from a sale record.
func FromSaleRecord(r *sales.SaleRecord) SaleRecordResponse {
	return SaleRecordResponse{
		DocumentResponse: DocumentResponse{
			BaseResponse: BaseResponse{
				ID:           r.ID.String(),
				DeletionMark: r.DeletionMark,
				Version:      r.Version,
			},
			Target:       string(r.Target),
			BrandID:      r.BrandID.String(),
			ModelID:      optionalIDString(r.ModelID),
			VersionID:    optionalIDString(r.VersionID),
			SaleTypeID:   r.SaleTypeID.String(),
			Volume:       r.Volume,
			UnitPrice:    r.UnitPrice,
			Revenue:      r.Revenue,
			MarginRate:   r.MarginRate,
			MarginAmount: r.MarginAmount,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		},
	}
}

// ObjectiveResponse contains objective fields.
type ObjectiveResponse struct {
	DocumentResponse
	Year int `json:"year"`
}

// FromObjective creates ObjectiveResponse from an objective.
func FromObjective(o *sales.Objective) ObjectiveResponse {
	return ObjectiveResponse{
		DocumentResponse: DocumentResponse{
			BaseResponse: BaseResponse{
				ID:           o.ID.String(),
				DeletionMark: o.DeletionMark,
				Version:      o.Version,
			},
			Target:       string(o.Target),
			BrandID:      o.BrandID.String(),
			ModelID:      optionalIDString(o.ModelID),
			VersionID:    optionalIDString(o.VersionID),
			SaleTypeID:   o.SaleTypeID.String(),
			Volume:       o.Volume,
			UnitPrice:    o.UnitPrice,
			Revenue:      o.Revenue,
			MarginRate:   o.MarginRate,
			MarginAmount: o.MarginAmount,
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
		},
		Year: o.Year,
	}
}

// UpdateObjectiveYearRequest moves an objective to another year.
type UpdateObjectiveYearRequest struct {
	Year int `json:"year" binding:"required,min=2000"`
}

func optionalIDString(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
