package dto

import (
	"github.com/shopspring/decimal"

	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/domain/catalogs/version"
)

// --- Brands ---

// BrandResponse contains brand fields.
type BrandResponse struct {
	CatalogResponse
	ImageURL             *string         `json:"imageUrl,omitempty"`
	BranchID             *int64          `json:"branchId,omitempty"`
	AverageSalePrice     decimal.Decimal `json:"averageSalePrice"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// FromBrand creates BrandResponse from a brand entity.
func FromBrand(b *brand.Brand) BrandResponse {
	return BrandResponse{
		CatalogResponse:      FromCatalog(b.Catalog),
		ImageURL:             b.ImageURL,
		BranchID:             b.BranchID,
		AverageSalePrice:     b.AverageSalePrice,
		MarginRateDirect:     b.MarginRateDirect,
		MarginRateInterGroup: b.MarginRateInterGroup,
	}
}

// CreateBrandRequest for creating brands. Code is derived from the name when
// omitted.
type CreateBrandRequest struct {
	Code                 string          `json:"code"`
	Name                 string          `json:"name" binding:"required"`
	ImageURL             *string         `json:"imageUrl"`
	BranchID             *int64          `json:"branchId"`
	AverageSalePrice     decimal.Decimal `json:"averageSalePrice"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// ToEntity converts the request to a brand entity.
func (r CreateBrandRequest) ToEntity() *brand.Brand {
	b := brand.NewBrand(r.Code, r.Name)
	b.ImageURL = r.ImageURL
	b.BranchID = r.BranchID
	b.AverageSalePrice = r.AverageSalePrice
	b.MarginRateDirect = r.MarginRateDirect
	b.MarginRateInterGroup = r.MarginRateInterGroup
	return b
}

// UpdateBrandRequest for updating brands. Only set fields are applied.
type UpdateBrandRequest struct {
	Name                 *string          `json:"name"`
	Active               *bool            `json:"active"`
	ImageURL             *string          `json:"imageUrl"`
	BranchID             *int64           `json:"branchId"`
	AverageSalePrice     *decimal.Decimal `json:"averageSalePrice"`
	MarginRateDirect     *decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup *decimal.Decimal `json:"marginRateInterGroup"`
	Version              int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies set fields onto an existing brand.
func (r UpdateBrandRequest) ApplyTo(b *brand.Brand) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Active != nil {
		b.Active = *r.Active
	}
	if r.ImageURL != nil {
		b.ImageURL = r.ImageURL
	}
	if r.BranchID != nil {
		b.BranchID = r.BranchID
	}
	if r.AverageSalePrice != nil {
		b.AverageSalePrice = *r.AverageSalePrice
	}
	if r.MarginRateDirect != nil {
		b.MarginRateDirect = *r.MarginRateDirect
	}
	if r.MarginRateInterGroup != nil {
		b.MarginRateInterGroup = *r.MarginRateInterGroup
	}
	b.SetVersion(r.Version)
}

// --- Models ---

// ModelResponse contains model fields.
type ModelResponse struct {
	CatalogResponse
	BrandID              string          `json:"brandId"`
	AverageSalePrice     decimal.Decimal `json:"averageSalePrice"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// FromModel creates ModelResponse from a model entity.
func FromModel(m *carmodel.Model) ModelResponse {
	return ModelResponse{
		CatalogResponse:      FromCatalog(m.Catalog),
		BrandID:              m.BrandID.String(),
		AverageSalePrice:     m.AverageSalePrice,
		MarginRateDirect:     m.MarginRateDirect,
		MarginRateInterGroup: m.MarginRateInterGroup,
	}
}

// CreateModelRequest for creating models.
type CreateModelRequest struct {
	Code                 string          `json:"code" binding:"required"`
	Name                 string          `json:"name" binding:"required"`
	BrandID              string          `json:"brandId" binding:"required,uuid"`
	AverageSalePrice     decimal.Decimal `json:"averageSalePrice"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// ToEntity converts the request to a model entity. BrandID is validated by
// the binding tag before this is called.
func (r CreateModelRequest) ToEntity() *carmodel.Model {
	brandID, _ := id.Parse(r.BrandID)
	m := carmodel.NewModel(r.Code, r.Name, brandID)
	m.AverageSalePrice = r.AverageSalePrice
	m.MarginRateDirect = r.MarginRateDirect
	m.MarginRateInterGroup = r.MarginRateInterGroup
	return m
}

// UpdateModelRequest for updating models.
type UpdateModelRequest struct {
	Name                 *string          `json:"name"`
	Active               *bool            `json:"active"`
	AverageSalePrice     *decimal.Decimal `json:"averageSalePrice"`
	MarginRateDirect     *decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup *decimal.Decimal `json:"marginRateInterGroup"`
	Version              int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies set fields onto an existing model.
func (r UpdateModelRequest) ApplyTo(m *carmodel.Model) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Active != nil {
		m.Active = *r.Active
	}
	if r.AverageSalePrice != nil {
		m.AverageSalePrice = *r.AverageSalePrice
	}
	if r.MarginRateDirect != nil {
		m.MarginRateDirect = *r.MarginRateDirect
	}
	if r.MarginRateInterGroup != nil {
		m.MarginRateInterGroup = *r.MarginRateInterGroup
	}
	m.SetVersion(r.Version)
}

// --- Versions ---

// VersionResponse contains version fields.
type VersionResponse struct {
	CatalogResponse
	ModelID              string          `json:"modelId"`
	BrandID              *string         `json:"brandId,omitempty"`
	SalePrice            decimal.Decimal `json:"salePrice"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// FromVersion creates VersionResponse from a version entity.
func FromVersion(v *version.Version) VersionResponse {
	resp := VersionResponse{
		CatalogResponse:      FromCatalog(v.Catalog),
		ModelID:              v.ModelID.String(),
		SalePrice:            v.SalePrice,
		MarginRateDirect:     v.MarginRateDirect,
		MarginRateInterGroup: v.MarginRateInterGroup,
	}
	if v.BrandID != nil {
		s := v.BrandID.String()
		resp.BrandID = &s
	}
	return resp
}

// CreateVersionRequest for creating versions.
type CreateVersionRequest struct {
	Code                 string          `json:"code" binding:"required"`
	Name                 string          `json:"name" binding:"required"`
	ModelID              string          `json:"modelId" binding:"required,uuid"`
	BrandID              *string         `json:"brandId" binding:"omitempty,uuid"`
	SalePrice            decimal.Decimal `json:"salePrice"`
	MarginRateDirect     decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup decimal.Decimal `json:"marginRateInterGroup"`
}

// ToEntity converts the request to a version entity.
func (r CreateVersionRequest) ToEntity() *version.Version {
	modelID, _ := id.Parse(r.ModelID)
	v := version.NewVersion(r.Code, r.Name, modelID)
	if r.BrandID != nil {
		if brandID, err := id.Parse(*r.BrandID); err == nil {
			v.BrandID = &brandID
		}
	}
	v.SalePrice = r.SalePrice
	v.MarginRateDirect = r.MarginRateDirect
	v.MarginRateInterGroup = r.MarginRateInterGroup
	return v
}

// UpdateVersionRequest for updating versions.
type UpdateVersionRequest struct {
	Name                 *string          `json:"name"`
	Active               *bool            `json:"active"`
	SalePrice            *decimal.Decimal `json:"salePrice"`
	MarginRateDirect     *decimal.Decimal `json:"marginRateDirect"`
	MarginRateInterGroup *decimal.Decimal `json:"marginRateInterGroup"`
	Version              int              `json:"version" binding:"required,min=1"`
}

// ApplyTo applies set fields onto an existing version.
func (r UpdateVersionRequest) ApplyTo(v *version.Version) {
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.Active != nil {
		v.Active = *r.Active
	}
	if r.SalePrice != nil {
		v.SalePrice = *r.SalePrice
	}
	if r.MarginRateDirect != nil {
		v.MarginRateDirect = *r.MarginRateDirect
	}
	if r.MarginRateInterGroup != nil {
		v.MarginRateInterGroup = *r.MarginRateInterGroup
	}
	v.SetVersion(r.Version)
}

// --- Sale Types ---

// SaleTypeResponse contains sale type fields.
type SaleTypeResponse struct {
	CatalogResponse
	InterGroup bool `json:"interGroup"`
}

// FromSaleType creates SaleTypeResponse from a sale type entity.
func FromSaleType(s *saletype.SaleType) SaleTypeResponse {
	return SaleTypeResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		InterGroup:      s.IsInterGroup(),
	}
}

// CreateSaleTypeRequest for creating sale types.
type CreateSaleTypeRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ToEntity converts the request to a sale type entity.
func (r CreateSaleTypeRequest) ToEntity() *saletype.SaleType {
	return saletype.NewSaleType(r.Code, r.Name)
}

// UpdateSaleTypeRequest for updating sale types.
type UpdateSaleTypeRequest struct {
	Name    *string `json:"name"`
	Active  *bool   `json:"active"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies set fields onto an existing sale type.
func (r UpdateSaleTypeRequest) ApplyTo(s *saletype.SaleType) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
	s.SetVersion(r.Version)
}
