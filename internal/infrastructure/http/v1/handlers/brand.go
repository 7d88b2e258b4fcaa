package handlers

import (
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/infrastructure/http/v1/dto"
)

// BrandHTTPHandler shortens the generic handler signature.
type BrandHTTPHandler = CatalogHandler[
	*brand.Brand,
	dto.CreateBrandRequest,
	dto.UpdateBrandRequest,
]

// NewBrandHandler creates the configured generic handler for brands.
func NewBrandHandler(
	base *BaseHandler,
	service *brand.Service,
) *BrandHTTPHandler {
	config := CatalogHandlerConfig[
		*brand.Brand,
		dto.CreateBrandRequest,
		dto.UpdateBrandRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "brand",

		MapCreateDTO: func(req dto.CreateBrandRequest) *brand.Brand {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateBrandRequest, existing *brand.Brand) *brand.Brand {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *brand.Brand) any {
			return dto.FromBrand(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
