package handlers

import (
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/infrastructure/http/v1/dto"
)

// SaleTypeHTTPHandler shortens the generic handler signature.
type SaleTypeHTTPHandler = CatalogHandler[
	*saletype.SaleType,
	dto.CreateSaleTypeRequest,
	dto.UpdateSaleTypeRequest,
]

// NewSaleTypeHandler creates the configured generic handler for sale types.
func NewSaleTypeHandler(
	base *BaseHandler,
	service *saletype.Service,
) *SaleTypeHTTPHandler {
	config := CatalogHandlerConfig[
		*saletype.SaleType,
		dto.CreateSaleTypeRequest,
		dto.UpdateSaleTypeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "saleType",

		MapCreateDTO: func(req dto.CreateSaleTypeRequest) *saletype.SaleType {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSaleTypeRequest, existing *saletype.SaleType) *saletype.SaleType {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *saletype.SaleType) any {
			return dto.FromSaleType(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
