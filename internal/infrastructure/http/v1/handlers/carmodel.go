package handlers

import (
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/infrastructure/http/v1/dto"
)

// ModelHTTPHandler shortens the generic handler signature.
type ModelHTTPHandler = CatalogHandler[
	*carmodel.Model,
	dto.CreateModelRequest,
	dto.UpdateModelRequest,
]

// NewModelHandler creates the configured generic handler for models.
func NewModelHandler(
	base *BaseHandler,
	service *carmodel.Service,
) *ModelHTTPHandler {
	config := CatalogHandlerConfig[
		*carmodel.Model,
		dto.CreateModelRequest,
		dto.UpdateModelRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "model",

		MapCreateDTO: func(req dto.CreateModelRequest) *carmodel.Model {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateModelRequest, existing *carmodel.Model) *carmodel.Model {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *carmodel.Model) any {
			return dto.FromModel(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
