package handlers

import (
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/infrastructure/http/v1/dto"
)

// VersionHTTPHandler shortens the generic handler signature.
type VersionHTTPHandler = CatalogHandler[
	*version.Version,
	dto.CreateVersionRequest,
	dto.UpdateVersionRequest,
]

// NewVersionHandler creates the configured generic handler for versions.
func NewVersionHandler(
	base *BaseHandler,
	service *version.Service,
) *VersionHTTPHandler {
	config := CatalogHandlerConfig[
		*version.Version,
		dto.CreateVersionRequest,
		dto.UpdateVersionRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "version",

		MapCreateDTO: func(req dto.CreateVersionRequest) *version.Version {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateVersionRequest, existing *version.Version) *version.Version {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *version.Version) any {
			return dto.FromVersion(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
