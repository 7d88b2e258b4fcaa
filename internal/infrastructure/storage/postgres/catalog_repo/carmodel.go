package catalog_repo

import (
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// ModelRepo implements carmodel.Repository.
type ModelRepo struct {
	*BaseCatalogRepo[*carmodel.Model]
}

// NewModelRepo creates a Model repository.
func NewModelRepo(txManager *postgres.TxManager) *ModelRepo {
	return &ModelRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"cat_models",
			postgres.ExtractDBColumns[carmodel.Model](),
			func() *carmodel.Model { return &carmodel.Model{} },
		),
	}
}

var _ carmodel.Repository = (*ModelRepo)(nil)
