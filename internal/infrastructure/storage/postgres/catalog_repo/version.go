package catalog_repo

import (
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// VersionRepo implements version.Repository.
type VersionRepo struct {
	*BaseCatalogRepo[*version.Version]
}

// NewVersionRepo creates a Version repository.
func NewVersionRepo(txManager *postgres.TxManager) *VersionRepo {
	return &VersionRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"cat_versions",
			postgres.ExtractDBColumns[version.Version](),
			func() *version.Version { return &version.Version{} },
		),
	}
}

var _ version.Repository = (*VersionRepo)(nil)
