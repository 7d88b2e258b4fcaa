package catalog_repo

import (
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// SaleTypeRepo implements saletype.Repository.
type SaleTypeRepo struct {
	*BaseCatalogRepo[*saletype.SaleType]
}

// NewSaleTypeRepo creates a SaleType repository.
func NewSaleTypeRepo(txManager *postgres.TxManager) *SaleTypeRepo {
	return &SaleTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"cat_sale_types",
			postgres.ExtractDBColumns[saletype.SaleType](),
			func() *saletype.SaleType { return &saletype.SaleType{} },
		),
	}
}

var _ saletype.Repository = (*SaleTypeRepo)(nil)
