package catalog_repo

import (
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// BrandRepo implements brand.Repository.
type BrandRepo struct {
	*BaseCatalogRepo[*brand.Brand]
}

// NewBrandRepo creates a Brand repository.
func NewBrandRepo(txManager *postgres.TxManager) *BrandRepo {
	return &BrandRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"cat_brands",
			postgres.ExtractDBColumns[brand.Brand](),
			func() *brand.Brand { return &brand.Brand{} },
		),
	}
}

var _ brand.Repository = (*BrandRepo)(nil)
