// Package catalogsource provides pricing.CatalogReader implementations. The
// local reader serves option lists from the server's own database; the
// legacy package provides the gateway-mode reader over the historical DMS.
package catalogsource

import (
	"context"

	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/domain/pricing"
)

// LocalReader serves catalog option lists from the catalog services.
type LocalReader struct {
	brands    *brand.Service
	models    *carmodel.Service
	versions  *version.Service
	saleTypes *saletype.Service

	// pageSize bounds selector lists; selectors are not paginated
	pageSize int
}

// NewLocalReader creates a database-backed catalog reader.
func NewLocalReader(
	brands *brand.Service,
	models *carmodel.Service,
	versions *version.Service,
	saleTypes *saletype.Service,
	pageSize int,
) *LocalReader {
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &LocalReader{
		brands:    brands,
		models:    models,
		versions:  versions,
		saleTypes: saleTypes,
		pageSize:  pageSize,
	}
}

var _ pricing.CatalogReader = (*LocalReader)(nil)

// ListBrands implements pricing.CatalogReader.
func (r *LocalReader) ListBrands(ctx context.Context) ([]pricing.Node, error) {
	result, err := r.brands.List(ctx, domain.SelectorFilter(r.pageSize))
	if err != nil {
		return nil, err
	}
	nodes := make([]pricing.Node, 0, len(result.Items))
	for _, b := range result.Items {
		nodes = append(nodes, b.ToNode())
	}
	return nodes, nil
}

// ListModelsByBrand implements pricing.CatalogReader.
func (r *LocalReader) ListModelsByBrand(ctx context.Context, brandID string) ([]pricing.Node, error) {
	bid, err := id.Parse(brandID)
	if err != nil {
		// Unknown parent resolves to an empty list, same as a miss
		return nil, nil
	}
	models, err := r.models.ListByBrand(ctx, bid, r.pageSize)
	if err != nil {
		return nil, err
	}
	nodes := make([]pricing.Node, 0, len(models))
	for _, m := range models {
		nodes = append(nodes, m.ToNode())
	}
	return nodes, nil
}

// ListVersionsByModel implements pricing.CatalogReader.
func (r *LocalReader) ListVersionsByModel(ctx context.Context, modelID string) ([]pricing.Node, error) {
	mid, err := id.Parse(modelID)
	if err != nil {
		return nil, nil
	}
	versions, err := r.versions.ListByModel(ctx, mid, r.pageSize)
	if err != nil {
		return nil, err
	}
	nodes := make([]pricing.Node, 0, len(versions))
	for _, v := range versions {
		nodes = append(nodes, v.ToNode())
	}
	return nodes, nil
}

// ListSaleTypes implements pricing.CatalogReader.
func (r *LocalReader) ListSaleTypes(ctx context.Context) ([]pricing.SaleType, error) {
	return r.saleTypes.ListForSelector(ctx, r.pageSize)
}
