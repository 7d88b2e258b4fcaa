package legacy

import (
	"context"

	"dealerdesk/internal/domain/pricing"
)

// Reader adapts the legacy client to the catalog reader the pricing cache
// consumes. Used when the server runs in gateway mode against the historical
// backend instead of its own database.
type Reader struct {
	client *Client
}

// NewReader creates a catalog reader over the legacy API.
func NewReader(client *Client) *Reader {
	return &Reader{client: client}
}

var _ pricing.CatalogReader = (*Reader)(nil)

// ListBrands implements pricing.CatalogReader.
func (r *Reader) ListBrands(ctx context.Context) ([]pricing.Node, error) {
	return r.collect(ctx, func(ctx context.Context, page int) (Page, error) {
		return r.client.ListBrands(ctx, page, selectorPageSize)
	}, func(raw any) pricing.Node {
		return NormalizeBrand(raw)
	})
}

// ListModelsByBrand implements pricing.CatalogReader.
func (r *Reader) ListModelsByBrand(ctx context.Context, brandID string) ([]pricing.Node, error) {
	return r.collect(ctx, func(ctx context.Context, page int) (Page, error) {
		return r.client.ListModelsByBrand(ctx, brandID, page, selectorPageSize)
	}, func(raw any) pricing.Node {
		return NormalizeModel(raw, brandID)
	})
}

// ListVersionsByModel implements pricing.CatalogReader.
func (r *Reader) ListVersionsByModel(ctx context.Context, modelID string) ([]pricing.Node, error) {
	return r.collect(ctx, func(ctx context.Context, page int) (Page, error) {
		return r.client.ListVersionsByModel(ctx, modelID, page, selectorPageSize)
	}, func(raw any) pricing.Node {
		return NormalizeVersion(raw, modelID)
	})
}

// ListSaleTypes implements pricing.CatalogReader.
func (r *Reader) ListSaleTypes(ctx context.Context) ([]pricing.SaleType, error) {
	page, err := r.client.ListSaleTypes(ctx)
	if err != nil {
		return nil, err
	}
	saleTypes := make([]pricing.SaleType, 0, len(page.Items))
	for _, raw := range page.Items {
		st := NormalizeSaleType(raw)
		if st.ID != "" {
			saleTypes = append(saleTypes, st)
		}
	}
	return saleTypes, nil
}

// collect drains every page of a listing. Selector lists almost always fit
// in one page; the loop covers catalogs that have outgrown the page size.
func (r *Reader) collect(
	ctx context.Context,
	fetch func(ctx context.Context, page int) (Page, error),
	normalize func(raw any) pricing.Node,
) ([]pricing.Node, error) {
	var nodes []pricing.Node
	for pageNum := 1; ; pageNum++ {
		page, err := fetch(ctx, pageNum)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			node := normalize(raw)
			if node.ID == "" || !node.Active {
				continue
			}
			nodes = append(nodes, node)
		}
		if pageNum >= page.Pagination.TotalPages || len(page.Items) == 0 {
			break
		}
	}
	return nodes, nil
}
