package saletype

import (
	"context"

	"dealerdesk/internal/core/tx"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/pricing"
)

// Service provides business logic for the SaleType catalog.
type Service struct {
	*domain.CatalogService[*SaleType]
	repo Repository
}

// NewService creates a new SaleType service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*SaleType]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "saleType",
	})
	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// ListForSelector returns the active sale types in pricing form. The list is
// small and fully loaded.
func (s *Service) ListForSelector(ctx context.Context, limit int) ([]pricing.SaleType, error) {
	result, err := s.List(ctx, domain.SelectorFilter(limit))
	if err != nil {
		return nil, err
	}
	saleTypes := make([]pricing.SaleType, 0, len(result.Items))
	for _, st := range result.Items {
		saleTypes = append(saleTypes, st.ToSaleType())
	}
	return saleTypes, nil
}
