package carmodel

import (
	"context"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/core/tx"
	"dealerdesk/internal/domain"
)

// BrandChecker verifies brand references without importing the brand package.
type BrandChecker interface {
	Exists(ctx context.Context, brandID id.ID) (bool, error)
}

// Service provides business logic for the Model catalog.
type Service struct {
	*domain.CatalogService[*Model]
	repo   Repository
	brands BrandChecker
}

// NewService creates a new Model service.
func NewService(repo Repository, brands BrandChecker, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Model]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "model",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		brands:         brands,
	}

	base.Hooks().OnBeforeCreate(svc.checkBrand)
	base.Hooks().OnBeforeUpdate(svc.checkBrand)
	return svc
}

// checkBrand rejects references to missing brands.
func (s *Service) checkBrand(ctx context.Context, m *Model) error {
	exists, err := s.brands.Exists(ctx, m.BrandID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("referenced brand does not exist").
			WithDetail("field", "brandId").
			WithDetail("value", m.BrandID.String())
	}
	return nil
}

// ListByBrand returns the brand's models for selector display.
func (s *Service) ListByBrand(ctx context.Context, brandID id.ID, limit int) ([]*Model, error) {
	filter := domain.SelectorFilter(limit)
	filter.ParentID = &brandID
	result, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
