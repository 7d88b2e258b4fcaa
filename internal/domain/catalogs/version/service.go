package version

import (
	"context"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/core/tx"
	"dealerdesk/internal/domain"
)

// ModelChecker verifies model references without importing the carmodel
// package.
type ModelChecker interface {
	Exists(ctx context.Context, modelID id.ID) (bool, error)
}

// Service provides business logic for the Version catalog.
type Service struct {
	*domain.CatalogService[*Version]
	repo   Repository
	models ModelChecker
}

// NewService creates a new Version service.
func NewService(repo Repository, models ModelChecker, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Version]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "version",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		models:         models,
	}

	base.Hooks().OnBeforeCreate(svc.checkModel)
	base.Hooks().OnBeforeUpdate(svc.checkModel)
	return svc
}

// checkModel rejects references to missing models.
func (s *Service) checkModel(ctx context.Context, v *Version) error {
	exists, err := s.models.Exists(ctx, v.ModelID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewValidation("referenced model does not exist").
			WithDetail("field", "modelId").
			WithDetail("value", v.ModelID.String())
	}
	return nil
}

// ListByModel returns the model's versions for selector display.
func (s *Service) ListByModel(ctx context.Context, modelID id.ID, limit int) ([]*Version, error) {
	filter := domain.SelectorFilter(limit)
	filter.ParentID = &modelID
	result, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
