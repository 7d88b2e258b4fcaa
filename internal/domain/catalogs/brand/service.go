package brand

import (
	"context"
	"strings"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/tx"
	"dealerdesk/internal/domain"
)

// Service provides business logic for the Brand catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Brand]
	repo Repository
}

// NewService creates a new Brand service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Brand]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "brand",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	return svc
}

// prepareForCreate derives a code from the name when none was provided and
// rejects duplicate codes.
func (s *Service) prepareForCreate(ctx context.Context, b *Brand) error {
	if b.Code == "" {
		b.Code = deriveCode(b.Name)
	}

	exists, err := s.repo.ExistsByCode(ctx, b.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("brand", "code", b.Code)
	}
	return nil
}

// deriveCode builds an uppercase slug from a display name: "Alfa Romeo"
// becomes "ALFA-ROMEO".
func deriveCode(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	return strings.ToUpper(strings.Join(fields, "-"))
}
