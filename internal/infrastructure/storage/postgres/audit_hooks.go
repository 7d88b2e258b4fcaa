package postgres

import (
	"context"

	"dealerdesk/internal/core/entity"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
)

// auditable is what the audit hooks need from an entity.
type auditable interface {
	entity.Validatable
	Identity() id.ID
}

// RegisterCatalogAudit logs catalog mutations to the audit trail. Hooks run
// after commit and are best-effort; the service logs failures.
func RegisterCatalogAudit[T auditable](svc *domain.CatalogService[T], audit *AuditService, entityType string) {
	log := func(action AuditAction) domain.Hook[T] {
		return func(ctx context.Context, e T) error {
			return audit.LogChange(ctx, entityType, e.Identity(), action, map[string]any{
				"state": e,
			})
		}
	}

	svc.Hooks().On(domain.AfterCreate, log(AuditActionCreate))
	svc.Hooks().On(domain.AfterUpdate, log(AuditActionUpdate))
	svc.Hooks().On(domain.AfterDelete, log(AuditActionDelete))
}
