package sales_repo

import (
	"context"

	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/sales"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// ObjectiveRepo implements sales.ObjectiveRepository.
type ObjectiveRepo struct {
	base baseDocumentRepo[*sales.Objective]
}

// NewObjectiveRepo creates an objective repository.
func NewObjectiveRepo(txManager *postgres.TxManager) *ObjectiveRepo {
	return &ObjectiveRepo{
		base: baseDocumentRepo[*sales.Objective]{
			txManager:  txManager,
			tableName:  "doc_objectives",
			selectCols: postgres.ExtractDBColumns[sales.Objective](),
			newFn:      func() *sales.Objective { return &sales.Objective{} },
			hasYear:    true,
		},
	}
}

var _ sales.ObjectiveRepository = (*ObjectiveRepo)(nil)

// Create implements sales.ObjectiveRepository.
func (r *ObjectiveRepo) Create(ctx context.Context, obj *sales.Objective) error {
	return r.base.create(ctx, obj)
}

// GetByID implements sales.ObjectiveRepository.
func (r *ObjectiveRepo) GetByID(ctx context.Context, objectiveID id.ID) (*sales.Objective, error) {
	return r.base.getByID(ctx, objectiveID)
}

// Update implements sales.ObjectiveRepository.
func (r *ObjectiveRepo) Update(ctx context.Context, obj *sales.Objective) error {
	return r.base.update(ctx, obj)
}

// SetDeletionMark implements sales.ObjectiveRepository.
func (r *ObjectiveRepo) SetDeletionMark(ctx context.Context, objectiveID id.ID, marked bool) error {
	return r.base.setDeletionMark(ctx, objectiveID, marked)
}

// List implements sales.ObjectiveRepository.
func (r *ObjectiveRepo) List(ctx context.Context, filter sales.DocumentFilter) (domain.ListResult[*sales.Objective], error) {
	return r.base.list(ctx, filter)
}
