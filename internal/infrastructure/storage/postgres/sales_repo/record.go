package sales_repo

import (
	"context"

	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/sales"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// RecordRepo implements sales.RecordRepository.
type RecordRepo struct {
	base baseDocumentRepo[*sales.SaleRecord]
}

// NewRecordRepo creates a sale record repository.
func NewRecordRepo(txManager *postgres.TxManager) *RecordRepo {
	return &RecordRepo{
		base: baseDocumentRepo[*sales.SaleRecord]{
			txManager:  txManager,
			tableName:  "doc_sale_records",
			selectCols: postgres.ExtractDBColumns[sales.SaleRecord](),
			newFn:      func() *sales.SaleRecord { return &sales.SaleRecord{} },
		},
	}
}

var _ sales.RecordRepository = (*RecordRepo)(nil)

// Create implements sales.RecordRepository.
func (r *RecordRepo) Create(ctx context.Context, rec *sales.SaleRecord) error {
	return r.base.create(ctx, rec)
}

// GetByID implements sales.RecordRepository.
func (r *RecordRepo) GetByID(ctx context.Context, recordID id.ID) (*sales.SaleRecord, error) {
	return r.base.getByID(ctx, recordID)
}

// Update implements sales.RecordRepository.
func (r *RecordRepo) Update(ctx context.Context, rec *sales.SaleRecord) error {
	return r.base.update(ctx, rec)
}

// SetDeletionMark implements sales.RecordRepository.
func (r *RecordRepo) SetDeletionMark(ctx context.Context, recordID id.ID, marked bool) error {
	return r.base.setDeletionMark(ctx, recordID, marked)
}

// List implements sales.RecordRepository.
func (r *RecordRepo) List(ctx context.Context, filter sales.DocumentFilter) (domain.ListResult[*sales.SaleRecord], error) {
	return r.base.list(ctx, filter)
}
