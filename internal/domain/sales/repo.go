package sales

import (
	"context"

	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/pricing"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	// BrandID filters by recorded brand
	BrandID *id.ID

	// Target filters by catalog level
	Target *pricing.Target

	// Year filters objectives; ignored for sale records
	Year *int

	// IncludeDeleted includes soft-deleted documents
	IncludeDeleted bool

	OrderBy string
	Limit   int
	Offset  int
}

// DefaultDocumentFilter returns sensible defaults: newest first.
func DefaultDocumentFilter() DocumentFilter {
	return DocumentFilter{
		OrderBy: "-created_at",
		Limit:   50,
	}
}

// RecordRepository defines persistence for sale records.
type RecordRepository interface {
	Create(ctx context.Context, rec *SaleRecord) error
	GetByID(ctx context.Context, recordID id.ID) (*SaleRecord, error)
	Update(ctx context.Context, rec *SaleRecord) error
	SetDeletionMark(ctx context.Context, recordID id.ID, marked bool) error
	List(ctx context.Context, filter DocumentFilter) (domain.ListResult[*SaleRecord], error)
}

// ObjectiveRepository defines persistence for objectives.
type ObjectiveRepository interface {
	Create(ctx context.Context, obj *Objective) error
	GetByID(ctx context.Context, objectiveID id.ID) (*Objective, error)
	Update(ctx context.Context, obj *Objective) error
	SetDeletionMark(ctx context.Context, objectiveID id.ID, marked bool) error
	List(ctx context.Context, filter DocumentFilter) (domain.ListResult[*Objective], error)
}
