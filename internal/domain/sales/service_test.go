package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/domain/worksheet"
)

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRecordRepo struct {
	records map[id.ID]*SaleRecord
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: map[id.ID]*SaleRecord{}}
}

func (r *memRecordRepo) Create(ctx context.Context, rec *SaleRecord) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memRecordRepo) GetByID(ctx context.Context, recordID id.ID) (*SaleRecord, error) {
	rec, ok := r.records[recordID]
	if !ok {
		return nil, apperror.NewNotFound("saleRecord", recordID.String())
	}
	return rec, nil
}

func (r *memRecordRepo) Update(ctx context.Context, rec *SaleRecord) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memRecordRepo) SetDeletionMark(ctx context.Context, recordID id.ID, marked bool) error {
	if rec, ok := r.records[recordID]; ok {
		rec.DeletionMark = marked
	}
	return nil
}

func (r *memRecordRepo) List(ctx context.Context, filter DocumentFilter) (domain.ListResult[*SaleRecord], error) {
	var items []*SaleRecord
	for _, rec := range r.records {
		items = append(items, rec)
	}
	return domain.ListResult[*SaleRecord]{Items: items, TotalCount: int64(len(items))}, nil
}

func snapshot() worksheet.SaveSnapshot {
	return worksheet.SaveSnapshot{
		Kind:       worksheet.KindSale,
		Target:     pricing.TargetVersion,
		BrandID:    id.New().String(),
		ModelID:    id.New().String(),
		VersionID:  id.New().String(),
		SaleTypeID: id.New().String(),
		Volume:     2,
		UnitPrice:  decimal.NewFromInt(250000),
		Revenue:    decimal.NewFromInt(500000),
		MarginRate: decimal.NewFromFloat(0.08),
		Margin:     decimal.NewFromInt(40000),
	}
}

func TestRecordService_CreateLoadRoundTrip(t *testing.T) {
	svc := NewRecordService(newMemRecordRepo(), noopTx{})
	ctx := context.Background()

	snap := snapshot()
	recordID, err := svc.Create(ctx, snap)
	require.NoError(t, err)
	require.NotEmpty(t, recordID)

	loaded, err := svc.Load(ctx, recordID)
	require.NoError(t, err)
	assert.Equal(t, snap.Target, loaded.Target)
	assert.Equal(t, snap.VersionID, loaded.VersionID)
	assert.EqualValues(t, 2, loaded.Volume)
	assert.True(t, loaded.Revenue.Equal(snap.Revenue))
	assert.True(t, loaded.Margin.Equal(snap.Margin))
}

func TestRecordService_CreateRejectsIncompleteChain(t *testing.T) {
	svc := NewRecordService(newMemRecordRepo(), noopTx{})

	snap := snapshot()
	snap.VersionID = ""
	_, err := svc.Create(context.Background(), snap)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordService_CreateRejectsMalformedIDs(t *testing.T) {
	svc := NewRecordService(newMemRecordRepo(), noopTx{})

	snap := snapshot()
	snap.BrandID = "12"
	_, err := svc.Create(context.Background(), snap)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordService_UpdateBumpsVersion(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewRecordService(repo, noopTx{})
	ctx := context.Background()

	recordID, err := svc.Create(ctx, snapshot())
	require.NoError(t, err)

	snap := snapshot()
	snap.Target = pricing.TargetBrand
	snap.ModelID = ""
	snap.VersionID = ""
	require.NoError(t, svc.Update(ctx, recordID, snap))

	rec, err := svc.GetByID(ctx, id.MustParse(recordID))
	require.NoError(t, err)
	assert.Equal(t, pricing.TargetBrand, rec.Target)
	assert.Nil(t, rec.VersionID)
	assert.Equal(t, 2, rec.Version)
}

func TestObjectiveService_CreateDefaultsToCurrentYear(t *testing.T) {
	repo := &memObjectiveRepo{objectives: map[id.ID]*Objective{}}
	svc := NewObjectiveService(repo, noopTx{})
	ctx := context.Background()

	objID, err := svc.Create(ctx, snapshot())
	require.NoError(t, err)

	obj, err := svc.GetByID(ctx, id.MustParse(objID))
	require.NoError(t, err)
	assert.NotZero(t, obj.Year)

	loaded, err := svc.Load(ctx, objID)
	require.NoError(t, err)
	assert.Equal(t, worksheet.KindObjective, loaded.Kind)
}

type memObjectiveRepo struct {
	objectives map[id.ID]*Objective
}

func (r *memObjectiveRepo) Create(ctx context.Context, obj *Objective) error {
	r.objectives[obj.ID] = obj
	return nil
}

func (r *memObjectiveRepo) GetByID(ctx context.Context, objectiveID id.ID) (*Objective, error) {
	obj, ok := r.objectives[objectiveID]
	if !ok {
		return nil, apperror.NewNotFound("objective", objectiveID.String())
	}
	return obj, nil
}

func (r *memObjectiveRepo) Update(ctx context.Context, obj *Objective) error {
	r.objectives[obj.ID] = obj
	return nil
}

func (r *memObjectiveRepo) SetDeletionMark(ctx context.Context, objectiveID id.ID, marked bool) error {
	if obj, ok := r.objectives[objectiveID]; ok {
		obj.DeletionMark = marked
	}
	return nil
}

func (r *memObjectiveRepo) List(ctx context.Context, filter DocumentFilter) (domain.ListResult[*Objective], error) {
	var items []*Objective
	for _, obj := range r.objectives {
		items = append(items, obj)
	}
	return domain.ListResult[*Objective]{Items: items, TotalCount: int64(len(items))}, nil
}
