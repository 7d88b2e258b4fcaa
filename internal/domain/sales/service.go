package sales

import (
	"context"
	"fmt"
	"time"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/core/tx"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/domain/worksheet"
)

// RecordService provides business logic for sale records. It also implements
// worksheet.RecordWriter so completed worksheets save through it.
type RecordService struct {
	repo      RecordRepository
	txManager tx.Manager
}

// NewRecordService creates a sale record service.
func NewRecordService(repo RecordRepository, txManager tx.Manager) *RecordService {
	return &RecordService{repo: repo, txManager: txManager}
}

var _ worksheet.RecordWriter = (*RecordService)(nil)

// Create implements worksheet.RecordWriter.
func (s *RecordService) Create(ctx context.Context, snap worksheet.SaveSnapshot) (string, error) {
	rec := NewSaleRecord()
	if err := applySnapshot(&rec.Target, &rec.BrandID, &rec.ModelID, &rec.VersionID, &rec.SaleTypeID, snap); err != nil {
		return "", err
	}
	rec.Volume = snap.Volume
	rec.UnitPrice = snap.UnitPrice
	rec.Revenue = snap.Revenue
	rec.MarginRate = snap.MarginRate
	rec.MarginAmount = snap.Margin

	if err := rec.Validate(ctx); err != nil {
		return "", err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, rec)
	})
	if err != nil {
		return "", fmt.Errorf("create sale record: %w", err)
	}
	return rec.ID.String(), nil
}

// Update implements worksheet.RecordWriter.
func (s *RecordService) Update(ctx context.Context, recordID string, snap worksheet.SaveSnapshot) error {
	recID, err := id.Parse(recordID)
	if err != nil {
		return apperror.NewValidation("invalid record id").WithDetail("value", recordID)
	}

	rec, err := s.repo.GetByID(ctx, recID)
	if err != nil {
		return err
	}
	if err := applySnapshot(&rec.Target, &rec.BrandID, &rec.ModelID, &rec.VersionID, &rec.SaleTypeID, snap); err != nil {
		return err
	}
	rec.Volume = snap.Volume
	rec.UnitPrice = snap.UnitPrice
	rec.Revenue = snap.Revenue
	rec.MarginRate = snap.MarginRate
	rec.MarginAmount = snap.Margin
	rec.Touch()

	if err := rec.Validate(ctx); err != nil {
		return err
	}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, rec)
	})
	if err != nil {
		return fmt.Errorf("update sale record: %w", err)
	}
	return nil
}

// Load implements worksheet.RecordWriter.
func (s *RecordService) Load(ctx context.Context, recordID string) (worksheet.SaveSnapshot, error) {
	recID, err := id.Parse(recordID)
	if err != nil {
		return worksheet.SaveSnapshot{}, apperror.NewValidation("invalid record id").WithDetail("value", recordID)
	}
	rec, err := s.repo.GetByID(ctx, recID)
	if err != nil {
		return worksheet.SaveSnapshot{}, err
	}
	return worksheet.SaveSnapshot{
		Kind:       worksheet.KindSale,
		Target:     rec.Target,
		BrandID:    rec.BrandID.String(),
		ModelID:    optionalID(rec.ModelID),
		VersionID:  optionalID(rec.VersionID),
		SaleTypeID: rec.SaleTypeID.String(),
		Volume:     rec.Volume,
		UnitPrice:  rec.UnitPrice,
		Revenue:    rec.Revenue,
		MarginRate: rec.MarginRate,
		Margin:     rec.MarginAmount,
	}, nil
}

// GetByID returns one sale record.
func (s *RecordService) GetByID(ctx context.Context, recordID id.ID) (*SaleRecord, error) {
	return s.repo.GetByID(ctx, recordID)
}

// List returns sale records matching the filter.
func (s *RecordService) List(ctx context.Context, filter DocumentFilter) (domain.ListResult[*SaleRecord], error) {
	return s.repo.List(ctx, filter)
}

// Delete soft-deletes a sale record.
func (s *RecordService) Delete(ctx context.Context, recordID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, recordID, true)
	})
}

// ObjectiveService provides business logic for sales objectives and is the
// worksheet.RecordWriter for objective worksheets. Objectives created
// through a worksheet land on the current year; the year is edited on the
// document afterwards.
type ObjectiveService struct {
	repo      ObjectiveRepository
	txManager tx.Manager
}

// NewObjectiveService creates an objective service.
func NewObjectiveService(repo ObjectiveRepository, txManager tx.Manager) *ObjectiveService {
	return &ObjectiveService{repo: repo, txManager: txManager}
}

var _ worksheet.RecordWriter = (*ObjectiveService)(nil)

// Create implements worksheet.RecordWriter.
func (s *ObjectiveService) Create(ctx context.Context, snap worksheet.SaveSnapshot) (string, error) {
	obj := NewObjective(time.Now().Year())
	if err := applySnapshot(&obj.Target, &obj.BrandID, &obj.ModelID, &obj.VersionID, &obj.SaleTypeID, snap); err != nil {
		return "", err
	}
	obj.Volume = snap.Volume
	obj.UnitPrice = snap.UnitPrice
	obj.Revenue = snap.Revenue
	obj.MarginRate = snap.MarginRate
	obj.MarginAmount = snap.Margin

	if err := obj.Validate(ctx); err != nil {
		return "", err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, obj)
	})
	if err != nil {
		return "", fmt.Errorf("create objective: %w", err)
	}
	return obj.ID.String(), nil
}

// Update implements worksheet.RecordWriter.
func (s *ObjectiveService) Update(ctx context.Context, recordID string, snap worksheet.SaveSnapshot) error {
	objID, err := id.Parse(recordID)
	if err != nil {
		return apperror.NewValidation("invalid objective id").WithDetail("value", recordID)
	}

	obj, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		return err
	}
	if err := applySnapshot(&obj.Target, &obj.BrandID, &obj.ModelID, &obj.VersionID, &obj.SaleTypeID, snap); err != nil {
		return err
	}
	obj.Volume = snap.Volume
	obj.UnitPrice = snap.UnitPrice
	obj.Revenue = snap.Revenue
	obj.MarginRate = snap.MarginRate
	obj.MarginAmount = snap.Margin
	obj.Touch()

	if err := obj.Validate(ctx); err != nil {
		return err
	}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, obj)
	})
	if err != nil {
		return fmt.Errorf("update objective: %w", err)
	}
	return nil
}

// Load implements worksheet.RecordWriter.
func (s *ObjectiveService) Load(ctx context.Context, recordID string) (worksheet.SaveSnapshot, error) {
	objID, err := id.Parse(recordID)
	if err != nil {
		return worksheet.SaveSnapshot{}, apperror.NewValidation("invalid objective id").WithDetail("value", recordID)
	}
	obj, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		return worksheet.SaveSnapshot{}, err
	}
	return worksheet.SaveSnapshot{
		Kind:       worksheet.KindObjective,
		Target:     obj.Target,
		BrandID:    obj.BrandID.String(),
		ModelID:    optionalID(obj.ModelID),
		VersionID:  optionalID(obj.VersionID),
		SaleTypeID: obj.SaleTypeID.String(),
		Volume:     obj.Volume,
		UnitPrice:  obj.UnitPrice,
		Revenue:    obj.Revenue,
		MarginRate: obj.MarginRate,
		Margin:     obj.MarginAmount,
	}, nil
}

// GetByID returns one objective.
func (s *ObjectiveService) GetByID(ctx context.Context, objectiveID id.ID) (*Objective, error) {
	return s.repo.GetByID(ctx, objectiveID)
}

// List returns objectives matching the filter.
func (s *ObjectiveService) List(ctx context.Context, filter DocumentFilter) (domain.ListResult[*Objective], error) {
	return s.repo.List(ctx, filter)
}

// UpdateYear moves an objective to another year.
func (s *ObjectiveService) UpdateYear(ctx context.Context, objectiveID id.ID, year int) (*Objective, error) {
	obj, err := s.repo.GetByID(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	obj.Year = year
	obj.Touch()

	if err := obj.Validate(ctx); err != nil {
		return nil, err
	}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, obj)
	})
	if err != nil {
		return nil, fmt.Errorf("update objective year: %w", err)
	}
	return obj, nil
}

// Delete soft-deletes an objective.
func (s *ObjectiveService) Delete(ctx context.Context, objectiveID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, objectiveID, true)
	})
}

// applySnapshot maps a worksheet snapshot's string ids onto document fields.
func applySnapshot(
	target *pricing.Target,
	brandID *id.ID,
	modelID, versionID **id.ID,
	saleTypeID *id.ID,
	snap worksheet.SaveSnapshot,
) error {
	*target = snap.Target

	bid, err := id.Parse(snap.BrandID)
	if err != nil {
		return apperror.NewValidation("invalid brand id").
			WithDetail("field", "brandId").
			WithDetail("value", snap.BrandID)
	}
	*brandID = bid

	if *modelID, err = parseOptionalID(snap.ModelID, "modelId"); err != nil {
		return err
	}
	if *versionID, err = parseOptionalID(snap.VersionID, "versionId"); err != nil {
		return err
	}

	sid, err := id.Parse(snap.SaleTypeID)
	if err != nil {
		return apperror.NewValidation("invalid sale type id").
			WithDetail("field", "saleTypeId").
			WithDetail("value", snap.SaleTypeID)
	}
	*saleTypeID = sid
	return nil
}

func parseOptionalID(value, field string) (*id.ID, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := id.Parse(value)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").
			WithDetail("field", field).
			WithDetail("value", value)
	}
	return &parsed, nil
}

func optionalID(v *id.ID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
