package worksheet

import (
	"context"
	"sync"
	"time"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/pkg/logger"
)

// Manager opens, mutates, saves and closes worksheet sessions. It keeps one
// option cache per worksheet (so a session's dropdowns stay memoized across
// requests) and serializes mutations per worksheet: the form allows only one
// in-flight selection change at a time.
type Manager struct {
	store      Store
	reader     pricing.CatalogReader
	sales      RecordWriter
	objectives RecordWriter

	mu     sync.Mutex
	caches map[string]*pricing.Cache
	locks  map[string]*sync.Mutex

	saleTypesMu sync.RWMutex
	saleTypes   []pricing.SaleType
}

// ManagerConfig wires the manager's collaborators.
type ManagerConfig struct {
	Store      Store
	Reader     pricing.CatalogReader
	Sales      RecordWriter
	Objectives RecordWriter
}

// NewManager creates a worksheet manager.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		store:      cfg.Store,
		reader:     cfg.Reader,
		sales:      cfg.Sales,
		objectives: cfg.Objectives,
		caches:     make(map[string]*pricing.Cache),
		locks:      make(map[string]*sync.Mutex),
	}
}

// Open creates a new worksheet. When recordID is set the worksheet is seeded
// from the stored record and its ancestor option lists are pre-loaded.
func (m *Manager) Open(ctx context.Context, kind Kind, recordID string) (*State, OptionLists, error) {
	if !kind.Valid() {
		return nil, OptionLists{}, apperror.NewValidation("unknown worksheet kind").
			WithDetail("value", string(kind))
	}

	now := time.Now().UTC()
	state := &State{
		ID:        id.New().String(),
		Kind:      kind,
		RecordID:  recordID,
		Selection: pricing.Selection{Target: pricing.TargetVersion},
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctl := NewController(state, m.cacheFor(state.ID), m.loadSaleTypes(ctx))

	if recordID != "" {
		snap, err := m.writerFor(kind).Load(ctx, recordID)
		if err != nil {
			return nil, OptionLists{}, err
		}
		ctl.Seed(ctx, snap)
	}

	opts := ctl.Options(ctx)
	if err := m.store.Put(ctx, state); err != nil {
		return nil, OptionLists{}, apperror.NewInternal(err)
	}
	return state, opts, nil
}

// Get returns a worksheet's current state and option lists.
func (m *Manager) Get(ctx context.Context, worksheetID string) (*State, OptionLists, error) {
	unlock := m.lock(worksheetID)
	defer unlock()

	state, err := m.store.Get(ctx, worksheetID)
	if err != nil {
		return nil, OptionLists{}, err
	}
	ctl := NewController(state, m.cacheFor(worksheetID), m.loadSaleTypes(ctx))
	return state, ctl.Options(ctx), nil
}

// Mutation is one field change applied to a worksheet.
type Mutation struct {
	Field string `json:"field"`
	Value string `json:"value"`

	// Volume carries the parsed numeric value for volume mutations.
	Volume int64 `json:"-"`
}

// Worksheet field names accepted by Apply.
const (
	FieldTargetType = "targetType"
	FieldBrand      = "brandId"
	FieldModel      = "modelId"
	FieldVersion    = "versionId"
	FieldVolume     = "volume"
	FieldSaleType   = "saleTypeId"
)

// Apply runs one field transition and persists the resulting state.
func (m *Manager) Apply(ctx context.Context, worksheetID string, mut Mutation) (*State, OptionLists, error) {
	unlock := m.lock(worksheetID)
	defer unlock()

	state, err := m.store.Get(ctx, worksheetID)
	if err != nil {
		return nil, OptionLists{}, err
	}

	ctl := NewController(state, m.cacheFor(worksheetID), m.loadSaleTypes(ctx))

	switch mut.Field {
	case FieldTargetType:
		err = ctl.SetTargetType(ctx, pricing.Target(mut.Value))
	case FieldBrand:
		err = ctl.SetBrand(ctx, mut.Value)
	case FieldModel:
		err = ctl.SetModel(ctx, mut.Value)
	case FieldVersion:
		err = ctl.SetVersion(ctx, mut.Value)
	case FieldVolume:
		err = ctl.SetVolume(ctx, mut.Volume)
	case FieldSaleType:
		err = ctl.SetSaleType(ctx, mut.Value)
	default:
		err = apperror.NewValidation("unknown worksheet field").
			WithDetail("field", mut.Field)
	}
	if err != nil {
		return nil, OptionLists{}, err
	}

	opts := ctl.Options(ctx)
	if err := m.store.Put(ctx, state); err != nil {
		return nil, OptionLists{}, apperror.NewInternal(err)
	}
	return state, opts, nil
}

// Save validates the worksheet and hands the pricing snapshot to the
// persistence collaborator. On persistence failure the worksheet state is
// left intact so the user can retry.
func (m *Manager) Save(ctx context.Context, worksheetID string) (string, error) {
	unlock := m.lock(worksheetID)
	defer unlock()

	state, err := m.store.Get(ctx, worksheetID)
	if err != nil {
		return "", err
	}

	ctl := NewController(state, m.cacheFor(worksheetID), m.loadSaleTypes(ctx))
	if err := ctl.Validate(ctx); err != nil {
		return "", err
	}

	writer := m.writerFor(state.Kind)
	snap := ctl.Snapshot()

	if state.RecordID != "" {
		if err := writer.Update(ctx, state.RecordID, snap); err != nil {
			return "", err
		}
		return state.RecordID, nil
	}

	recordID, err := writer.Create(ctx, snap)
	if err != nil {
		return "", err
	}

	state.RecordID = recordID
	if err := m.store.Put(ctx, state); err != nil {
		logger.Warn(ctx, "failed to persist worksheet after save", "worksheetId", worksheetID, "error", err)
	}
	return recordID, nil
}

// Close discards a worksheet and its option cache.
func (m *Manager) Close(ctx context.Context, worksheetID string) error {
	unlock := m.lock(worksheetID)
	defer unlock()

	if err := m.store.Delete(ctx, worksheetID); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.caches, worksheetID)
	delete(m.locks, worksheetID)
	m.mu.Unlock()
	return nil
}

// cacheFor returns the worksheet's option cache, creating it on first use.
func (m *Manager) cacheFor(worksheetID string) *pricing.Cache {
	m.mu.Lock()
	defer m.mu.Unlock()

	cache, ok := m.caches[worksheetID]
	if !ok {
		cache = pricing.NewCache(m.reader)
		m.caches[worksheetID] = cache
	}
	return cache
}

// lock serializes mutations per worksheet id.
func (m *Manager) lock(worksheetID string) func() {
	m.mu.Lock()
	l, ok := m.locks[worksheetID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[worksheetID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// loadSaleTypes fetches the sale-type list once and memoizes it. The list is
// small and fully loaded; a failed load is retried on the next call.
func (m *Manager) loadSaleTypes(ctx context.Context) []pricing.SaleType {
	m.saleTypesMu.RLock()
	if m.saleTypes != nil {
		cached := m.saleTypes
		m.saleTypesMu.RUnlock()
		return cached
	}
	m.saleTypesMu.RUnlock()

	saleTypes, err := m.reader.ListSaleTypes(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load sale types", "error", err)
		return nil
	}

	m.saleTypesMu.Lock()
	m.saleTypes = saleTypes
	m.saleTypesMu.Unlock()
	return saleTypes
}

func (m *Manager) writerFor(kind Kind) RecordWriter {
	if kind == KindObjective {
		return m.objectives
	}
	return m.sales
}
