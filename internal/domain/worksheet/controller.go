package worksheet

import (
	"context"
	"time"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/domain/pricing"
)

// Controller drives one worksheet's field transitions. It owns no storage:
// the manager loads State, attaches the worksheet's option cache and sale
// types, runs one transition, and persists the State back.
//
// Transition rules:
//   - target level change clears brand, model, version and volume
//   - brand change clears model, version, volume and loads the brand's models
//   - model change clears version, volume and loads versions when the target
//     level is version
//   - version, volume and sale-type changes clear nothing
//
// Every transition ends with a synchronous recompute of the derived fields.
type Controller struct {
	state     *State
	cache     *pricing.Cache
	saleTypes []pricing.SaleType

	// Option lists committed for display after the last transition. A fetch
	// whose parent id no longer matches the active selection is cached but
	// not committed here.
	currentModels   []pricing.Node
	currentVersions []pricing.Node
}

// NewController attaches a controller to loaded state.
func NewController(state *State, cache *pricing.Cache, saleTypes []pricing.SaleType) *Controller {
	return &Controller{state: state, cache: cache, saleTypes: saleTypes}
}

// State returns the controller's state.
func (c *Controller) State() *State {
	return c.state
}

// SetTargetType switches the catalog level and resets the selection chain:
// the user re-selects from the top.
func (c *Controller) SetTargetType(ctx context.Context, target pricing.Target) error {
	if !target.Valid() {
		return apperror.NewValidation("unknown target level").
			WithDetail("field", "targetType").
			WithDetail("value", string(target))
	}

	c.state.Selection = pricing.Selection{Target: target}
	c.state.Volume = 0
	c.currentModels = nil
	c.currentVersions = nil
	c.recompute(ctx)
	return nil
}

// SetBrand selects a brand and loads its models through the cache.
func (c *Controller) SetBrand(ctx context.Context, brandID string) error {
	c.state.Selection.BrandID = brandID
	c.state.Selection.ModelID = ""
	c.state.Selection.VersionID = ""
	c.state.Volume = 0
	c.currentModels = nil
	c.currentVersions = nil

	if brandID != "" {
		models := c.cache.ModelsForBrand(ctx, brandID)
		// A result that arrives after the user has already moved on stays
		// cached for reuse but must not overwrite the displayed list.
		if c.state.Selection.BrandID == brandID {
			c.currentModels = models
		}
	}

	c.recompute(ctx)
	return nil
}

// SetModel selects a model; versions are only loaded when the worksheet
// targets the version level.
func (c *Controller) SetModel(ctx context.Context, modelID string) error {
	c.state.Selection.ModelID = modelID
	c.state.Selection.VersionID = ""
	c.state.Volume = 0
	c.currentVersions = nil

	if modelID != "" && c.state.Selection.Target == pricing.TargetVersion {
		versions := c.cache.VersionsForModel(ctx, modelID)
		if c.state.Selection.ModelID == modelID {
			c.currentVersions = versions
		}
	}

	c.recompute(ctx)
	return nil
}

// SetVersion selects a version. Nothing is cleared; derived fields refresh.
func (c *Controller) SetVersion(ctx context.Context, versionID string) error {
	c.state.Selection.VersionID = versionID
	c.recompute(ctx)
	return nil
}

// SetVolume updates the volume. Negative values are ignored, matching the
// form behavior of dropping invalid keystrokes instead of erroring.
func (c *Controller) SetVolume(ctx context.Context, volume int64) error {
	if volume < 0 {
		return nil
	}
	c.state.Volume = volume
	c.recompute(ctx)
	return nil
}

// SetSaleType switches the margin rate side. Nothing is cleared.
func (c *Controller) SetSaleType(ctx context.Context, saleTypeID string) error {
	c.state.SaleTypeID = saleTypeID
	c.recompute(ctx)
	return nil
}

// Seed populates the worksheet from an existing record and pre-loads the
// ancestor option lists so the first render shows resolved pricing instead
// of a flash of zeros. Cached lists are reused opportunistically.
func (c *Controller) Seed(ctx context.Context, snap SaveSnapshot) {
	c.state.Selection = pricing.Selection{
		Target:    snap.Target,
		BrandID:   snap.BrandID,
		ModelID:   snap.ModelID,
		VersionID: snap.VersionID,
	}
	c.state.Volume = snap.Volume
	c.state.SaleTypeID = snap.SaleTypeID

	if snap.BrandID != "" {
		c.currentModels = c.cache.ModelsForBrand(ctx, snap.BrandID)
	}
	if snap.ModelID != "" && snap.Target == pricing.TargetVersion {
		c.currentVersions = c.cache.VersionsForModel(ctx, snap.ModelID)
	}

	c.recompute(ctx)
}

// recompute resolves the active catalog node and rewrites all derived fields
// atomically. Unresolved targets yield zeros.
func (c *Controller) recompute(ctx context.Context) {
	node := pricing.Resolve(c.state.Selection, c.cache.Snapshot())
	c.state.Derived = pricing.Compute(node, c.saleType(), c.state.Volume)
	c.state.UpdatedAt = time.Now().UTC()
}

func (c *Controller) saleType() pricing.SaleType {
	for _, st := range c.saleTypes {
		if st.ID == c.state.SaleTypeID {
			return st
		}
	}
	return pricing.SaleType{}
}

// OptionLists holds everything the selectors need for rendering.
type OptionLists struct {
	Brands    []pricing.Node     `json:"brands"`
	Models    []pricing.Node     `json:"models"`
	Versions  []pricing.Node     `json:"versions"`
	SaleTypes []pricing.SaleType `json:"saleTypes"`
}

// Options returns the current option lists, loading whatever the selection
// needs and is not yet cached.
func (c *Controller) Options(ctx context.Context) OptionLists {
	opts := OptionLists{
		Brands:    c.cache.Brands(ctx),
		SaleTypes: c.saleTypes,
	}

	if c.currentModels == nil && c.state.Selection.BrandID != "" {
		c.currentModels = c.cache.ModelsForBrand(ctx, c.state.Selection.BrandID)
	}
	if c.currentVersions == nil &&
		c.state.Selection.ModelID != "" &&
		c.state.Selection.Target == pricing.TargetVersion {
		c.currentVersions = c.cache.VersionsForModel(ctx, c.state.Selection.ModelID)
	}

	opts.Models = c.currentModels
	opts.Versions = c.currentVersions
	return opts
}

// Validate checks the worksheet is complete enough to save. The target
// level's own id and every id above it must be set.
func (c *Controller) Validate(ctx context.Context) error {
	sel := c.state.Selection

	if !sel.Target.Valid() {
		return apperror.NewValidation("target level is required").
			WithDetail("field", "targetType")
	}
	if sel.BrandID == "" {
		return apperror.NewValidation("brand is required").
			WithDetail("field", "brandId")
	}
	if sel.Target != pricing.TargetBrand && sel.ModelID == "" {
		return apperror.NewValidation("model is required for this target level").
			WithDetail("field", "modelId")
	}
	if sel.Target == pricing.TargetVersion && sel.VersionID == "" {
		return apperror.NewValidation("version is required for this target level").
			WithDetail("field", "versionId")
	}
	if c.state.SaleTypeID == "" {
		return apperror.NewValidation("sale type is required").
			WithDetail("field", "saleTypeId")
	}
	if c.state.Volume <= 0 {
		return apperror.NewValidation("volume must be greater than zero").
			WithDetail("field", "volume")
	}
	return nil
}

// Snapshot builds the persistence payload with the derived fields frozen at
// save time.
func (c *Controller) Snapshot() SaveSnapshot {
	return SaveSnapshot{
		Kind:       c.state.Kind,
		Target:     c.state.Selection.Target,
		BrandID:    c.state.Selection.BrandID,
		ModelID:    c.state.Selection.ModelID,
		VersionID:  c.state.Selection.VersionID,
		SaleTypeID: c.state.SaleTypeID,
		Volume:     c.state.Volume,
		UnitPrice:  c.state.Derived.UnitPrice,
		Revenue:    c.state.Derived.Revenue,
		MarginRate: c.state.Derived.MarginRate,
		Margin:     c.state.Derived.MarginAmount,
	}
}
