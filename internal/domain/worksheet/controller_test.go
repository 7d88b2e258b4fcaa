package worksheet

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// catalogFixture is a counting pricing.CatalogReader over a small two-level
// catalog: brand b1 -> model m1 -> version v1.
type catalogFixture struct {
	modelCalls   map[string]int
	versionCalls map[string]int
	failModels   bool
}

func newFixture() *catalogFixture {
	return &catalogFixture{
		modelCalls:   map[string]int{},
		versionCalls: map[string]int{},
	}
}

func (f *catalogFixture) ListBrands(ctx context.Context) ([]pricing.Node, error) {
	return []pricing.Node{{
		ID:                   "b1",
		Name:                 "Alpine",
		Level:                pricing.TargetBrand,
		Active:               true,
		Price:                dec("200000"),
		MarginRateDirect:     dec("0.05"),
		MarginRateInterGroup: dec("0.07"),
	}}, nil
}

func (f *catalogFixture) ListModelsByBrand(ctx context.Context, brandID string) ([]pricing.Node, error) {
	f.modelCalls[brandID]++
	if f.failModels {
		return nil, errors.New("legacy unavailable")
	}
	if brandID != "b1" {
		return nil, nil
	}
	return []pricing.Node{{
		ID:                   "m1",
		Name:                 "A110",
		Level:                pricing.TargetModel,
		Active:               true,
		ParentID:             "b1",
		Price:                dec("220000"),
		MarginRateDirect:     dec("0.04"),
		MarginRateInterGroup: dec("0.06"),
	}}, nil
}

func (f *catalogFixture) ListVersionsByModel(ctx context.Context, modelID string) ([]pricing.Node, error) {
	f.versionCalls[modelID]++
	if modelID != "m1" {
		return nil, nil
	}
	return []pricing.Node{{
		ID:                   "v1",
		Name:                 "A110 GT",
		Level:                pricing.TargetVersion,
		Active:               true,
		ParentID:             "m1",
		BrandID:              "b1",
		Price:                dec("250000"),
		MarginRateDirect:     dec("0.05"),
		MarginRateInterGroup: dec("0.08"),
	}}, nil
}

func (f *catalogFixture) ListSaleTypes(ctx context.Context) ([]pricing.SaleType, error) {
	return []pricing.SaleType{
		{ID: "st-direct", Name: "Direct"},
		{ID: "st-ig", Name: "Intergroupe"},
	}, nil
}

func newTestController(t *testing.T, target pricing.Target) (*Controller, *catalogFixture) {
	t.Helper()
	fixture := newFixture()
	saleTypes, err := fixture.ListSaleTypes(context.Background())
	require.NoError(t, err)

	state := &State{
		ID:        "ws-test",
		Kind:      KindSale,
		Selection: pricing.Selection{Target: target},
	}
	return NewController(state, pricing.NewCache(fixture), saleTypes), fixture
}

func TestController_TargetTypeChangeClearsSelectionChain(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	require.NoError(t, ctl.SetVersion(ctx, "v1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-direct"))
	require.NoError(t, ctl.SetVolume(ctx, 4))

	require.NoError(t, ctl.SetTargetType(ctx, pricing.TargetBrand))

	state := ctl.State()
	assert.Equal(t, pricing.TargetBrand, state.Selection.Target)
	assert.Empty(t, state.Selection.BrandID)
	assert.Empty(t, state.Selection.ModelID)
	assert.Empty(t, state.Selection.VersionID)
	assert.EqualValues(t, 0, state.Volume)
	assert.True(t, state.Derived.UnitPrice.IsZero())
	assert.True(t, state.Derived.Revenue.IsZero())
	assert.True(t, state.Derived.MarginAmount.IsZero())
}

func TestController_InvalidTargetTypeRejected(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetVersion)

	err := ctl.SetTargetType(context.Background(), pricing.Target("camion"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestController_BrandChangeClearsDownstreamAndFetchesOnce(t *testing.T) {
	ctl, fixture := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	require.NoError(t, ctl.SetVersion(ctx, "v1"))

	// Re-selecting the brand clears model and version again.
	require.NoError(t, ctl.SetBrand(ctx, "b1"))

	state := ctl.State()
	assert.Empty(t, state.Selection.ModelID)
	assert.Empty(t, state.Selection.VersionID)
	assert.EqualValues(t, 0, state.Volume)

	// The second selection of the same brand is served from cache.
	assert.Equal(t, 1, fixture.modelCalls["b1"])
}

func TestController_ModelChangeFetchesVersionsOnlyForVersionTarget(t *testing.T) {
	ctx := context.Background()

	ctl, fixture := newTestController(t, pricing.TargetVersion)
	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	assert.Equal(t, 1, fixture.versionCalls["m1"])

	ctl, fixture = newTestController(t, pricing.TargetModel)
	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	assert.Equal(t, 0, fixture.versionCalls["m1"], "model-level target must not load versions")
}

func TestController_BrandLevelPricing(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetBrand)
	ctx := context.Background()

	// Brand option list has to be loaded for the resolver to see b1.
	ctl.Options(ctx)

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-direct"))
	require.NoError(t, ctl.SetVolume(ctx, 3))

	disp := ctl.State().Derived.Display()
	assert.Equal(t, "200000.00", disp.UnitPrice)
	assert.Equal(t, "600000.00", disp.Revenue)
	assert.Equal(t, "30000.00", disp.MarginAmount)
}

func TestController_VersionLevelInterGroupPricing(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	require.NoError(t, ctl.SetVersion(ctx, "v1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-ig"))
	require.NoError(t, ctl.SetVolume(ctx, 2))

	disp := ctl.State().Derived.Display()
	assert.Equal(t, "250000.00", disp.UnitPrice)
	assert.Equal(t, "500000.00", disp.Revenue)
	assert.Equal(t, "40000.00", disp.MarginAmount)
	assert.Equal(t, "8.00", disp.MarginRatePercent)
}

func TestController_SwitchingTargetBackToBrandUsesBrandPricing(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	ctl.Options(ctx)
	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	require.NoError(t, ctl.SetVersion(ctx, "v1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-ig"))
	require.NoError(t, ctl.SetVolume(ctx, 2))
	require.Equal(t, "500000.00", ctl.State().Derived.Display().Revenue)

	// Back to brand level: derived values must come from the brand's own
	// aggregate price, not linger from the version.
	require.NoError(t, ctl.SetTargetType(ctx, pricing.TargetBrand))
	assert.Equal(t, "0", ctl.State().Derived.Display().Revenue)

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-direct"))
	require.NoError(t, ctl.SetVolume(ctx, 3))

	disp := ctl.State().Derived.Display()
	assert.Equal(t, "200000.00", disp.UnitPrice)
	assert.Equal(t, "600000.00", disp.Revenue)
	assert.Equal(t, "30000.00", disp.MarginAmount)
}

func TestController_NegativeVolumeIgnored(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	require.NoError(t, ctl.SetVersion(ctx, "v1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-direct"))
	require.NoError(t, ctl.SetVolume(ctx, 5))

	require.NoError(t, ctl.SetVolume(ctx, -3))
	assert.EqualValues(t, 5, ctl.State().Volume)
}

func TestController_FetchFailureLeavesFormUsable(t *testing.T) {
	ctl, fixture := newTestController(t, pricing.TargetVersion)
	fixture.failModels = true
	ctx := context.Background()

	require.NoError(t, ctl.SetBrand(ctx, "b1"))

	opts := ctl.Options(ctx)
	assert.Empty(t, opts.Models)
	assert.True(t, ctl.State().Derived.UnitPrice.IsZero())
}

func TestController_SeedPreloadsAncestorLists(t *testing.T) {
	ctl, fixture := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	ctl.Seed(ctx, SaveSnapshot{
		Target:     pricing.TargetVersion,
		BrandID:    "b1",
		ModelID:    "m1",
		VersionID:  "v1",
		SaleTypeID: "st-ig",
		Volume:     2,
	})

	assert.Equal(t, 1, fixture.modelCalls["b1"])
	assert.Equal(t, 1, fixture.versionCalls["m1"])

	// Derived values resolve immediately, no flash of zeros.
	disp := ctl.State().Derived.Display()
	assert.Equal(t, "500000.00", disp.Revenue)
	assert.Equal(t, "40000.00", disp.MarginAmount)
}

func TestController_ValidateRequiresTargetChain(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		prepare   func(ctl *Controller)
		wantField string
	}{
		{
			name:      "missing brand",
			prepare:   func(ctl *Controller) {},
			wantField: "brandId",
		},
		{
			name: "missing model for version target",
			prepare: func(ctl *Controller) {
				_ = ctl.SetBrand(ctx, "b1")
			},
			wantField: "modelId",
		},
		{
			name: "missing version for version target",
			prepare: func(ctl *Controller) {
				_ = ctl.SetBrand(ctx, "b1")
				_ = ctl.SetModel(ctx, "m1")
			},
			wantField: "versionId",
		},
		{
			name: "missing sale type",
			prepare: func(ctl *Controller) {
				_ = ctl.SetBrand(ctx, "b1")
				_ = ctl.SetModel(ctx, "m1")
				_ = ctl.SetVersion(ctx, "v1")
			},
			wantField: "saleTypeId",
		},
		{
			name: "missing volume",
			prepare: func(ctl *Controller) {
				_ = ctl.SetBrand(ctx, "b1")
				_ = ctl.SetModel(ctx, "m1")
				_ = ctl.SetVersion(ctx, "v1")
				_ = ctl.SetSaleType(ctx, "st-direct")
			},
			wantField: "volume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl, _ := newTestController(t, pricing.TargetVersion)
			tt.prepare(ctl)

			err := ctl.Validate(ctx)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Details["field"])
		})
	}
}

func TestController_SnapshotFreezesDerivedValues(t *testing.T) {
	ctl, _ := newTestController(t, pricing.TargetVersion)
	ctx := context.Background()

	require.NoError(t, ctl.SetBrand(ctx, "b1"))
	require.NoError(t, ctl.SetModel(ctx, "m1"))
	require.NoError(t, ctl.SetVersion(ctx, "v1"))
	require.NoError(t, ctl.SetSaleType(ctx, "st-ig"))
	require.NoError(t, ctl.SetVolume(ctx, 2))
	require.NoError(t, ctl.Validate(ctx))

	snap := ctl.Snapshot()
	assert.Equal(t, pricing.TargetVersion, snap.Target)
	assert.Equal(t, "v1", snap.VersionID)
	assert.True(t, snap.UnitPrice.Equal(dec("250000")))
	assert.True(t, snap.Revenue.Equal(dec("500000")))
	assert.True(t, snap.Margin.Equal(dec("40000")))
	assert.EqualValues(t, 2, snap.Volume)
}
