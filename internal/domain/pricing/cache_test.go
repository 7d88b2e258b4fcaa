package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader counts fetches per parent id and can be told to fail.
type fakeReader struct {
	brands          []Node
	modelsByBrand   map[string][]Node
	versionsByModel map[string][]Node

	brandCalls   int
	modelCalls   map[string]int
	versionCalls map[string]int

	failModels bool
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		modelsByBrand:   map[string][]Node{},
		versionsByModel: map[string][]Node{},
		modelCalls:      map[string]int{},
		versionCalls:    map[string]int{},
	}
}

func (f *fakeReader) ListBrands(ctx context.Context) ([]Node, error) {
	f.brandCalls++
	return f.brands, nil
}

func (f *fakeReader) ListModelsByBrand(ctx context.Context, brandID string) ([]Node, error) {
	f.modelCalls[brandID]++
	if f.failModels {
		return nil, errors.New("legacy timeout")
	}
	return f.modelsByBrand[brandID], nil
}

func (f *fakeReader) ListVersionsByModel(ctx context.Context, modelID string) ([]Node, error) {
	f.versionCalls[modelID]++
	return f.versionsByModel[modelID], nil
}

func (f *fakeReader) ListSaleTypes(ctx context.Context) ([]SaleType, error) {
	return []SaleType{{ID: "st1", Name: "Direct"}, {ID: "st2", Name: "Intergroupe"}}, nil
}

func TestCache_ModelsFetchedOncePerBrand(t *testing.T) {
	reader := newFakeReader()
	reader.modelsByBrand["b1"] = []Node{node("m1", TargetModel, "b1")}
	cache := NewCache(reader)
	ctx := context.Background()

	first := cache.ModelsForBrand(ctx, "b1")
	second := cache.ModelsForBrand(ctx, "b1")

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, reader.modelCalls["b1"], "second request must be served from cache")
}

func TestCache_BrandsFetchedOnce(t *testing.T) {
	reader := newFakeReader()
	reader.brands = []Node{node("b1", TargetBrand, "")}
	cache := NewCache(reader)
	ctx := context.Background()

	cache.Brands(ctx)
	cache.Brands(ctx)

	assert.Equal(t, 1, reader.brandCalls)
}

func TestCache_FetchFailureResolvesEmptyAndIsRetried(t *testing.T) {
	reader := newFakeReader()
	reader.modelsByBrand["b1"] = []Node{node("m1", TargetModel, "b1")}
	reader.failModels = true
	cache := NewCache(reader)
	ctx := context.Background()

	assert.Empty(t, cache.ModelsForBrand(ctx, "b1"))
	assert.False(t, cache.HasModels("b1"), "failures must not be cached")

	reader.failModels = false
	assert.Len(t, cache.ModelsForBrand(ctx, "b1"), 1)
	assert.Equal(t, 2, reader.modelCalls["b1"])
}

func TestCache_EmptyParentID(t *testing.T) {
	reader := newFakeReader()
	cache := NewCache(reader)
	ctx := context.Background()

	assert.Nil(t, cache.ModelsForBrand(ctx, ""))
	assert.Nil(t, cache.VersionsForModel(ctx, ""))
	assert.Empty(t, reader.modelCalls)
}

func TestCache_ClearDropsEverything(t *testing.T) {
	reader := newFakeReader()
	reader.modelsByBrand["b1"] = []Node{node("m1", TargetModel, "b1")}
	cache := NewCache(reader)
	ctx := context.Background()

	cache.ModelsForBrand(ctx, "b1")
	require.True(t, cache.HasModels("b1"))

	cache.Clear()
	assert.False(t, cache.HasModels("b1"))

	cache.ModelsForBrand(ctx, "b1")
	assert.Equal(t, 2, reader.modelCalls["b1"])
}

func TestCache_SnapshotRecordsFetchOrder(t *testing.T) {
	reader := newFakeReader()
	reader.modelsByBrand["b1"] = []Node{node("m1", TargetModel, "b1")}
	reader.modelsByBrand["b2"] = []Node{node("m2", TargetModel, "b2")}
	cache := NewCache(reader)
	ctx := context.Background()

	cache.ModelsForBrand(ctx, "b1")
	cache.ModelsForBrand(ctx, "b2")
	cache.ModelsForBrand(ctx, "b1") // cache hit, must not reorder

	snap := cache.Snapshot()
	assert.Equal(t, []string{"b1", "b2"}, snap.ModelOrder)
	assert.Len(t, snap.ModelsByBrand, 2)
}
