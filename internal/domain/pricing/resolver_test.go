package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, level Target, parent string) Node {
	return Node{ID: id, Name: "node " + id, Level: level, ParentID: parent, Active: true}
}

func TestResolve_BrandLevel(t *testing.T) {
	snap := Snapshot{
		Brands: []Node{node("b1", TargetBrand, ""), node("b2", TargetBrand, "")},
	}

	got := Resolve(Selection{Target: TargetBrand, BrandID: "b2"}, snap)
	require.NotNil(t, got)
	assert.Equal(t, "b2", got.ID)

	assert.Nil(t, Resolve(Selection{Target: TargetBrand, BrandID: "b9"}, snap))
}

func TestResolve_MostSpecificIDWins(t *testing.T) {
	snap := Snapshot{
		Brands:          []Node{node("b1", TargetBrand, "")},
		ModelsByBrand:   map[string][]Node{"b1": {node("m1", TargetModel, "b1")}},
		ModelOrder:      []string{"b1"},
		VersionsByModel: map[string][]Node{"m1": {node("v1", TargetVersion, "m1")}},
		VersionOrder:    []string{"m1"},
	}

	sel := Selection{Target: TargetVersion, BrandID: "b1", ModelID: "m1", VersionID: "v1"}
	got := Resolve(sel, snap)
	require.NotNil(t, got)
	assert.Equal(t, "v1", got.ID)
	assert.Equal(t, TargetVersion, got.Level)
}

func TestResolve_NoCrossLevelFallback(t *testing.T) {
	// versionId set but unknown: the resolver must return nil rather than
	// falling back to the model or brand.
	snap := Snapshot{
		Brands:        []Node{node("b1", TargetBrand, "")},
		ModelsByBrand: map[string][]Node{"b1": {node("m1", TargetModel, "b1")}},
		ModelOrder:    []string{"b1"},
	}

	sel := Selection{Target: TargetVersion, BrandID: "b1", ModelID: "m1", VersionID: "missing"}
	assert.Nil(t, Resolve(sel, snap))
}

func TestResolve_FallsBackToOtherCachedLists(t *testing.T) {
	// A record opened for edit may reference a model whose brand is not the
	// currently selected one; the resolver must find it in lists cached from
	// prior navigation.
	snap := Snapshot{
		ModelsByBrand: map[string][]Node{
			"b1": {node("m1", TargetModel, "b1")},
			"b2": {node("m2", TargetModel, "b2")},
		},
		ModelOrder: []string{"b1", "b2"},
	}

	sel := Selection{Target: TargetModel, BrandID: "b1", ModelID: "m2"}
	got := Resolve(sel, snap)
	require.NotNil(t, got)
	assert.Equal(t, "m2", got.ID)
}

func TestResolve_DuplicateIDMostRecentlyFetchedWins(t *testing.T) {
	stale := node("m1", TargetModel, "b1")
	stale.Name = "stale"
	fresh := node("m1", TargetModel, "b2")
	fresh.Name = "fresh"

	snap := Snapshot{
		ModelsByBrand: map[string][]Node{
			"b1": {stale},
			"b2": {fresh},
		},
		ModelOrder: []string{"b1", "b2"},
	}

	// No current parent set: fallback order alone decides, newest first.
	got := Resolve(Selection{Target: TargetModel, ModelID: "m1"}, snap)
	require.NotNil(t, got)
	assert.Equal(t, "fresh", got.Name)
}

func TestResolve_CurrentParentListSearchedFirst(t *testing.T) {
	current := node("m1", TargetModel, "b1")
	current.Name = "current"
	other := node("m1", TargetModel, "b2")
	other.Name = "other"

	snap := Snapshot{
		ModelsByBrand: map[string][]Node{
			"b1": {current},
			"b2": {other},
		},
		// b2 fetched later, but the selection's own brand list has priority.
		ModelOrder: []string{"b1", "b2"},
	}

	got := Resolve(Selection{Target: TargetModel, BrandID: "b1", ModelID: "m1"}, snap)
	require.NotNil(t, got)
	assert.Equal(t, "current", got.Name)
}

func TestResolve_EmptySelection(t *testing.T) {
	assert.Nil(t, Resolve(Selection{Target: TargetBrand}, Snapshot{}))
}
