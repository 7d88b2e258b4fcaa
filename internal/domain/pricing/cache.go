package pricing

import (
	"context"
	"sync"

	"dealerdesk/pkg/logger"
)

// CatalogReader is the collaborator the cache fetches option lists through.
// Implementations read either the local store or the legacy DMS API; both
// return canonical nodes and always request selector-sized pages (selectors
// are not separately paginated).
type CatalogReader interface {
	ListBrands(ctx context.Context) ([]Node, error)
	ListModelsByBrand(ctx context.Context, brandID string) ([]Node, error)
	ListVersionsByModel(ctx context.Context, modelID string) ([]Node, error)
	ListSaleTypes(ctx context.Context) ([]SaleType, error)
}

// Cache memoizes option lists per parent id so revisiting a previously
// selected brand or model never refetches. It is constructed explicitly and
// injected into each worksheet, so tests get a fresh cache instead of shared
// module state.
//
// Entries are append-only and never invalidated automatically; the catalog
// edit flow clears the whole cache by reloading the owning feature. A fetch
// failure logs and resolves to an empty list so the form stays usable with
// empty dropdowns. Failures are not cached and will be retried on the next
// request.
type Cache struct {
	reader CatalogReader

	mu              sync.RWMutex
	brands          []Node
	brandsLoaded    bool
	modelsByBrand   map[string][]Node
	versionsByModel map[string][]Node

	// Fetch order per level, most recent last. The resolver walks these in
	// reverse so the most recently fetched list wins when the same id shows
	// up in two cached lists.
	modelOrder   []string
	versionOrder []string
}

// NewCache creates an empty cache over the given reader.
func NewCache(reader CatalogReader) *Cache {
	return &Cache{
		reader:          reader,
		modelsByBrand:   make(map[string][]Node),
		versionsByModel: make(map[string][]Node),
	}
}

// Brands returns the brand list, fetching it on first use.
func (c *Cache) Brands(ctx context.Context) []Node {
	c.mu.RLock()
	if c.brandsLoaded {
		cached := c.brands
		c.mu.RUnlock()
		return cached
	}
	c.mu.RUnlock()

	nodes, err := c.reader.ListBrands(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load brands", "error", err)
		return nil
	}

	c.mu.Lock()
	c.brands = nodes
	c.brandsLoaded = true
	c.mu.Unlock()
	return nodes
}

// ModelsForBrand returns the brand's models, fetching on first request for
// that brand id and serving from cache afterwards.
func (c *Cache) ModelsForBrand(ctx context.Context, brandID string) []Node {
	if brandID == "" {
		return nil
	}

	c.mu.RLock()
	if cached, ok := c.modelsByBrand[brandID]; ok {
		c.mu.RUnlock()
		return cached
	}
	c.mu.RUnlock()

	nodes, err := c.reader.ListModelsByBrand(ctx, brandID)
	if err != nil {
		logger.Error(ctx, "failed to load models", "brandId", brandID, "error", err)
		return nil
	}

	c.mu.Lock()
	if _, ok := c.modelsByBrand[brandID]; !ok {
		c.modelOrder = append(c.modelOrder, brandID)
	}
	c.modelsByBrand[brandID] = nodes
	c.mu.Unlock()
	return nodes
}

// VersionsForModel returns the model's versions, fetching on first request
// for that model id and serving from cache afterwards.
func (c *Cache) VersionsForModel(ctx context.Context, modelID string) []Node {
	if modelID == "" {
		return nil
	}

	c.mu.RLock()
	if cached, ok := c.versionsByModel[modelID]; ok {
		c.mu.RUnlock()
		return cached
	}
	c.mu.RUnlock()

	nodes, err := c.reader.ListVersionsByModel(ctx, modelID)
	if err != nil {
		logger.Error(ctx, "failed to load versions", "modelId", modelID, "error", err)
		return nil
	}

	c.mu.Lock()
	if _, ok := c.versionsByModel[modelID]; !ok {
		c.versionOrder = append(c.versionOrder, modelID)
	}
	c.versionsByModel[modelID] = nodes
	c.mu.Unlock()
	return nodes
}

// HasModels reports whether the brand's model list is already cached.
func (c *Cache) HasModels(brandID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.modelsByBrand[brandID]
	return ok
}

// HasVersions reports whether the model's version list is already cached.
func (c *Cache) HasVersions(modelID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.versionsByModel[modelID]
	return ok
}

// Clear drops every cached list. Used by the catalog edit flow after
// activate/deactivate or edits, which reload the owning feature.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brands = nil
	c.brandsLoaded = false
	c.modelsByBrand = make(map[string][]Node)
	c.versionsByModel = make(map[string][]Node)
	c.modelOrder = nil
	c.versionOrder = nil
}

// Snapshot is an immutable view of everything currently cached, consumed by
// the target resolver.
type Snapshot struct {
	Brands          []Node
	ModelsByBrand   map[string][]Node
	ModelOrder      []string
	VersionsByModel map[string][]Node
	VersionOrder    []string
}

// Snapshot copies the cache's lookup state. The node slices are shared, not
// copied; callers must treat them as read-only.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	models := make(map[string][]Node, len(c.modelsByBrand))
	for k, v := range c.modelsByBrand {
		models[k] = v
	}
	versions := make(map[string][]Node, len(c.versionsByModel))
	for k, v := range c.versionsByModel {
		versions[k] = v
	}

	return Snapshot{
		Brands:          c.brands,
		ModelsByBrand:   models,
		ModelOrder:      append([]string(nil), c.modelOrder...),
		VersionsByModel: versions,
		VersionOrder:    append([]string(nil), c.versionOrder...),
	}
}
