package legacy

import (
	"context"
	"fmt"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/catalogs/brand"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/domain/catalogs/saletype"
	"dealerdesk/internal/domain/catalogs/version"
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/infrastructure/storage/postgres"
	"dealerdesk/pkg/logger"
)

// Syncer pulls the catalog hierarchy out of the legacy backend and upserts
// it into the local store, keyed by legacy id. Runs from the sync command or
// on a schedule; the back office reads only the local copy afterwards.
type Syncer struct {
	reader    *Reader
	brands    *brand.Service
	models    *carmodel.Service
	versions  *version.Service
	saleTypes *saletype.Service
	audit     *postgres.AuditService
}

// NewSyncer creates a catalog syncer.
func NewSyncer(
	reader *Reader,
	brands *brand.Service,
	models *carmodel.Service,
	versions *version.Service,
	saleTypes *saletype.Service,
	audit *postgres.AuditService,
) *Syncer {
	return &Syncer{
		reader:    reader,
		brands:    brands,
		models:    models,
		versions:  versions,
		saleTypes: saleTypes,
		audit:     audit,
	}
}

// SyncStats summarizes one sync run.
type SyncStats struct {
	BrandsCreated    int `json:"brandsCreated"`
	BrandsUpdated    int `json:"brandsUpdated"`
	ModelsCreated    int `json:"modelsCreated"`
	ModelsUpdated    int `json:"modelsUpdated"`
	VersionsCreated  int `json:"versionsCreated"`
	VersionsUpdated  int `json:"versionsUpdated"`
	SaleTypesCreated int `json:"saleTypesCreated"`
	SaleTypesUpdated int `json:"saleTypesUpdated"`
}

// SyncAll mirrors brands, models, versions and sale types. Parents are
// synced before children so references resolve on first run.
func (s *Syncer) SyncAll(ctx context.Context) (SyncStats, error) {
	var stats SyncStats

	brandIDs, err := s.syncBrands(ctx, &stats)
	if err != nil {
		return stats, fmt.Errorf("sync brands: %w", err)
	}

	modelIDs, err := s.syncModels(ctx, brandIDs, &stats)
	if err != nil {
		return stats, fmt.Errorf("sync models: %w", err)
	}

	if err := s.syncVersions(ctx, brandIDs, modelIDs, &stats); err != nil {
		return stats, fmt.Errorf("sync versions: %w", err)
	}

	if err := s.syncSaleTypes(ctx, &stats); err != nil {
		return stats, fmt.Errorf("sync sale types: %w", err)
	}

	logger.Info(ctx, "catalog sync finished",
		"brandsCreated", stats.BrandsCreated, "brandsUpdated", stats.BrandsUpdated,
		"modelsCreated", stats.ModelsCreated, "modelsUpdated", stats.ModelsUpdated,
		"versionsCreated", stats.VersionsCreated, "versionsUpdated", stats.VersionsUpdated,
	)

	if s.audit != nil {
		if err := s.audit.LogChange(ctx, "catalog", id.Nil(), postgres.AuditActionSync, map[string]any{
			"stats": stats,
		}); err != nil {
			logger.Warn(ctx, "failed to write sync audit entry", "error", err)
		}
	}
	return stats, nil
}

// syncBrands returns a legacy id -> local id map for model resolution.
func (s *Syncer) syncBrands(ctx context.Context, stats *SyncStats) (map[string]id.ID, error) {
	nodes, err := s.reader.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	localIDs := make(map[string]id.ID, len(nodes))
	for _, node := range nodes {
		existing, err := s.brands.GetByLegacyID(ctx, node.ID)
		switch {
		case apperror.IsNotFound(err):
			b := brand.NewBrand("", node.Name)
			applyBrandNode(b, node)
			if err := s.brands.Create(ctx, b); err != nil {
				return nil, err
			}
			localIDs[node.ID] = b.ID
			stats.BrandsCreated++
		case err != nil:
			return nil, err
		default:
			localIDs[node.ID] = existing.ID
			if brandChanged(existing, node) {
				applyBrandNode(existing, node)
				if err := s.brands.Update(ctx, existing); err != nil {
					return nil, err
				}
				stats.BrandsUpdated++
			}
		}
	}
	return localIDs, nil
}

func (s *Syncer) syncModels(ctx context.Context, brandIDs map[string]id.ID, stats *SyncStats) (map[string]id.ID, error) {
	localIDs := make(map[string]id.ID)

	for legacyBrandID, localBrandID := range brandIDs {
		nodes, err := s.reader.ListModelsByBrand(ctx, legacyBrandID)
		if err != nil {
			return nil, err
		}
		for _, node := range nodes {
			existing, err := s.models.GetByLegacyID(ctx, node.ID)
			switch {
			case apperror.IsNotFound(err):
				m := carmodel.NewModel(deriveSyncCode("MOD", node), node.Name, localBrandID)
				applyModelNode(m, node, localBrandID)
				if err := s.models.Create(ctx, m); err != nil {
					return nil, err
				}
				localIDs[node.ID] = m.ID
				stats.ModelsCreated++
			case err != nil:
				return nil, err
			default:
				localIDs[node.ID] = existing.ID
				if modelChanged(existing, node) {
					applyModelNode(existing, node, localBrandID)
					if err := s.models.Update(ctx, existing); err != nil {
						return nil, err
					}
					stats.ModelsUpdated++
				}
			}
		}
	}
	return localIDs, nil
}

func (s *Syncer) syncVersions(ctx context.Context, brandIDs, modelIDs map[string]id.ID, stats *SyncStats) error {
	for legacyModelID, localModelID := range modelIDs {
		nodes, err := s.reader.ListVersionsByModel(ctx, legacyModelID)
		if err != nil {
			return err
		}
		for _, node := range nodes {
			var localBrandID *id.ID
			if bid, ok := brandIDs[node.BrandID]; ok {
				localBrandID = &bid
			}

			existing, err := s.versions.GetByLegacyID(ctx, node.ID)
			switch {
			case apperror.IsNotFound(err):
				v := version.NewVersion(deriveSyncCode("VER", node), node.Name, localModelID)
				applyVersionNode(v, node, localModelID, localBrandID)
				if err := s.versions.Create(ctx, v); err != nil {
					return err
				}
				stats.VersionsCreated++
			case err != nil:
				return err
			default:
				if versionChanged(existing, node) {
					applyVersionNode(existing, node, localModelID, localBrandID)
					if err := s.versions.Update(ctx, existing); err != nil {
						return err
					}
					stats.VersionsUpdated++
				}
			}
		}
	}
	return nil
}

func (s *Syncer) syncSaleTypes(ctx context.Context, stats *SyncStats) error {
	saleTypes, err := s.reader.ListSaleTypes(ctx)
	if err != nil {
		return err
	}
	for _, st := range saleTypes {
		existing, err := s.saleTypes.GetByLegacyID(ctx, st.ID)
		switch {
		case apperror.IsNotFound(err):
			local := saletype.NewSaleType("ST-"+st.ID, st.Name)
			local.LegacyID = st.ID
			if err := s.saleTypes.Create(ctx, local); err != nil {
				return err
			}
			stats.SaleTypesCreated++
		case err != nil:
			return err
		default:
			if existing.Name != st.Name {
				existing.Name = st.Name
				if err := s.saleTypes.Update(ctx, existing); err != nil {
					return err
				}
				stats.SaleTypesUpdated++
			}
		}
	}
	return nil
}

func deriveSyncCode(prefix string, node pricing.Node) string {
	return fmt.Sprintf("%s-%s", prefix, node.ID)
}

func applyBrandNode(b *brand.Brand, node pricing.Node) {
	b.Name = node.Name
	b.Active = node.Active
	b.LegacyID = node.ID
	b.AverageSalePrice = node.Price
	b.MarginRateDirect = node.MarginRateDirect
	b.MarginRateInterGroup = node.MarginRateInterGroup
}

func brandChanged(b *brand.Brand, node pricing.Node) bool {
	return b.Name != node.Name ||
		b.Active != node.Active ||
		!b.AverageSalePrice.Equal(node.Price) ||
		!b.MarginRateDirect.Equal(node.MarginRateDirect) ||
		!b.MarginRateInterGroup.Equal(node.MarginRateInterGroup)
}

func applyModelNode(m *carmodel.Model, node pricing.Node, brandID id.ID) {
	m.Name = node.Name
	m.Active = node.Active
	m.LegacyID = node.ID
	m.BrandID = brandID
	m.AverageSalePrice = node.Price
	m.MarginRateDirect = node.MarginRateDirect
	m.MarginRateInterGroup = node.MarginRateInterGroup
}

func modelChanged(m *carmodel.Model, node pricing.Node) bool {
	return m.Name != node.Name ||
		m.Active != node.Active ||
		!m.AverageSalePrice.Equal(node.Price) ||
		!m.MarginRateDirect.Equal(node.MarginRateDirect) ||
		!m.MarginRateInterGroup.Equal(node.MarginRateInterGroup)
}

func applyVersionNode(v *version.Version, node pricing.Node, modelID id.ID, brandID *id.ID) {
	v.Name = node.Name
	v.Active = node.Active
	v.LegacyID = node.ID
	v.ModelID = modelID
	v.BrandID = brandID
	v.SalePrice = node.Price
	v.MarginRateDirect = node.MarginRateDirect
	v.MarginRateInterGroup = node.MarginRateInterGroup
}

func versionChanged(v *version.Version, node pricing.Node) bool {
	return v.Name != node.Name ||
		v.Active != node.Active ||
		!v.SalePrice.Equal(node.Price) ||
		!v.MarginRateDirect.Equal(node.MarginRateDirect) ||
		!v.MarginRateInterGroup.Equal(node.MarginRateInterGroup)
}
