package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"dealerdesk/internal/domain/catalogs/brand"
)

func TestExtractDBColumns_FollowsEmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[brand.Brand]()

	// Embedded entity.Catalog and entity.BaseEntity columns
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "legacy_id")

	// Brand's own columns
	assert.Contains(t, cols, "average_sale_price")
	assert.Contains(t, cols, "margin_rate_direct")
	assert.Contains(t, cols, "margin_rate_inter_group")
}

func TestStructToMap_UsesDBTags(t *testing.T) {
	b := brand.NewBrand("ALPINE", "Alpine")
	b.AverageSalePrice = decimal.NewFromInt(200000)

	m := StructToMap(b)

	assert.Equal(t, "ALPINE", m["code"])
	assert.Equal(t, "Alpine", m["name"])
	assert.Equal(t, b.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, b.AverageSalePrice, m["average_sale_price"])
	assert.NotContains(t, m, "nonexistent")
}

func TestStructToMap_NonStructReturnsNil(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("text"))
}
