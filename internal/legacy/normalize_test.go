package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerdesk/internal/domain/pricing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeBrand_FrenchFieldNames(t *testing.T) {
	node := NormalizeBrand(decode(t, `{
		"id": 12,
		"nom": "Alpine",
		"actif": true,
		"prixDeVente": "200000",
		"tmDirect": 0.05,
		"tmInterGroupe": 0.07
	}`))

	assert.Equal(t, "12", node.ID)
	assert.Equal(t, "Alpine", node.Name)
	assert.Equal(t, pricing.TargetBrand, node.Level)
	assert.True(t, node.Active)
	assert.Equal(t, "200000", node.Price.String())
	assert.Equal(t, "0.05", node.MarginRateDirect.String())
	assert.Equal(t, "0.07", node.MarginRateInterGroup.String())
}

func TestNormalizeBrand_EnglishFieldNamesPreferred(t *testing.T) {
	node := NormalizeBrand(decode(t, `{
		"id": "b1",
		"name": "Alpine",
		"nom": "ignored",
		"averageSalePrice": 200000,
		"marginRateDirect": 0.05
	}`))

	assert.Equal(t, "Alpine", node.Name)
	assert.Equal(t, "200000", node.Price.String())
}

func TestNormalizeBrand_NonObjectYieldsZeroNode(t *testing.T) {
	for _, raw := range []any{nil, "text", 42.0, []any{"a"}} {
		node := NormalizeBrand(raw)
		assert.Empty(t, node.ID)
		assert.True(t, node.Price.IsZero())
		assert.Equal(t, pricing.TargetBrand, node.Level)
	}
}

func TestNormalizeModel_ParentFallsBackToRequestBrand(t *testing.T) {
	node := NormalizeModel(decode(t, `{"id": 3, "libelle": "A110"}`), "b1")
	assert.Equal(t, "b1", node.ParentID)
	assert.Equal(t, "b1", node.BrandID)

	node = NormalizeModel(decode(t, `{"id": 3, "nom": "A110", "idMarque": 7}`), "b1")
	assert.Equal(t, "7", node.ParentID)
}

func TestNormalizeVersion_ChainThroughModel(t *testing.T) {
	node := NormalizeVersion(decode(t, `{
		"id": "v1",
		"nom": "A110 GT",
		"idModele": "m1",
		"idMarque": "b1",
		"prixDeVente": 250000,
		"tmInterGroupe": 0.08
	}`), "")

	assert.Equal(t, "m1", node.ParentID)
	assert.Equal(t, "b1", node.BrandID)
	assert.Equal(t, "250000", node.Price.String())
	assert.Equal(t, "0.08", node.MarginRateInterGroup.String())
}

func TestToNumber_Coercions(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float", 1.5, 0, 1.5},
		{"string", "42", 0, 42},
		{"string with comma decimal", "0,05", 0, 0.05},
		{"padded string", "  7 ", 0, 7},
		{"empty string", "", 9, 9},
		{"garbage", "abc", 9, 9},
		{"nil", nil, 9, 9},
		{"bool", true, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toNumber(tt.in, tt.def))
		})
	}
}

func TestToNullableNumber(t *testing.T) {
	assert.Nil(t, toNullableNumber(nil))
	assert.Nil(t, toNullableNumber(""))
	assert.Nil(t, toNullableNumber("abc"))

	v := toNullableNumber("12")
	require.NotNil(t, v)
	assert.Equal(t, 12.0, *v)

	zero := toNullableNumber(0.0)
	require.NotNil(t, zero)
	assert.Equal(t, 0.0, *zero)
}

func TestBranchID_AbsentStringOrNumber(t *testing.T) {
	assert.Nil(t, BranchID(decode(t, `{"id": 1}`)))

	v := BranchID(decode(t, `{"idFiliale": "4"}`))
	require.NotNil(t, v)
	assert.Equal(t, 4.0, *v)

	v = BranchID(decode(t, `{"idFiliale": 4}`))
	require.NotNil(t, v)
	assert.Equal(t, 4.0, *v)
}

func TestNormalizePage_DoubleNestedWithPaginationBlock(t *testing.T) {
	items, page := NormalizePage(decode(t, `{
		"data": {
			"data": [{"id": 1}, {"id": 2}, {"id": 3}],
			"pagination": {"totalCount": 30, "page": 2, "pageSize": 3}
		}
	}`), 1, 1000)

	assert.Len(t, items, 3)
	assert.Equal(t, 30, page.TotalRecords)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, 10, page.TotalPages)
}

func TestNormalizePage_BareArray(t *testing.T) {
	items, page := NormalizePage(decode(t, `[{"id": 1}, {"id": 2}, {"id": 3}]`), 1, 1000)

	assert.Len(t, items, 3)
	assert.Equal(t, 3, page.TotalRecords)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}

func TestNormalizePage_SingleNestingCountersOnWrapper(t *testing.T) {
	items, page := NormalizePage(decode(t, `{
		"data": [{"id": 1}, {"id": 2}],
		"totalRecords": 7,
		"page": 1,
		"pageSize": 2
	}`), 1, 1000)

	assert.Len(t, items, 2)
	assert.Equal(t, 7, page.TotalRecords)
	assert.Equal(t, 4, page.TotalPages, "totalPages falls back to ceil(total/pageSize)")
}

func TestNormalizePage_TotalRecordsPreferredOverArrayLength(t *testing.T) {
	_, page := NormalizePage(decode(t, `{
		"data": [{"id": 1}],
		"totalCount": 100,
		"pageSize": 10
	}`), 1, 1000)

	assert.Equal(t, 100, page.TotalRecords)
	assert.Equal(t, 10, page.TotalPages)
}

func TestNormalizePage_UnrecognizablePayload(t *testing.T) {
	items, page := NormalizePage("not json at all", 1, 1000)
	assert.Empty(t, items)
	assert.Equal(t, 0, page.TotalRecords)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1000, page.PageSize)

	items, page = NormalizePage(nil, 0, 0)
	assert.Empty(t, items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.PageSize)
}
