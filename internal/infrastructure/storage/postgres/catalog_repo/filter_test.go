package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/catalogs/carmodel"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

func testModelRepo() *BaseCatalogRepo[*carmodel.Model] {
	return NewBaseCatalogRepo(
		nil,
		"cat_models",
		postgres.ExtractDBColumns[carmodel.Model](),
		func() *carmodel.Model { return &carmodel.Model{} },
	)
}

func TestListQuery_DefaultExcludesDeleted(t *testing.T) {
	sql, args, err := testModelRepo().listQuery(domain.ListFilter{}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM cat_models")
	assert.Contains(t, sql, "deletion_mark = $1")
	assert.Equal(t, []any{false}, args)
}

func TestListQuery_SearchMatchesNameAndCode(t *testing.T) {
	sql, args, err := testModelRepo().listQuery(domain.ListFilter{Search: "a110"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "name ILIKE")
	assert.Contains(t, sql, "code ILIKE")
	assert.Contains(t, args, "%a110%")
}

func TestListQuery_ParentFiltersByBrand(t *testing.T) {
	brandID := id.New()
	filter := domain.ListFilter{ParentID: &brandID}

	sql, args, err := testModelRepo().listQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "brand_id = $2")
	assert.Contains(t, args, brandID)
}

func TestListQuery_SelectorFilterIsActiveOnly(t *testing.T) {
	sql, args, err := testModelRepo().listQuery(domain.SelectorFilter(1000)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "active = $2")
	assert.Equal(t, []any{false, true}, args)
}

func TestParseOrderBy(t *testing.T) {
	repo := testModelRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "name ASC"},
		{in: "name", want: "name ASC"},
		{in: "-name", want: "name DESC"},
		{in: "code", want: "code ASC"},
		{in: "name; DROP TABLE cat_models", wantErr: true},
		{in: "unknown_column", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParentColumn_PicksModelIDForVersions(t *testing.T) {
	repo := NewBaseCatalogRepo(
		nil,
		"cat_versions",
		[]string{"id", "code", "name", "model_id", "brand_id"},
		func() *carmodel.Model { return &carmodel.Model{} },
	)
	assert.Equal(t, "model_id", repo.parentColumn())
	assert.Equal(t, "brand_id", testModelRepo().parentColumn())
}
