package legacy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerdesk/internal/core/apperror"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		MaxRetries: 2,
	})
	return client, srv
}

func TestClient_ListBrandsSendsAPIKeyAndPageParams(t *testing.T) {
	var gotKey, gotPageSize string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotPageSize = r.URL.Query().Get("pageSize")
		fmt.Fprint(w, `{"data": [{"id": 1, "nom": "Alpine"}], "totalRecords": 1}`)
	}))
	defer srv.Close()

	page, err := client.ListBrands(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "1000", gotPageSize)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Pagination.TotalRecords)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"data": [], "totalRecords": 0}`)
	}))
	defer srv.Close()

	_, err := client.ListBrands(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.ListBrands(context.Background(), 1, 1000)
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUpstream, appErr.Code)
}

func TestClient_ModelFilterCarriesBrandID(t *testing.T) {
	var gotBrand string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBrand = r.URL.Query().Get("idMarque")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, err := client.ListModelsByBrand(context.Background(), "b1", 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, "b1", gotBrand)
}

func TestReader_DrainsAllPagesAndSkipsInactive(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{
				"data": {
					"data": [{"id": 1, "nom": "Alpine"}, {"id": 2, "nom": "Dacia", "actif": false}],
					"pagination": {"totalCount": 3, "totalPages": 2, "page": 1, "pageSize": 2}
				}
			}`)
		default:
			fmt.Fprint(w, `{
				"data": {
					"data": [{"id": 3, "nom": "Renault"}],
					"pagination": {"totalCount": 3, "totalPages": 2, "page": 2, "pageSize": 2}
				}
			}`)
		}
	}))
	defer srv.Close()

	reader := NewReader(client)
	brands, err := reader.ListBrands(context.Background())
	require.NoError(t, err)

	require.Len(t, brands, 2, "inactive entries are dropped")
	assert.Equal(t, "1", brands[0].ID)
	assert.Equal(t, "3", brands[1].ID)
}

func TestReader_SaleTypes(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": 1, "libelle": "Direct"}, {"id": 2, "libelle": "Intergroupe"}], "totalRecords": 2}`)
	}))
	defer srv.Close()

	saleTypes, err := NewReader(client).ListSaleTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, saleTypes, 2)
	assert.Equal(t, "Intergroupe", saleTypes[1].Name)
}
