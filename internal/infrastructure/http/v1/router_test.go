package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/domain/worksheet"
	"dealerdesk/internal/infrastructure/http/v1/dto"
	"dealerdesk/pkg/logger"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// fixtureReader serves a one-branch catalog: brand b1 -> model m1 -> v1.
type fixtureReader struct {
	t *testing.T
}

func (f *fixtureReader) ListBrands(ctx context.Context) ([]pricing.Node, error) {
	return []pricing.Node{{
		ID: "b1", Name: "Alpine", Level: pricing.TargetBrand, Active: true,
		Price:            dec(f.t, "200000"),
		MarginRateDirect: dec(f.t, "0.05"), MarginRateInterGroup: dec(f.t, "0.07"),
	}}, nil
}

func (f *fixtureReader) ListModelsByBrand(ctx context.Context, brandID string) ([]pricing.Node, error) {
	if brandID != "b1" {
		return nil, nil
	}
	return []pricing.Node{{
		ID: "m1", Name: "A110", Level: pricing.TargetModel, Active: true, ParentID: "b1",
		Price:            dec(f.t, "220000"),
		MarginRateDirect: dec(f.t, "0.04"), MarginRateInterGroup: dec(f.t, "0.06"),
	}}, nil
}

func (f *fixtureReader) ListVersionsByModel(ctx context.Context, modelID string) ([]pricing.Node, error) {
	if modelID != "m1" {
		return nil, nil
	}
	return []pricing.Node{{
		ID: "v1", Name: "A110 GT", Level: pricing.TargetVersion, Active: true,
		ParentID: "m1", BrandID: "b1",
		Price:            dec(f.t, "250000"),
		MarginRateDirect: dec(f.t, "0.05"), MarginRateInterGroup: dec(f.t, "0.08"),
	}}, nil
}

func (f *fixtureReader) ListSaleTypes(ctx context.Context) ([]pricing.SaleType, error) {
	return []pricing.SaleType{
		{ID: "st-direct", Name: "Direct"},
		{ID: "st-ig", Name: "Intergroupe"},
	}, nil
}

// fakeWriter records the snapshot handed over on save.
type fakeWriter struct {
	created []worksheet.SaveSnapshot
}

func (w *fakeWriter) Create(ctx context.Context, snap worksheet.SaveSnapshot) (string, error) {
	w.created = append(w.created, snap)
	return "rec-1", nil
}

func (w *fakeWriter) Update(ctx context.Context, recordID string, snap worksheet.SaveSnapshot) error {
	return errors.New("not used")
}

func (w *fakeWriter) Load(ctx context.Context, recordID string) (worksheet.SaveSnapshot, error) {
	return worksheet.SaveSnapshot{}, errors.New("not used")
}

func newTestRouter(t *testing.T) (http.Handler, *fakeWriter) {
	t.Helper()

	writer := &fakeWriter{}
	manager := worksheet.NewManager(worksheet.ManagerConfig{
		Store:      worksheet.NewMemoryStore(),
		Reader:     &fixtureReader{t: t},
		Sales:      writer,
		Objectives: writer,
	})

	router := NewRouter(RouterConfig{
		Logger:     logger.Default(),
		Worksheets: manager,
	})
	return router, writer
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeWorksheet(t *testing.T, rec *httptest.ResponseRecorder) dto.WorksheetResponse {
	t.Helper()
	var resp dto.WorksheetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWorksheetEndpoints_FullFlow(t *testing.T) {
	router, writer := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/worksheets", `{"kind":"sale"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	ws := decodeWorksheet(t, rec)
	require.NotEmpty(t, ws.ID)
	assert.Equal(t, "version", ws.TargetType)
	require.Len(t, ws.Options.Brands, 1)
	assert.Equal(t, "Alpine", ws.Options.Brands[0].Name)
	assert.Len(t, ws.Options.SaleTypes, 2)

	base := "/api/v1/worksheets/" + ws.ID

	rec = doJSON(t, router, http.MethodPost, base+"/mutations", `{"field":"brandId","value":"b1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ws = decodeWorksheet(t, rec)
	require.Len(t, ws.Options.Models, 1)

	rec = doJSON(t, router, http.MethodPost, base+"/mutations", `{"field":"modelId","value":"m1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/mutations", `{"field":"versionId","value":"v1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/mutations", `{"field":"saleTypeId","value":"st-ig"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/mutations", `{"field":"volume","volume":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ws = decodeWorksheet(t, rec)

	// 250000 x 2 at the inter-group rate 0.08
	assert.Equal(t, "250000.00", ws.Derived.UnitPrice)
	assert.Equal(t, "500000.00", ws.Derived.Revenue)
	assert.Equal(t, "8.00", ws.Derived.MarginRatePercent)
	assert.Equal(t, "40000.00", ws.Derived.MarginAmount)

	rec = doJSON(t, router, http.MethodPost, base+"/save", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved dto.IDResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "rec-1", saved.ID)

	require.Len(t, writer.created, 1)
	assert.Equal(t, pricing.TargetVersion, writer.created[0].Target)
	assert.Equal(t, int64(2), writer.created[0].Volume)

	rec = doJSON(t, router, http.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorksheetEndpoints_ValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/worksheets", `{"kind":"budget"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/worksheets", `{"kind":"sale"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	ws := decodeWorksheet(t, rec)

	// An incomplete worksheet cannot be saved
	rec = doJSON(t, router, http.MethodPost, "/api/v1/worksheets/"+ws.ID+"/save", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)

	// Unknown worksheet field is rejected
	rec = doJSON(t, router, http.MethodPost, "/api/v1/worksheets/"+ws.ID+"/mutations", `{"field":"color","value":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthLive(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
