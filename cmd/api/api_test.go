package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/config"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

func newTestApp(t *testing.T, path string) http.Handler {
	t.Helper()
	cfg := config.DB{Driver: config.DriverSQLite, Path: path}
	m := db.NewManager(cfg, logger.Nop())
	t.Cleanup(func() { _ = m.Dispose() })

	app := &application{
		config:  apiConfig{addr: ":0", maxUploadSize: 8 << 20, db: cfg},
		console: siciap.NewConsole(m, logger.Nop()),
		log:     logger.Nop(),
	}
	return app.mount()
}

func stockWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Código", "Producto", "Stock Disponible", "DMP"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"A1", "Amoxicilina", 2, 10}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"B2", "Ibuprofeno", 8, 10}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"C3", "Paracetamol", 5, 0}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func upload(t *testing.T, h http.Handler, dataset, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/ingestion/"+dataset, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		rec := do(newTestApp(t, ":memory:"), http.MethodGet, "/v1/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decode[map[string]string](t, rec)["database"])
	})

	t.Run("database unreachable", func(t *testing.T) {
		rec := do(newTestApp(t, "/nonexistent/dir/siciap.db"), http.MethodGet, "/v1/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "unreachable", decode[map[string]string](t, rec)["database"])
	})
}

func TestIngestionAndStock(t *testing.T) {
	h := newTestApp(t, ":memory:")

	rec := upload(t, h, "stock", "stock.xlsx", stockWorkbook(t))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	loaded := decode[IngestionResponse](t, rec)
	assert.True(t, loaded.Success)
	assert.Equal(t, int64(3), loaded.Data.Rows)
	assert.NotEmpty(t, loaded.Data.RunID)

	rec = do(h, http.MethodGet, "/v1/stock?band="+url.QueryEscape(store.BandAttention), "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[StockResponse](t, rec).Data
	require.Len(t, items, 1)
	assert.Equal(t, "A1", items[0].Code)

	rec = do(h, http.MethodGet, "/v1/stock/bands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bands := map[string]int64{}
	for _, b := range decode[StockBandsResponse](t, rec).Data {
		bands[b.Band] = b.Count
	}
	assert.Equal(t, int64(1), bands[store.BandNoDMP])
	assert.Equal(t, int64(1), bands[store.BandAttention])
	assert.Equal(t, int64(1), bands[store.BandOptimal])
	assert.Zero(t, bands[store.BandCaution])

	rec = do(h, http.MethodGet, "/v1/datasets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[DatasetCountsResponse](t, rec).Data, 5)

	rec = do(h, http.MethodGet, "/v1/products/B2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[ProductResponse](t, rec).Data
	require.NotNil(t, overview.Stock)
	assert.Equal(t, store.BandOptimal, overview.Stock.Band)

	rec = do(h, http.MethodGet, "/v1/products/ZZZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIngestionErrors(t *testing.T) {
	h := newTestApp(t, ":memory:")

	tests := []struct {
		name     string
		dataset  string
		filename string
		data     []byte
		status   int
		kind     string
	}{
		{"unknown dataset", "facturas", "x.xlsx", stockWorkbook(t), http.StatusBadRequest, ""},
		{"unreadable file", "stock", "notes.txt", []byte("nothing tabular here"), http.StatusUnprocessableEntity, "unreadable_input"},
		{"annotations are not loadable", "llamados", "x.xlsx", stockWorkbook(t), http.StatusUnprocessableEntity, "schema_mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(t, h, tt.dataset, tt.filename, tt.data)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.kind != "" {
				assert.Equal(t, tt.kind, decode[map[string]string](t, rec)["kind"])
			}
		})
	}

	t.Run("missing file field", func(t *testing.T) {
		rec := do(h, http.MethodPost, "/v1/ingestion/stock", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCallAnnotations(t *testing.T) {
	h := newTestApp(t, ":memory:")

	rec := do(h, http.MethodGet, "/v1/calls/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodPut, "/v1/calls/7", `{"proveedor":"Farma S.A.","fecha_fin":"*"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[CallResponse](t, rec).Data
	assert.Equal(t, int64(7), saved.CallID)
	assert.Equal(t, "*", *saved.EndDate)
	assert.Equal(t, store.VigencyYes, saved.Vigency)

	rec = do(h, http.MethodGet, "/v1/calls/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Farma S.A.", *decode[CallResponse](t, rec).Data.Supplier)

	rec = do(h, http.MethodGet, "/v1/calls?vigency="+url.QueryEscape(store.VigencyYes), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[CallsResponse](t, rec).Data, 1)

	t.Run("unknown field", func(t *testing.T) {
		rec := do(h, http.MethodPut, "/v1/calls/7", `{"color":"red"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := do(h, http.MethodPut, "/v1/calls/abc", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQueryParamErrors(t *testing.T) {
	h := newTestApp(t, ":memory:")

	rec := do(h, http.MethodGet, "/v1/orders?call_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/v1/execution?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/v1/execution/calls", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/v1/orders/overdue", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/v1/requests", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
