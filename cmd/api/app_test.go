package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pobackend/internal/config"
	"pobackend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

const order = `{
	"company": {"name": "Acme", "address": "1 Main St", "cityStateZip": "Springfield, IL 62701", "country": "USA"},
	"vendor": {"name": "Bolt Co", "address": "9 Dock Rd", "cityStateZip": "Portland, OR 97201", "country": "USA"},
	"orderInfo": {"poNumber": "PO-7", "orderDate": "2025-01-15"},
	"lineItems": [
		{"description": "Widget", "quantity": 2, "rate": 5, "gst": 0},
		{"description": "Anchor", "quantity": 1, "rate": 12.5, "gst": 10}
	],
	"subTotal": 22.5, "taxAmount": 1.25, "total": 23.75
}`

// Same order with the lines swapped and numerics sent as strings.
const resubmitted = `{
	"company": {"name": " Acme ", "address": "1 Main St", "cityStateZip": "Springfield, IL 62701", "country": "USA"},
	"vendor": {"name": "Bolt Co", "address": "9 Dock Rd", "cityStateZip": "Portland, OR 97201", "country": "USA"},
	"orderInfo": {"poNumber": "PO-7", "orderDate": "2025-01-15T08:00:00Z"},
	"lineItems": [
		{"description": "Anchor", "quantity": "1", "rate": "12.50", "gst": "10"},
		{"description": "Widget", "quantity": "2.0", "rate": "5", "gst": "0"}
	],
	"subTotal": "22.50", "taxAmount": "1.25", "total": "23.75"
}`

func newTestApp(t *testing.T) *app {
	t.Helper()
	db, err := database.Open(
		sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared&_foreign_keys=on"),
		database.Options{LogLevel: logger.Silent, MaxOpenConns: 1},
	)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		AppEnv:                    "test",
		RequestTimeout:            5 * time.Second,
		CandidateFetchConcurrency: 2,
	}
	return newApp(cfg, db, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func call(a *app, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestCreateThenDetectDuplicate(t *testing.T) {
	a := newTestApp(t)

	rr := call(a, http.MethodPost, "/purchaseorder/check-duplicate", order)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["exists"])

	rr = call(a, http.MethodPost, "/purchaseorder", order)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	uid, _ := decodeBody(t, rr)["unique_id"].(string)
	require.NotEmpty(t, uid)

	rr = call(a, http.MethodPost, "/purchaseorder/check-duplicate", order)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody(t, rr)
	assert.Equal(t, true, got["exists"])
	assert.Equal(t, uid, got["unique_id"])

	// raw-text pre-filter: the padded company name is not a candidate
	rr = call(a, http.MethodPost, "/purchaseorder/check-duplicate", resubmitted)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["exists"])

	fixed := strings.Replace(resubmitted, `" Acme "`, `"Acme"`, 1)
	rr = call(a, http.MethodPost, "/purchaseorder/check-duplicate", fixed)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decodeBody(t, rr)["exists"])

	rr = call(a, http.MethodGet, "/purchaseorder/"+uid, "")
	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeBody(t, rr)["data"].(map[string]interface{})
	assert.Equal(t, "PO-7", data["po_number"])
	assert.Len(t, data["line_items"], 2)

	rr = call(a, http.MethodGet, "/api/audit-logs?action=CREATE_PURCHASE_ORDER", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["data"], 1)
}

func TestAmbientRoutes(t *testing.T) {
	a := newTestApp(t)

	rr := call(a, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = call(a, http.MethodPost, "/purchaseorder/updateGoogleSheet", order)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = call(a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `po_http_requests_total{code="503",route="/purchaseorder/updateGoogleSheet"} 1`)

	rr = call(a, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
