package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/purchaseorder/:uniqueId", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/purchaseorder/abc", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, m)
	assert.Contains(t, body, `po_http_requests_total{code="418",route="/purchaseorder/:uniqueId"} 1`)
	assert.Contains(t, body, `po_http_request_duration_seconds_bucket{route="/purchaseorder/:uniqueId"`)
}

func TestDomainCounters(t *testing.T) {
	m := NewMetrics()
	m.DuplicateCheck(DuplicateExists)
	m.DuplicateCheck(DuplicateAbsent)
	m.DuplicateCheck(DuplicateAbsent)
	m.SheetAppend("quota")
	m.OrderCreated()

	body := scrape(t, m)
	assert.Contains(t, body, `po_duplicate_checks_total{result="absent"} 2`)
	assert.Contains(t, body, `po_duplicate_checks_total{result="exists"} 1`)
	assert.Contains(t, body, `po_sheet_appends_total{outcome="quota"} 1`)
	assert.Contains(t, body, "po_orders_created_total 1")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DuplicateCheck(DuplicateError)
		m.SheetAppend("ok")
		m.OrderCreated()
	})

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
