package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"pobackend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditService struct {
	query service.AuditQuery
	err   error
}

func (f *fakeAuditService) GetAuditLogs(_ context.Context, q service.AuditQuery, page, limit int) ([]service.AuditLogResponse, int64, error) {
	f.query = q
	if f.err != nil {
		return nil, 0, f.err
	}
	return []service.AuditLogResponse{{Action: q.Action, EntityID: "u-1"}}, 1, nil
}

func TestGetAuditLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAuditService{}
	r := gin.New()
	NewAuditHandler(svc, nil).RegisterRoutes(r.Group(""))

	rr := do(r, http.MethodGet, "/api/audit-logs?action=APPEND_SHEET&unique_id=u-1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, service.AuditQuery{Action: "APPEND_SHEET", UniqueID: "u-1"}, svc.query)
	logs := decode(t, rr)["data"].([]interface{})
	assert.Len(t, logs, 1)

	svc.err = errors.New("down")
	rr = do(r, http.MethodGet, "/api/audit-logs", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler(fakePinger{}).RegisterRoutes(r.Group(""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)

	r = gin.New()
	NewHealthHandler(fakePinger{err: errors.New("down")}).RegisterRoutes(r.Group(""))
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/health", "").Code)
}
