package handler

import (
	"net/http"

	"pobackend/internal/middleware"
	"pobackend/internal/service"
	"pobackend/pkg/pagination"
	"pobackend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	secret       []byte
}

func NewAuditHandler(auditService service.AuditService, secret []byte) *AuditHandler {
	return &AuditHandler{auditService: auditService, secret: secret}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	group.Use(middleware.RequireToken(h.secret))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs lists audit entries, newest first
// @Summary      Get audit logs
// @Description  Purchase order creations and spreadsheet appends
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 20)"
// @Param        action     query     string  false  "CREATE_PURCHASE_ORDER or APPEND_SHEET"
// @Param        unique_id  query     string  false  "Purchase order unique id"
// @Success      200        {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.Parse(c)
	q := service.AuditQuery{Action: c.Query("action"), UniqueID: c.Query("unique_id")}

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), q, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve audit logs"))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, p.Page, p.Limit, total))
}
