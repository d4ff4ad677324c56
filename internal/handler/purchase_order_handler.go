package handler

import (
	"net/http"

	"pobackend/internal/middleware"
	"pobackend/internal/model"
	"pobackend/internal/service"
	"pobackend/pkg/pagination"
	"pobackend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PurchaseOrderHandler struct {
	orders  service.PurchaseOrderService
	sheets  service.SheetService
	secret  []byte
	verbose bool
}

// NewPurchaseOrderHandler wires the purchase order routes. secret enables
// bearer auth when non-empty; verbose adds raw error text to responses.
func NewPurchaseOrderHandler(orders service.PurchaseOrderService, sheets service.SheetService, secret []byte, verbose bool) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders, sheets: sheets, secret: secret, verbose: verbose}
}

func (h *PurchaseOrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/purchaseorder")
	group.Use(middleware.RequireToken(h.secret))
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.POST("/check-duplicate", h.CheckDuplicate)
		group.POST("/canonicalize", h.Canonicalize)
		group.POST("/updateGoogleSheet", h.UpdateGoogleSheet)
		group.GET("/:uniqueId", h.Get)
	}
}

type createResponse struct {
	response.Response
	UniqueID string `json:"unique_id"`
}

type sheetResponse struct {
	response.Response
	UniqueID    string `json:"unique_id"`
	UpdatedRows int64  `json:"updatedRows"`
}

func (h *PurchaseOrderHandler) bind(c *gin.Context) (model.PurchaseOrderPayload, bool) {
	var payload model.PurchaseOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request body", err.Error()))
		return payload, false
	}
	return payload, true
}

// Create persists a purchase order with its line items
// @Summary      Create purchase order
// @Description  Validates and stores one purchase order. The PO number need not be unique; the returned unique_id identifies the order.
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.PurchaseOrderPayload  true  "Purchase order"
// @Success      201      {object}  createResponse
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /purchaseorder [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	payload, ok := h.bind(c)
	if !ok {
		return
	}

	po, err := h.orders.Create(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err, h.verbose)
		return
	}

	c.JSON(http.StatusCreated, createResponse{
		Response: response.Success(http.StatusCreated, "Purchase order created successfully", po),
		UniqueID: po.UniqueID,
	})
}

// CheckDuplicate reports whether an equivalent order is already stored
// @Summary      Check for a duplicate purchase order
// @Description  Compares the payload with stored orders sharing its PO number, company name and vendor name, ignoring line order, whitespace and number formatting.
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.PurchaseOrderPayload  true  "Purchase order"
// @Success      200      {object}  service.DuplicateResult
// @Failure      500      {object}  response.Response
// @Router       /purchaseorder/check-duplicate [post]
func (h *PurchaseOrderHandler) CheckDuplicate(c *gin.Context) {
	payload, ok := h.bind(c)
	if !ok {
		return
	}

	res, err := h.orders.CheckDuplicate(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err, h.verbose)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Canonicalize returns the normalized form used for duplicate detection
// @Summary      Canonicalize purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.PurchaseOrderPayload  true  "Purchase order"
// @Success      200      {object}  response.Response{data=canonical.Order}
// @Router       /purchaseorder/canonicalize [post]
func (h *PurchaseOrderHandler) Canonicalize(c *gin.Context) {
	payload, ok := h.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "", h.orders.Canonicalize(payload)))
}

// UpdateGoogleSheet appends the order to the configured spreadsheet
// @Summary      Append purchase order to Google Sheets
// @Description  Writes one row per line item plus a blank spacer row. Not retried on failure.
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.PurchaseOrderPayload  true  "Purchase order"
// @Success      200      {object}  sheetResponse
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /purchaseorder/updateGoogleSheet [post]
func (h *PurchaseOrderHandler) UpdateGoogleSheet(c *gin.Context) {
	payload, ok := h.bind(c)
	if !ok {
		return
	}

	res, err := h.sheets.Append(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err, h.verbose)
		return
	}
	c.JSON(http.StatusOK, sheetResponse{
		Response:    response.Success(http.StatusOK, "Google Sheet updated successfully", nil),
		UniqueID:    res.UniqueID,
		UpdatedRows: res.UpdatedRows,
	})
}

// List returns stored purchase orders, newest first
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20, max 100)"
// @Success      200    {object}  response.Response{data=[]service.PurchaseOrderResponse}
// @Router       /purchaseorder [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	orders, total, err := h.orders.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeError(c, err, h.verbose)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, orders, p.Page, p.Limit, total))
}

// Get returns one purchase order by its unique id
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        uniqueId  path      string  true  "Unique id returned on create"
// @Success      200       {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      404       {object}  response.Response
// @Router       /purchaseorder/{uniqueId} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	po, err := h.orders.GetByUniqueID(c.Request.Context(), c.Param("uniqueId"))
	if err != nil {
		writeError(c, err, h.verbose)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "", po))
}
