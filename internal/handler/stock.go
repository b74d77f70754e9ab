package handler

import (
	"net/http"
	"strconv"

	"stockward/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	query             service.StockQueryService
	expiryWarningDays int
}

func NewStockHandler(query service.StockQueryService, expiryWarningDays int) *StockHandler {
	return &StockHandler{query: query, expiryWarningDays: expiryWarningDays}
}

// ProductStock returns per-warehouse quantities for one product.
func (h *StockHandler) ProductStock(c *gin.Context) {
	productID, ok := uintParam(c, "product_id")
	if !ok {
		return
	}
	resp, err := h.query.ProductStock(c.Request.Context(), productID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Warnings returns every stock key at or below its product minimum.
func (h *StockHandler) Warnings(c *gin.Context) {
	resp, err := h.query.StockWarnings(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpiryWarnings returns stock expiring within ?days (default from config).
func (h *StockHandler) ExpiryWarnings(c *gin.Context) {
	days := h.expiryWarningDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}
	resp, err := h.query.ExpiryWarnings(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
