package handler

import (
	"errors"
	"net/http"

	"stockward/internal/apierror"
	"stockward/internal/dto"
	"stockward/internal/middleware"
	"stockward/internal/service"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the three stock mutations. Business-rule rejections
// map to 400 / 409 from the ledger's closed error set; everything else is a
// 500 routed through the error middleware.
type LedgerHandler struct{ ledger service.StockLedger }

func NewLedgerHandler(ledger service.StockLedger) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

func (h *LedgerHandler) Inbound(c *gin.Context) {
	var req dto.InboundRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rec, err := h.ledger.Inbound(c.Request.Context(), req, middleware.GetClaims(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *LedgerHandler) Outbound(c *gin.Context) {
	var req dto.OutboundRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rec, err := h.ledger.Outbound(c.Request.Context(), req, middleware.GetClaims(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rec, err := h.ledger.Transfer(c.Request.Context(), req, middleware.GetClaims(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *LedgerHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, apierror.New("Quantity must be positive"))
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, apierror.New("Insufficient stock"))
	default:
		_ = c.Error(err)
	}
}
