package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stockward/internal/dto"
	"stockward/internal/middleware"
	"stockward/internal/model"
	"stockward/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errLedger returns a fixed error from every operation.
type errLedger struct{ err error }

func (l *errLedger) Inbound(_ context.Context, _ dto.InboundRequest, operatorID uint) (*model.InboundRecord, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &model.InboundRecord{ID: 1, OperatorID: operatorID}, nil
}

func (l *errLedger) Outbound(_ context.Context, _ dto.OutboundRequest, _ uint) (*model.OutboundRecord, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &model.OutboundRecord{ID: 1}, nil
}

func (l *errLedger) Transfer(_ context.Context, _ dto.TransferRequest, _ uint) (*model.StockTransfer, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &model.StockTransfer{ID: 1}, nil
}

var _ service.StockLedger = (*errLedger)(nil)

func ledgerRouter(ledger service.StockLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	// Inject claims directly instead of running the full JWT middleware.
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: 42, Username: "tester", Role: "warehouse"})
	})
	h := NewLedgerHandler(ledger)
	r.POST("/stock/inbound", h.Inbound)
	r.POST("/stock/outbound", h.Outbound)
	r.POST("/stock/transfer", h.Transfer)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestInboundHandlerCreates(t *testing.T) {
	r := ledgerRouter(&errLedger{})
	w := postJSON(r, "/stock/inbound", `{"product_id":7,"warehouse_id":1,"supplier_id":2,"quantity":100}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"OperatorID":42`)
}

func TestInboundHandlerRejectsInvalidBody(t *testing.T) {
	r := ledgerRouter(&errLedger{})

	w := postJSON(r, "/stock/inbound", `{"product_id":7}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(r, "/stock/inbound", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInboundHandlerValidationRejectsNonPositiveQuantity(t *testing.T) {
	r := ledgerRouter(&errLedger{})
	w := postJSON(r, "/stock/inbound", `{"product_id":7,"warehouse_id":1,"supplier_id":2,"quantity":-5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOutboundHandlerMapsInsufficientStockToConflict(t *testing.T) {
	r := ledgerRouter(&errLedger{err: service.ErrInsufficientStock})
	w := postJSON(r, "/stock/outbound", `{"product_id":7,"warehouse_id":1,"quantity":150}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock")
}

func TestOutboundHandlerMapsInvalidQuantityToBadRequest(t *testing.T) {
	r := ledgerRouter(&errLedger{err: service.ErrInvalidQuantity})
	w := postJSON(r, "/stock/outbound", `{"product_id":7,"warehouse_id":1,"quantity":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransferHandlerRejectsSameWarehouse(t *testing.T) {
	r := ledgerRouter(&errLedger{})
	w := postJSON(r, "/stock/transfer", `{"product_id":7,"from_warehouse_id":1,"to_warehouse_id":1,"quantity":5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTransferHandlerCreates(t *testing.T) {
	r := ledgerRouter(&errLedger{})
	w := postJSON(r, "/stock/transfer", `{"product_id":7,"from_warehouse_id":1,"to_warehouse_id":2,"quantity":5}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}
