package handler

import (
	"errors"
	"net/http"

	"stockward/internal/apierror"
	"stockward/internal/dto"
	"stockward/internal/model"
	"stockward/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogHandler struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	suppliers  repository.SupplierRepository
}

func NewCatalogHandler(
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	suppliers repository.SupplierRepository,
) *CatalogHandler {
	return &CatalogHandler{products: products, warehouses: warehouses, suppliers: suppliers}
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	existing, err := h.products.FindByBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, apierror.New("barcode already registered"))
		return
	}

	p := &model.Product{
		Name:     req.Name,
		Barcode:  req.Barcode,
		Category: req.Category,
		Unit:     req.Unit,
		Price:    req.Price,
		MinStock: req.MinStock,
	}
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	p, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 100),
	}
	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": products})
}

// ScanBarcode resolves a scanned code to its product. Unknown codes are
// registered on the fly when the scanner supplies at least a name, so a new
// SKU can enter the catalog straight from the receiving dock.
func (h *CatalogHandler) ScanBarcode(c *gin.Context) {
	var req dto.BarcodeScanRequest
	if !bindAndValidate(c, &req) {
		return
	}

	p, err := h.products.FindByBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if p != nil {
		c.JSON(http.StatusOK, gin.H{"created": false, "product": p})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusNotFound, apierror.New("unknown barcode"))
		return
	}
	p = &model.Product{
		Name:     req.Name,
		Barcode:  req.Barcode,
		Category: req.Category,
		Unit:     req.Unit,
		Price:    req.Price,
	}
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true, "product": p})
}

func (h *CatalogHandler) CreateWarehouse(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	w := &model.Warehouse{Name: req.Name, Location: req.Location}
	if err := h.warehouses.Create(c.Request.Context(), w); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	ws, err := h.warehouses.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	s := &model.Supplier{Name: req.Name, Contact: req.Contact, Phone: req.Phone, Address: req.Address}
	if err := h.suppliers.Create(c.Request.Context(), s); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	ss, err := h.suppliers.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ss)
}
