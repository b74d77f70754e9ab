package dto

import "time"

// InboundRequest credits stock at a warehouse and records the received goods.
type InboundRequest struct {
	ProductID      uint      `json:"product_id" validate:"required"`
	WarehouseID    uint      `json:"warehouse_id" validate:"required"`
	SupplierID     uint      `json:"supplier_id" validate:"required"`
	Quantity       int       `json:"quantity" validate:"required,gt=0"`
	BatchNumber    string    `json:"batch_number"`
	ProductionDate time.Time `json:"production_date"`
	ExpiryDate     time.Time `json:"expiry_date"`
}

// OutboundRequest debits stock at a warehouse.
type OutboundRequest struct {
	ProductID   uint    `json:"product_id" validate:"required"`
	WarehouseID uint    `json:"warehouse_id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	OrderID     *string `json:"order_id"`
	Reason      string  `json:"reason"`
}

// TransferRequest moves stock between two warehouses atomically.
type TransferRequest struct {
	ProductID       uint   `json:"product_id" validate:"required"`
	FromWarehouseID uint   `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uint   `json:"to_warehouse_id" validate:"required,nefield=FromWarehouseID"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	Reason          string `json:"reason"`
}

// StockResponse is the read shape of one (product, warehouse) quantity.
type StockResponse struct {
	ProductID   uint       `json:"product_id"`
	WarehouseID uint       `json:"warehouse_id"`
	Quantity    int        `json:"quantity"`
	ShelfNumber string     `json:"shelf_number,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

// StockWarningResponse is one low-stock alert row.
type StockWarningResponse struct {
	ProductID       uint   `json:"product_id"`
	ProductName     string `json:"product_name"`
	Warehouse       string `json:"warehouse"`
	CurrentQuantity int    `json:"current_quantity"`
	MinStock        int    `json:"min_stock"`
}

// ExpiryWarningResponse is one near-expiry alert row. DaysUntilExpiry may be
// negative for stock that already expired.
type ExpiryWarningResponse struct {
	ProductID       uint      `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Warehouse       string    `json:"warehouse"`
	Quantity        int       `json:"quantity"`
	ExpiryDate      time.Time `json:"expiry_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
}
