package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required"`
	Barcode  string          `json:"barcode" validate:"required"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price" validate:"min=0"`
	MinStock int             `json:"min_stock" validate:"min=0"`
}

type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// BarcodeScanRequest looks up a product by barcode, optionally creating it
// when the scanner supplies the catalog fields for an unknown code.
type BarcodeScanRequest struct {
	Barcode  string          `json:"barcode" validate:"required"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}
