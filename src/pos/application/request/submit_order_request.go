package request

import "github.com/shopspring/decimal"

// SubmitOrderItemRequest representa un item capturado en caja
type SubmitOrderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// SubmitOrderRequest request para cerrar una venta en el PDV
// HITO E - PDV Offline: el total viaja congelado desde la caja; si viene en
// cero se calcula como suma de subtotales al crear el aggregate.
type SubmitOrderRequest struct {
	Items         []SubmitOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName  string                   `json:"customer_name,omitempty"`  // Opcional (vacío = consumidor final)
	CustomerEmail string                   `json:"customer_email,omitempty"` // Opcional
	Total         decimal.Decimal          `json:"total,omitempty"`
}
