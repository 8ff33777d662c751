package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitOrderResponse respuesta al cerrar una venta en el PDV.
// El cajero NUNCA ve una venta fallar por conectividad: deferred=true
// significa "guardada offline, se sincroniza sola".
type SubmitOrderResponse struct {
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"` // DELIVERED | DEFERRED
	Deferred    bool            `json:"deferred"`
	Message     string          `json:"message"`
	Total       decimal.Decimal `json:"total"`
	TotalItems  int             `json:"total_items"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PendingOrderListItem representa una orden encolada en el listado del PDV
type PendingOrderListItem struct {
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	TotalItems  int             `json:"total_items"`
	Attempts    int             `json:"attempts"`
	LastError   string          `json:"last_error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
