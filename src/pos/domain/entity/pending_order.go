package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OriginPDV identifica las órdenes creadas por el canal punto de venta.
// Otros canales (web, marketplace) usan sus propios tags y no pasan por esta cola.
const OriginPDV = "pdv"

// PendingOrder representa una venta aceptada localmente pero aún no confirmada
// por el backend autoritativo (Aggregate Root de la cola offline).
// HITO E - PDV Offline: la cola de pendientes es el ÚNICO registro de ventas
// sin sincronizar; la orden se destruye solo tras confirmación del backend.
type PendingOrder struct {
	OrderNumber   string             `json:"order_number"` // PK de la cola, generado en el cliente
	CompanyID     string             `json:"company_id"`   // Tenant: enruta la orden a la partición correcta
	Items         []PendingOrderItem `json:"items"`
	CustomerName  string             `json:"customer_name,omitempty"`  // Opcional, sin validar contra registro de clientes
	CustomerEmail string             `json:"customer_email,omitempty"` // Opcional
	Total         decimal.Decimal    `json:"total"`                    // Congelado al momento de la venta, NO se recalcula en sync
	Origin        string             `json:"origin"`
	CreatedAt     time.Time          `json:"created_at"`

	// HITO F - Dead letter: contadores de reintentos para resolución manual
	Attempts  int    `json:"attempts"`
	LastError string `json:"last_error,omitempty"`
}

// PendingOrderItem representa un item capturado al momento de la venta
// (Entity dentro del Aggregate). Precio unitario congelado.
type PendingOrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewPendingOrderItem crea un nuevo item de orden pendiente
// Validaciones mínimas, sin tocar red ni storage
func NewPendingOrderItem(productID string, quantity int, unitPrice decimal.Decimal) (*PendingOrderItem, error) {
	if productID == "" {
		return nil, ErrProductIDRequired
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &PendingOrderItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

// Subtotal retorna quantity * unit_price
func (i *PendingOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewPendingOrder crea una nueva orden pendiente (DDD Aggregate Root)
// Si total viene en cero se calcula como suma de subtotales; si viene
// informado se respeta tal cual (el total histórico manda, no el catálogo).
func NewPendingOrder(
	companyID string,
	items []PendingOrderItem,
	customerName string,
	customerEmail string,
	total decimal.Decimal,
) (*PendingOrder, error) {
	// Validaciones básicas
	if companyID == "" {
		return nil, ErrCompanyIDRequired
	}
	if len(items) == 0 {
		return nil, ErrOrderMustHaveItems
	}
	if total.LessThan(decimal.Zero) {
		return nil, ErrInvalidTotal
	}

	// Calcular total solo si el caller no lo congeló ya
	if total.IsZero() {
		for _, item := range items {
			total = total.Add(item.Subtotal())
		}
	}

	return &PendingOrder{
		OrderNumber:   uuid.New().String(),
		CompanyID:     companyID,
		Items:         items,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Total:         total,
		Origin:        OriginPDV,
		CreatedAt:     time.Now(),
	}, nil
}

// TotalItems retorna el número total de items
func (o *PendingOrder) TotalItems() int {
	return len(o.Items)
}

// RegisterFailure anota un intento de entrega fallido (error de negocio
// reportado por el backend). No muta items ni total: la orden se reintenta
// idéntica en el próximo ciclo.
func (o *PendingOrder) RegisterFailure(reason string) {
	o.Attempts++
	o.LastError = reason
}
