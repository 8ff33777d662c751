package port

import (
	"context"
	"encoding/json"
)

// OrderCreator es la operación autoritativa de creación de órdenes vista
// desde el relay: valida stock, descuenta inventario y persiste la orden.
// El relay la consume como procedimiento remoto opaco; el payload viaja tal
// cual llegó del terminal, sin re-validar campos de negocio.
//
// Propiedad requerida del colaborador: idempotencia por order_number (dos
// caminos de sync pueden entregar la misma orden). El relay igual deduplica
// de su lado con el IdempotencyRegistry como cinturón extra.
type OrderCreator interface {
	// Create retorna nil si el backend aceptó; cualquier error carga el
	// mensaje que el relay devuelve en el body de su respuesta 500.
	Create(ctx context.Context, companyID string, orderData json.RawMessage) error
}

// IdempotencyRegistry registra qué órdenes ya fueron procesadas por la
// operación autoritativa, keyed por companyId:orderNumber.
// Un reenvío de una orden ya procesada se cortocircuita con éxito sin volver
// a invocar al backend (evita el doble descuento de stock).
type IdempotencyRegistry interface {
	// Seen indica si la key ya fue marcada como procesada.
	Seen(ctx context.Context, key string) (bool, error)

	// MarkProcessed marca la key DESPUÉS de una creación confirmada.
	MarkProcessed(ctx context.Context, key string) error
}
