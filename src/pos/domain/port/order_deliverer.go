package port

import (
	"context"
	"fmt"

	"pdv/src/pos/domain/entity"
)

// OrderDeliverer entrega una orden pendiente a la operación autoritativa de
// creación de órdenes. Dos implementaciones: el cliente directo del
// order-service (camino foreground) y el cliente del relay de sync (camino
// del agente background, que solo habla por la red).
//
// Taxonomía de errores del drain:
//   - nil: el backend aceptó y persistió la orden → se puede remover de la cola.
//   - *RejectionError: rechazo de negocio (ej. stock insuficiente) → la orden
//     queda encolada, se reintenta en el próximo ciclo.
//   - cualquier otro error: falla de red (sin respuesta) → la orden queda
//     encolada y el ciclo se aborta.
type OrderDeliverer interface {
	Deliver(ctx context.Context, order *entity.PendingOrder) error
}

// RejectionError representa un rechazo de negocio reportado por la operación
// autoritativa (respuesta estructurada con mensaje). NO es una falla de red:
// el backend respondió, pero dijo que no.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("order rejected by backend: %s", e.Message)
}

// ProductCatalog expone el catálogo autoritativo para refrescar la réplica
// local de productos cuando hay conexión.
type ProductCatalog interface {
	FetchProducts(ctx context.Context, companyID string) ([]*entity.ProductCacheEntry, error)
}
