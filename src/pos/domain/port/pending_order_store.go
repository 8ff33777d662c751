package port

import (
	"context"

	"pdv/src/pos/domain/entity"
)

// PendingOrderStore define el contrato del almacenamiento local durable del PDV.
// Dos tablas lógicas: cache de productos (read-mostly) y cola de órdenes
// pendientes (write-heavy), más un bucket de dead letter para resolución manual.
// HITO E - PDV Offline
//
// Semántica de fallos: un error de escritura DEBE llegar al caller; perder el
// registro de una venta es el peor modo de falla de todo el sistema.
type PendingOrderStore interface {
	// Enqueue persiste una orden pendiente. No valida contra el catálogo.
	Enqueue(ctx context.Context, order *entity.PendingOrder) error

	// ListPending retorna TODAS las órdenes aún no removidas, en orden de inserción.
	ListPending(ctx context.Context) ([]*entity.PendingOrder, error)

	// Remove elimina una orden confirmada por el backend.
	// Idempotente: remover un order_number inexistente no es error.
	Remove(ctx context.Context, orderNumber string) error

	// RecordAttempt persiste el contador de reintentos de una orden que sigue
	// encolada tras un rechazo de negocio. Retorna el total acumulado.
	RecordAttempt(ctx context.Context, orderNumber, reason string) (int, error)

	// MarkFailed mueve una orden al bucket de dead letter (HITO F).
	// La orden sale de la cola de pendientes pero NUNCA se descarta.
	MarkFailed(ctx context.Context, order *entity.PendingOrder, reason string) error

	// ListFailed retorna las órdenes en dead letter para resolución manual.
	ListFailed(ctx context.Context) ([]*entity.PendingOrder, error)

	// CacheProducts reemplaza la réplica local del catálogo.
	CacheProducts(ctx context.Context, products []*entity.ProductCacheEntry) error

	// ListCachedProducts retorna la réplica local del catálogo.
	ListCachedProducts(ctx context.Context) ([]*entity.ProductCacheEntry, error)

	// Close cierra el storage subyacente.
	Close() error
}
