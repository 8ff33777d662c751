package usecase

import (
	"context"
	"fmt"
	"log"

	"pdv/src/pos/application/request"
	"pdv/src/pos/application/response"
	"pdv/src/pos/domain/entity"
	"pdv/src/pos/domain/port"
)

// SubmitOrderUseCase caso de uso para cerrar una venta en el PDV
// HITO E - PDV Offline: la venta NUNCA se bloquea esperando al backend.
// Online → intento directo contra la operación autoritativa; si falla,
// fallback a la cola local. Offline → directo a la cola, sin intentar red.
type SubmitOrderUseCase struct {
	store     port.PendingOrderStore
	deliverer port.OrderDeliverer
	monitor   port.ConnectivityMonitor
	companyID string
}

// NewSubmitOrderUseCase crea una nueva instancia del caso de uso
func NewSubmitOrderUseCase(
	store port.PendingOrderStore,
	deliverer port.OrderDeliverer,
	monitor port.ConnectivityMonitor,
	companyID string,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		store:     store,
		deliverer: deliverer,
		monitor:   monitor,
		companyID: companyID,
	}
}

// Execute cierra la venta:
// 1. Construir el aggregate PendingOrder (valida items, congela total)
// 2. Si hay conexión → entrega directa; éxito → DELIVERED sin encolar
// 3. Si la entrega falla (red o rechazo) → encolar y retornar DEFERRED
// 4. Si no hay conexión → encolar de una, DEFERRED inmediato
//
// El único error que sube al caller es la falla de persistencia local:
// ahí la venta NO quedó registrada y el operador tiene que enterarse.
func (uc *SubmitOrderUseCase) Execute(ctx context.Context, req *request.SubmitOrderRequest) (*response.SubmitOrderResponse, error) {
	// ========================================================================
	// PASO 1: CONSTRUIR EL AGGREGATE
	// ========================================================================
	var items []entity.PendingOrderItem
	for _, itemReq := range req.Items {
		item, err := entity.NewPendingOrderItem(itemReq.ProductID, itemReq.Quantity, itemReq.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("error creating order item: %w", err)
		}
		items = append(items, *item)
	}

	order, err := entity.NewPendingOrder(uc.companyID, items, req.CustomerName, req.CustomerEmail, req.Total)
	if err != nil {
		return nil, fmt.Errorf("error creating pending order: %w", err)
	}

	// ========================================================================
	// PASO 2: ONLINE → INTENTO DIRECTO
	// ========================================================================
	if uc.monitor.CurrentState() == port.StateOnline {
		if err := uc.deliverer.Deliver(ctx, order); err == nil {
			log.Printf("✅ Venta %s entregada directo al backend", order.OrderNumber)
			return buildResponse(order, entity.SubmitDelivered, "Venta registrada"), nil
		} else {
			// Falla de red o rechazo del backend: la venta ya está aceptada en
			// caja, así que cae a la cola para replay transparente.
			log.Printf("⚠️  Entrega directa de %s falló, encolando: %v", order.OrderNumber, err)
		}
	} else {
		log.Printf("📴 Sin conexión, venta %s directo a la cola local", order.OrderNumber)
	}

	// ========================================================================
	// PASO 3: FALLBACK → COLA LOCAL DURABLE
	// ========================================================================
	if err := uc.store.Enqueue(ctx, order); err != nil {
		// CRÍTICO: acá la venta NO quedó registrada en ningún lado.
		return nil, fmt.Errorf("error persisting sale locally: %w", err)
	}

	log.Printf("💾 Venta %s encolada (%d items, total %s)", order.OrderNumber, order.TotalItems(), order.Total)
	return buildResponse(order, entity.SubmitDeferred, "Venta guardada offline, se sincroniza automáticamente"), nil
}

func buildResponse(order *entity.PendingOrder, status entity.SubmitStatus, message string) *response.SubmitOrderResponse {
	return &response.SubmitOrderResponse{
		OrderNumber: order.OrderNumber,
		Status:      string(status),
		Deferred:    status == entity.SubmitDeferred,
		Message:     message,
		Total:       order.Total,
		TotalItems:  order.TotalItems(),
		CreatedAt:   order.CreatedAt,
	}
}
