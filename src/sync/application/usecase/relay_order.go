package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"pdv/src/sync/domain/port"
)

// RelayOrderUseCase reenvía una orden encolada en un terminal PDV a la
// operación autoritativa de creación de órdenes y traduce su resultado.
// HITO E - PDV Offline: el relay no guarda estado propio (más allá del
// registro de idempotencia) ni valida negocio; existe solo para darle al
// agente background una costura alcanzable por red hacia el backend.
type RelayOrderUseCase struct {
	creator  port.OrderCreator
	registry port.IdempotencyRegistry
}

// NewRelayOrderUseCase crea una nueva instancia del caso de uso
func NewRelayOrderUseCase(creator port.OrderCreator, registry port.IdempotencyRegistry) *RelayOrderUseCase {
	return &RelayOrderUseCase{
		creator:  creator,
		registry: registry,
	}
}

// orderNumberProbe extrae solo el order_number del payload opaco
type orderNumberProbe struct {
	OrderNumber string `json:"order_number"`
}

// Execute reenvía la orden:
// 1. Dedup por companyId:orderNumber — ya procesada → éxito sin tocar backend
// 2. Invocar la operación autoritativa
// 3. Éxito confirmado → marcar en el registro de idempotencia
// Retorna (mensaje, true) si la orden fue deduplicada.
func (uc *RelayOrderUseCase) Execute(ctx context.Context, companyID string, orderData json.RawMessage) (string, bool, error) {
	// ========================================================================
	// PASO 1: DEDUP POR ORDER_NUMBER
	// ========================================================================
	var probe orderNumberProbe
	// Payload opaco: si no trae order_number legible, se reenvía igual y la
	// dedup queda del lado del backend
	_ = json.Unmarshal(orderData, &probe)

	dedupKey := ""
	if probe.OrderNumber != "" && uc.registry != nil {
		dedupKey = fmt.Sprintf("%s:%s", companyID, probe.OrderNumber)

		seen, err := uc.registry.Seen(ctx, dedupKey)
		if err != nil {
			// El registro caído no frena el sync: el backend deduplica también
			log.Printf("⚠️  Registro de idempotencia no disponible: %v", err)
		} else if seen {
			log.Printf("🔁 Orden %s ya procesada, cortocircuito sin tocar el backend", probe.OrderNumber)
			return "Order already synchronized", true, nil
		}
	}

	// ========================================================================
	// PASO 2: REENVIAR A LA OPERACIÓN AUTORITATIVA
	// ========================================================================
	if err := uc.creator.Create(ctx, companyID, orderData); err != nil {
		return "", false, err
	}

	// ========================================================================
	// PASO 3: MARCAR PROCESADA (best effort, el backend ya la tiene)
	// ========================================================================
	if dedupKey != "" {
		if err := uc.registry.MarkProcessed(ctx, dedupKey); err != nil {
			log.Printf("⚠️  No se pudo marcar %s como procesada: %v", dedupKey, err)
		}
	}

	return "Order synchronized", false, nil
}
