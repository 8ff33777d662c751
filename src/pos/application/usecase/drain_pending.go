package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pdv/src/pos/domain/port"
)

// MaxDeliveryAttempts es el tope de rechazos de negocio antes de mover una
// orden al bucket de dead letter (HITO F). Sin este tope una orden con stock
// insuficiente se reintentaría para siempre.
const MaxDeliveryAttempts = 10

// DrainResult resume un ciclo de drenaje de la cola
type DrainResult struct {
	Delivered  int  // removidas tras confirmación del backend
	Rejected   int  // rechazo de negocio, siguen encoladas
	DeadLetter int  // movidas a dead letter tras MaxDeliveryAttempts
	Aborted    bool // ciclo cortado por falla de red
}

// DrainPendingUseCase ejecuta UN ciclo de drenaje: entrega secuencialmente
// cada orden pendiente y la remueve SOLO tras confirmación.
// HITO E - PDV Offline: algoritmo compartido por el agente background (vía
// relay) y el loop de reconciliación foreground (vía cliente directo);
// solo cambia el OrderDeliverer inyectado.
type DrainPendingUseCase struct {
	store     port.PendingOrderStore
	deliverer port.OrderDeliverer
}

// NewDrainPendingUseCase crea una nueva instancia del caso de uso
func NewDrainPendingUseCase(store port.PendingOrderStore, deliverer port.OrderDeliverer) *DrainPendingUseCase {
	return &DrainPendingUseCase{
		store:     store,
		deliverer: deliverer,
	}
}

// Execute corre un ciclo de drenaje completo:
// 1. Leer la lista completa de pendientes; vacía → retorno inmediato
// 2. Por cada orden, secuencialmente (sin concurrencia: evita contención de
//    escritura en el backend y mantiene simple la historia de reintentos):
//    a. Entregar la orden
//    b. Éxito → Remove (remover-después-de-confirmar, nunca antes)
//    c. Rechazo de negocio → log + contador de intentos, queda encolada;
//       al llegar a MaxDeliveryAttempts pasa a dead letter
//    d. Falla de red → queda encolada y se ABORTA el resto del ciclo (si la
//       red acaba de caerse, las siguientes tampoco van a salir)
// Cada orden se procesa exactamente una vez por ciclo.
func (uc *DrainPendingUseCase) Execute(ctx context.Context) (*DrainResult, error) {
	pending, err := uc.store.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing pending orders: %w", err)
	}

	result := &DrainResult{}
	if len(pending) == 0 {
		return result, nil
	}

	log.Printf("🔄 Drenando cola: %d órdenes pendientes", len(pending))

	for _, order := range pending {
		err := uc.deliverer.Deliver(ctx, order)

		if err == nil {
			// Confirmado por el backend → recién ahora sale de la cola
			if rmErr := uc.store.Remove(ctx, order.OrderNumber); rmErr != nil {
				// La orden ya está en el backend; si el Remove falla queda
				// encolada y el reintento depende de la idempotencia por
				// order_number del lado autoritativo.
				log.Printf("⚠️  Orden %s entregada pero no removida de la cola: %v", order.OrderNumber, rmErr)
				return result, fmt.Errorf("error removing delivered order %s: %w", order.OrderNumber, rmErr)
			}
			result.Delivered++
			log.Printf("✅ Orden %s sincronizada y removida de la cola", order.OrderNumber)
			continue
		}

		var rejection *port.RejectionError
		if errors.As(err, &rejection) {
			// Rechazo de negocio: conflicto real de datos (la venta se aceptó
			// en caja antes de conocer el stock). Queda encolada, NO se descarta.
			log.Printf("❌ Orden %s rechazada por el backend: %s", order.OrderNumber, rejection.Message)

			attempts, recErr := uc.store.RecordAttempt(ctx, order.OrderNumber, rejection.Message)
			if recErr != nil {
				log.Printf("⚠️  No se pudo registrar el intento de %s: %v", order.OrderNumber, recErr)
			}

			if attempts >= MaxDeliveryAttempts {
				// HITO F - Dead letter: a resolución manual, nunca al tacho
				order.Attempts = attempts
				if dlErr := uc.store.MarkFailed(ctx, order, rejection.Message); dlErr != nil {
					log.Printf("⚠️  No se pudo mover %s a dead letter: %v", order.OrderNumber, dlErr)
				} else {
					result.DeadLetter++
					log.Printf("🪦 Orden %s movida a dead letter tras %d intentos", order.OrderNumber, attempts)
					continue
				}
			}
			result.Rejected++
			continue
		}

		// Falla de red: sin respuesta del otro lado. Abortar el resto del
		// ciclo; el próximo trigger retoma desde el set completo restante.
		log.Printf("📴 Falla de red entregando %s, ciclo abortado: %v", order.OrderNumber, err)
		result.Aborted = true
		return result, nil
	}

	return result, nil
}
