package usecase

import (
	"context"
	"log"
	"sync/atomic"

	"pdv/src/pos/domain/port"
)

// ReconcilePendingUseCase es el camino de sync secundario que corre DENTRO de
// la ventana activa de la aplicación: al volver la conexión drena la misma
// cola llamando a la operación autoritativa directo (sin pasar por el relay).
// HITO E - PDV Offline: redundante con el agente background a propósito;
// ambos pueden correr a la vez porque Remove es idempotente y el backend
// deduplica por order_number.
type ReconcilePendingUseCase struct {
	drain      *DrainPendingUseCase
	inProgress atomic.Bool // guarda contra drenajes concurrentes del mismo proceso
}

// NewReconcilePendingUseCase crea una nueva instancia del caso de uso.
// El deliverer inyectado debe ser el cliente DIRECTO del order-service.
func NewReconcilePendingUseCase(store port.PendingOrderStore, deliverer port.OrderDeliverer) *ReconcilePendingUseCase {
	return &ReconcilePendingUseCase{
		drain: NewDrainPendingUseCase(store, deliverer),
	}
}

// Subscribe engancha el loop al monitor de conectividad: cada transición
// offline→online dispara una reconciliación.
func (uc *ReconcilePendingUseCase) Subscribe(monitor port.ConnectivityMonitor) {
	monitor.OnChange(func(state port.State) {
		if state == port.StateOnline {
			go uc.Execute(context.Background())
		}
	})
}

// Execute corre un ciclo de reconciliación si no hay otro en curso.
// Retorna (nil, nil) cuando se saltea por reentrada.
func (uc *ReconcilePendingUseCase) Execute(ctx context.Context) (*DrainResult, error) {
	if !uc.inProgress.CompareAndSwap(false, true) {
		// Ya hay un drenaje corriendo en esta ventana, no se duplica
		return nil, nil
	}
	defer uc.inProgress.Store(false)

	log.Println("🔄 Reconciliación foreground: volvió la conexión, drenando cola...")
	result, err := uc.drain.Execute(ctx)
	if err != nil {
		log.Printf("⚠️  Reconciliación foreground terminó con error: %v", err)
		return result, err
	}

	log.Printf("✅ Reconciliación foreground: %d entregadas, %d rechazadas, %d dead letter (abortado=%v)",
		result.Delivered, result.Rejected, result.DeadLetter, result.Aborted)
	return result, nil
}
