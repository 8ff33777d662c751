package agent

import (
	"context"
	"log"
	"sync/atomic"

	"pdv/src/pos/application/usecase"
	"pdv/src/pos/domain/port"
)

// SyncTag es el nombre de la señal de sync que el proceso foreground registra
// y la plataforma entrega cuando vuelve la conectividad.
const SyncTag = "sync-pending-orders"

// SyncAgent es el agente de sincronización background: vive desacoplado de
// cualquier ventana de la aplicación y drena la cola de pendientes contra el
// relay cada vez que lo despiertan.
// HITO E - PDV Offline
//
// Máquina de estados: Idle → Draining → Idle. La entrada a Draining no es
// reentrante: una señal que llega durante un drenaje queda encolada (buffer 1)
// y dispara un ciclo más al terminar; señales extra coalescen.
//
// Dos triggers lo despiertan:
//   - la señal nombrada SyncTag (Notify), entregada por la plataforma
//   - la transición offline→online del monitor de conectividad
type SyncAgent struct {
	drain   *usecase.DrainPendingUseCase
	wake    chan struct{}
	running atomic.Bool
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewSyncAgent crea el agente. El deliverer del drain DEBE ser el RelayClient:
// el agente solo habla por la red, nunca por llamadas in-process.
func NewSyncAgent(store port.PendingOrderStore, relay port.OrderDeliverer) *SyncAgent {
	return &SyncAgent{
		drain: usecase.NewDrainPendingUseCase(store, relay),
		wake:  make(chan struct{}, 1),
	}
}

// Notify entrega la señal de sync al agente. No bloquea: si ya hay una señal
// pendiente, las extra coalescen (el drenaje lee la cola completa igual).
func (a *SyncAgent) Notify() {
	select {
	case a.wake <- struct{}{}:
	default:
		// Ya hay un ciclo encolado; la señal coalesce
	}
}

// Subscribe engancha el agente al monitor: cada vuelta a online lo despierta
func (a *SyncAgent) Subscribe(monitor port.ConnectivityMonitor) {
	monitor.OnChange(func(state port.State) {
		if state == port.StateOnline {
			a.Notify()
		}
	})
}

// Start arranca el loop del agente en background
func (a *SyncAgent) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})

	go func() {
		defer close(a.done)
		log.Printf("🛰️  Agente de sync iniciado (tag %q)", SyncTag)

		for {
			select {
			case <-ctx.Done():
				return
			case <-a.wake:
				a.runCycle(ctx)
			}
		}
	}()
}

// Stop frena el agente y espera a que termine el ciclo en curso
func (a *SyncAgent) Stop() {
	if a.cancel != nil {
		a.cancel()
		<-a.done
	}
}

// Draining indica si hay un ciclo de drenaje en curso
func (a *SyncAgent) Draining() bool {
	return a.running.Load()
}

// runCycle ejecuta un ciclo de drenaje (entrada no reentrante por construcción:
// solo el loop del agente llama acá, de a un ciclo por vez)
func (a *SyncAgent) runCycle(ctx context.Context) {
	a.running.Store(true)
	defer a.running.Store(false)

	result, err := a.drain.Execute(ctx)
	if err != nil {
		// El error queda logueado y las órdenes en la cola; el próximo
		// trigger reintenta. El sync es asunto background: nada sube al operador.
		log.Printf("⚠️  Ciclo de sync terminó con error: %v", err)
		return
	}

	if result.Delivered > 0 || result.Rejected > 0 || result.DeadLetter > 0 {
		log.Printf("🛰️  Ciclo de sync: %d entregadas, %d rechazadas, %d dead letter (abortado=%v)",
			result.Delivered, result.Rejected, result.DeadLetter, result.Aborted)
	}
}
