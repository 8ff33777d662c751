package port

// State representa el estado de conectividad del proceso (dos valores).
type State string

const (
	StateOnline  State = "online"
	StateOffline State = "offline"
)

// ConnectivityMonitor expone el estado online/offline del host y notifica
// transiciones. El estado inicial se lee sincrónicamente del stack de red al
// suscribirse; la reachability se toma a valor de cara (sin probe), fuente
// conocida de falsos positivos que el drain tolera reintentando.
//
// Se inyecta en los use cases (en vez de leer estado global) para poder
// testear con una implementación manual determinística.
type ConnectivityMonitor interface {
	// CurrentState retorna el estado actual.
	CurrentState() State

	// OnChange registra un listener que recibe una llamada por transición
	// observada, en el orden en que ocurren. Flapping rápido puede coalescer,
	// pero el estado final asentado siempre se entrega.
	OnChange(listener func(State))
}
