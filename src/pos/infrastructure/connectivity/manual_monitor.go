package connectivity

import (
	"sync"

	"pdv/src/pos/domain/port"
)

// ManualMonitor implementa ConnectivityMonitor con transiciones manuales.
// Para tests determinísticos y para terminales donde el estado lo maneja el
// operador (modo avión del local, por ejemplo).
type ManualMonitor struct {
	mu        sync.RWMutex
	state     port.State
	listeners []func(port.State)
}

// NewManualMonitor crea un monitor con el estado inicial dado
func NewManualMonitor(initial port.State) *ManualMonitor {
	return &ManualMonitor{state: initial}
}

// CurrentState retorna el estado actual
func (m *ManualMonitor) CurrentState() port.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// OnChange registra un listener de transiciones
func (m *ManualMonitor) OnChange(listener func(port.State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// SetState aplica una transición; si el estado no cambia no notifica.
// Los listeners corren sincrónicamente, en orden de registro.
func (m *ManualMonitor) SetState(next port.State) {
	m.mu.Lock()
	if next == m.state {
		m.mu.Unlock()
		return
	}
	m.state = next
	listeners := make([]func(port.State), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}
