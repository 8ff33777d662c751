package connectivity

import (
	"context"
	"log"
	"net"
	"sync"
	"time"

	"pdv/src/pos/domain/port"
)

// InterfaceMonitor implementa ConnectivityMonitor leyendo las interfaces de
// red del host: hay al menos una interfaz levantada, no-loopback y con
// dirección → online. Sin probe de alcance real (se confía a valor de cara,
// fuente conocida de falsos positivos que el drain tolera reintentando).
// HITO E - PDV Offline
type InterfaceMonitor struct {
	interval time.Duration

	mu        sync.RWMutex
	state     port.State
	listeners []func(port.State)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewInterfaceMonitor crea el monitor y lee el estado inicial sincrónicamente
func NewInterfaceMonitor(interval time.Duration) *InterfaceMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &InterfaceMonitor{
		interval: interval,
		state:    probeInterfaces(),
	}
}

// CurrentState retorna el estado actual
func (m *InterfaceMonitor) CurrentState() port.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// OnChange registra un listener de transiciones
func (m *InterfaceMonitor) OnChange(listener func(port.State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Start arranca el polling en background. Las transiciones se entregan en el
// orden observado; flapping más rápido que el intervalo coalesce solo, y el
// último estado asentado siempre llega.
func (m *InterfaceMonitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		log.Printf("📶 Monitor de conectividad iniciado (estado inicial: %s)", m.CurrentState())

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.observe(probeInterfaces())
			}
		}
	}()
}

// Stop frena el polling y espera a que el loop termine
func (m *InterfaceMonitor) Stop() {
	if m.cancel != nil {
		m.cancel()
		<-m.done
	}
}

// observe aplica un estado observado y notifica si hubo transición
func (m *InterfaceMonitor) observe(next port.State) {
	m.mu.Lock()
	if next == m.state {
		m.mu.Unlock()
		return
	}
	m.state = next
	listeners := make([]func(port.State), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if next == port.StateOnline {
		log.Println("📶 Conexión restaurada")
	} else {
		log.Println("📴 Conexión perdida")
	}

	for _, listener := range listeners {
		listener(next)
	}
}

// probeInterfaces lee el stack de red: up + no-loopback + con dirección = online
func probeInterfaces() port.State {
	ifaces, err := net.Interfaces()
	if err != nil {
		return port.StateOffline
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}
		return port.StateOnline
	}
	return port.StateOffline
}
