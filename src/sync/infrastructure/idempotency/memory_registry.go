package idempotency

import (
	"context"
	"sync"
)

// MemoryRegistry implementa IdempotencyRegistry en memoria.
// Fallback cuando no hay Redis configurado (entorno local o relay de una
// sola instancia). Se pierde al reiniciar: ahí la dedup queda a cargo de la
// idempotencia por order_number del backend.
type MemoryRegistry struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewMemoryRegistry crea un registro vacío
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		seen: make(map[string]struct{}),
	}
}

// Seen indica si la key ya fue marcada como procesada
func (r *MemoryRegistry) Seen(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.seen[key]
	return ok, nil
}

// MarkProcessed marca la key como procesada
func (r *MemoryRegistry) MarkProcessed(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen[key] = struct{}{}
	return nil
}
