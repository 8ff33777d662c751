package idempotency

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_SeenAfterMark(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	seen, err := registry.Seen(ctx, "company-123:order-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, registry.MarkProcessed(ctx, "company-123:order-1"))

	seen, err = registry.Seen(ctx, "company-123:order-1")
	require.NoError(t, err)
	assert.True(t, seen)

	// Otra key no se contamina
	seen, err = registry.Seen(ctx, "company-999:order-1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMemoryRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.MarkProcessed(ctx, "company-123:order-1")
		}()
		go func() {
			defer wg.Done()
			registry.Seen(ctx, "company-123:order-1")
		}()
	}
	wg.Wait()

	seen, err := registry.Seen(ctx, "company-123:order-1")
	require.NoError(t, err)
	assert.True(t, seen)
}
