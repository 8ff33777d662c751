package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"pdv/src/pos/domain/entity"
	"pdv/src/pos/domain/port"
	"pdv/src/pos/infrastructure/connectivity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_DrainsQueueDirectly(t *testing.T) {
	store := newFakeStore()
	deliverer := newFakeDeliverer()
	ctx := context.Background()

	require.NoError(t, store.Enqueue(ctx, pendingOrder(t, "5001")))

	uc := NewReconcilePendingUseCase(store, deliverer)

	result, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Delivered)

	pending, _ := store.ListPending(ctx)
	assert.Empty(t, pending)
}

func TestReconcile_SkipsWhenAlreadyInProgress(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	require.NoError(t, store.Enqueue(ctx, pendingOrder(t, "5001")))

	// Deliverer que se queda clavado hasta que lo liberen
	block := make(chan struct{})
	started := make(chan struct{})
	slow := &blockingDeliverer{block: block, started: started}

	uc := NewReconcilePendingUseCase(store, slow)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		uc.Execute(ctx)
	}()

	<-started

	// Segundo Execute mientras el primero drena: se saltea por el flag
	result, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Nil(t, result)

	close(block)
	wg.Wait()
}

func TestReconcile_TriggeredByOnlineTransition(t *testing.T) {
	store := newFakeStore()
	deliverer := newFakeDeliverer()
	ctx := context.Background()

	require.NoError(t, store.Enqueue(ctx, pendingOrder(t, "5001")))

	monitor := connectivity.NewManualMonitor(port.StateOffline)
	uc := NewReconcilePendingUseCase(store, deliverer)
	uc.Subscribe(monitor)

	monitor.SetState(port.StateOnline)

	// El drain corre en background; esperar a que la cola quede vacía
	require.Eventually(t, func() bool {
		pending, err := store.ListPending(ctx)
		return err == nil && len(pending) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

// blockingDeliverer frena la entrega hasta que cierren block
type blockingDeliverer struct {
	block   chan struct{}
	started chan struct{}
	once    sync.Once
}

func (d *blockingDeliverer) Deliver(_ context.Context, _ *entity.PendingOrder) error {
	d.once.Do(func() { close(d.started) })
	<-d.block
	return nil
}
