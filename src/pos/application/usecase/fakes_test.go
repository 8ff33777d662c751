package usecase

import (
	"context"
	"errors"

	"pdv/src/pos/domain/entity"
	"pdv/src/pos/domain/port"
)

// fakeStore implementa PendingOrderStore en memoria para los tests de use cases
type fakeStore struct {
	pending []*entity.PendingOrder
	failed  []*entity.PendingOrder
	cached  []*entity.ProductCacheEntry

	enqueueErr error
	listErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) Enqueue(ctx context.Context, order *entity.PendingOrder) error {
	if s.enqueueErr != nil {
		return s.enqueueErr
	}
	s.pending = append(s.pending, order)
	return nil
}

func (s *fakeStore) ListPending(ctx context.Context) ([]*entity.PendingOrder, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*entity.PendingOrder, len(s.pending))
	copy(out, s.pending)
	return out, nil
}

func (s *fakeStore) Remove(ctx context.Context, orderNumber string) error {
	for i, order := range s.pending {
		if order.OrderNumber == orderNumber {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return nil
		}
	}
	// Idempotente: remover algo inexistente no es error
	return nil
}

func (s *fakeStore) RecordAttempt(ctx context.Context, orderNumber, reason string) (int, error) {
	for _, order := range s.pending {
		if order.OrderNumber == orderNumber {
			order.RegisterFailure(reason)
			return order.Attempts, nil
		}
	}
	return 0, entity.ErrOrderNotPending
}

func (s *fakeStore) MarkFailed(ctx context.Context, order *entity.PendingOrder, reason string) error {
	if err := s.Remove(ctx, order.OrderNumber); err != nil {
		return err
	}
	order.LastError = reason
	s.failed = append(s.failed, order)
	return nil
}

func (s *fakeStore) ListFailed(ctx context.Context) ([]*entity.PendingOrder, error) {
	return s.failed, nil
}

func (s *fakeStore) CacheProducts(ctx context.Context, products []*entity.ProductCacheEntry) error {
	s.cached = products
	return nil
}

func (s *fakeStore) ListCachedProducts(ctx context.Context) ([]*entity.ProductCacheEntry, error) {
	return s.cached, nil
}

func (s *fakeStore) Close() error { return nil }

// fakeDeliverer implementa OrderDeliverer con respuestas programadas.
// Por default acepta todo; failAll o errs (por order_number) fuerzan fallos.
type fakeDeliverer struct {
	delivered []*entity.PendingOrder
	failAll   error
	errs      map[string]error
}

func newFakeDeliverer() *fakeDeliverer {
	return &fakeDeliverer{errs: make(map[string]error)}
}

func (d *fakeDeliverer) Deliver(ctx context.Context, order *entity.PendingOrder) error {
	if d.failAll != nil {
		return d.failAll
	}
	if err, ok := d.errs[order.OrderNumber]; ok {
		return err
	}
	d.delivered = append(d.delivered, order)
	return nil
}

func rejection(message string) error {
	return &port.RejectionError{Message: message}
}

var errNetworkDown = errors.New("dial tcp: connection refused")
