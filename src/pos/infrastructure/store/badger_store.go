package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"pdv/src/pos/domain/entity"

	"github.com/dgraph-io/badger/v3"
)

// Esquema v1 del storage local del PDV (key-value embebido):
//   pendingOrders:<seq>:<order_number>  cola de órdenes pendientes (seq = UnixNano
//                                       cero-padded para iterar en orden de inserción)
//   orderIndex:<order_number>           índice order_number → key completa de la cola
//   failedOrders:<order_number>         bucket de dead letter
//   products:<product_id>               réplica local del catálogo
//   schema:version                      versión del esquema (sin migraciones todavía)
const (
	schemaVersion = "1"

	prefixPending = "pendingOrders:"
	prefixIndex   = "orderIndex:"
	prefixFailed  = "failedOrders:"
	prefixProduct = "products:"
	keySchema     = "schema:version"
)

// BadgerStore implementa PendingOrderStore sobre Badger (storage embebido
// durable en disco del terminal PDV).
// HITO E - PDV Offline
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore abre (o crea) el storage local en path y aplica el esquema
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	// Bajar el ruido de logs de la librería
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening local store: %w", err)
	}

	s := &BadgerStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// ensureSchema registra la versión del esquema en el primer arranque.
// Versión 1: sin migraciones definidas; acá va el upgrade path cuando existan.
func (s *BadgerStore) ensureSchema() error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySchema))
		if errors.Is(err, badger.ErrKeyNotFound) {
			log.Printf("💾 Storage local inicializado (schema v%s)", schemaVersion)
			return txn.Set([]byte(keySchema), []byte(schemaVersion))
		}
		if err != nil {
			return fmt.Errorf("error reading schema version: %w", err)
		}

		version, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("error reading schema version: %w", err)
		}
		if string(version) != schemaVersion {
			return fmt.Errorf("unsupported local store schema version %q", version)
		}
		return nil
	})
}

// Close cierra el storage subyacente
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Enqueue persiste una orden pendiente en la cola.
// Una falla de escritura (ej. disco lleno) sube al caller: perder una venta
// en silencio es el peor modo de falla del sistema.
func (s *BadgerStore) Enqueue(ctx context.Context, order *entity.PendingOrder) error {
	if order.OrderNumber == "" {
		return entity.ErrOrderNumberRequired
	}

	value, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("error marshalling pending order: %w", err)
	}

	// seq por timestamp: mantiene el orden de inserción al iterar por key
	queueKey := fmt.Sprintf("%s%020d:%s", prefixPending, time.Now().UnixNano(), order.OrderNumber)

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(queueKey), value); err != nil {
			return err
		}
		// Índice para Remove/RecordAttempt O(1) por order_number
		return txn.Set([]byte(prefixIndex+order.OrderNumber), []byte(queueKey))
	})
	if err != nil {
		return fmt.Errorf("error enqueueing order %s: %w", order.OrderNumber, err)
	}
	return nil
}

// ListPending retorna todas las órdenes pendientes en orden de inserción
func (s *BadgerStore) ListPending(ctx context.Context) ([]*entity.PendingOrder, error) {
	var orders []*entity.PendingOrder
	err := s.scan(prefixPending, func(k, v []byte) error {
		var order entity.PendingOrder
		if err := json.Unmarshal(v, &order); err != nil {
			return fmt.Errorf("error unmarshalling pending order %s: %w", k, err)
		}
		orders = append(orders, &order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Remove elimina una orden confirmada por el backend.
// Idempotente: si el order_number no existe (ya removido por el otro camino
// de sync) retorna nil sin tocar nada.
func (s *BadgerStore) Remove(ctx context.Context, orderNumber string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		queueKey, err := s.lookupQueueKey(txn, orderNumber)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := txn.Delete(queueKey); err != nil {
			return err
		}
		return txn.Delete([]byte(prefixIndex + orderNumber))
	})
	if err != nil {
		return fmt.Errorf("error removing order %s: %w", orderNumber, err)
	}
	return nil
}

// RecordAttempt incrementa el contador de rechazos de una orden encolada.
// Solo toca los campos de bookkeeping (attempts/last_error); items y total
// quedan intactos para que el reintento viaje idéntico.
func (s *BadgerStore) RecordAttempt(ctx context.Context, orderNumber, reason string) (int, error) {
	attempts := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		queueKey, err := s.lookupQueueKey(txn, orderNumber)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return entity.ErrOrderNotPending
		}
		if err != nil {
			return err
		}

		item, err := txn.Get(queueKey)
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		var order entity.PendingOrder
		if err := json.Unmarshal(value, &order); err != nil {
			return fmt.Errorf("error unmarshalling pending order: %w", err)
		}

		order.RegisterFailure(reason)
		attempts = order.Attempts

		updated, err := json.Marshal(&order)
		if err != nil {
			return fmt.Errorf("error marshalling pending order: %w", err)
		}
		return txn.Set(queueKey, updated)
	})
	if err != nil {
		return 0, fmt.Errorf("error recording attempt for %s: %w", orderNumber, err)
	}
	return attempts, nil
}

// MarkFailed mueve una orden de la cola al bucket de dead letter (HITO F).
// Transaccional: o sale de la cola y entra a failedOrders, o no pasa nada.
func (s *BadgerStore) MarkFailed(ctx context.Context, order *entity.PendingOrder, reason string) error {
	order.LastError = reason
	value, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("error marshalling failed order: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		queueKey, err := s.lookupQueueKey(txn, order.OrderNumber)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err == nil {
			if err := txn.Delete(queueKey); err != nil {
				return err
			}
			if err := txn.Delete([]byte(prefixIndex + order.OrderNumber)); err != nil {
				return err
			}
		}
		return txn.Set([]byte(prefixFailed+order.OrderNumber), value)
	})
	if err != nil {
		return fmt.Errorf("error moving order %s to dead letter: %w", order.OrderNumber, err)
	}
	return nil
}

// ListFailed retorna las órdenes en dead letter para resolución manual
func (s *BadgerStore) ListFailed(ctx context.Context) ([]*entity.PendingOrder, error) {
	var orders []*entity.PendingOrder
	err := s.scan(prefixFailed, func(k, v []byte) error {
		var order entity.PendingOrder
		if err := json.Unmarshal(v, &order); err != nil {
			return fmt.Errorf("error unmarshalling failed order %s: %w", k, err)
		}
		orders = append(orders, &order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CacheProducts reemplaza la réplica local del catálogo completa
func (s *BadgerStore) CacheProducts(ctx context.Context, products []*entity.ProductCacheEntry) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		// Borrar la réplica anterior (productos dados de baja incluidos)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		var stale [][]byte
		for it.Seek([]byte(prefixProduct)); it.ValidForPrefix([]byte(prefixProduct)); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		for _, p := range products {
			value, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("error marshalling product %s: %w", p.ProductID, err)
			}
			if err := txn.Set([]byte(prefixProduct+p.ProductID), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error caching products: %w", err)
	}
	return nil
}

// ListCachedProducts retorna la réplica local del catálogo
func (s *BadgerStore) ListCachedProducts(ctx context.Context) ([]*entity.ProductCacheEntry, error) {
	var products []*entity.ProductCacheEntry
	err := s.scan(prefixProduct, func(k, v []byte) error {
		var p entity.ProductCacheEntry
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("error unmarshalling product %s: %w", k, err)
		}
		products = append(products, &p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// lookupQueueKey resuelve order_number → key completa de la cola vía índice
func (s *BadgerStore) lookupQueueKey(txn *badger.Txn, orderNumber string) ([]byte, error) {
	item, err := txn.Get([]byte(prefixIndex + orderNumber))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// scan itera las keys con un prefijo dado en orden lexicográfico
func (s *BadgerStore) scan(prefix string, fn func(k, v []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			k := item.KeyCopy(nil)
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
