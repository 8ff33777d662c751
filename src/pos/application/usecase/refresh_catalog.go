package usecase

import (
	"context"
	"fmt"
	"log"

	"pdv/src/pos/domain/port"
)

// RefreshCatalogUseCase refresca la réplica local del catálogo de productos.
// Oportunista: se dispara al volver la conexión y sus fallas solo se loguean
// (la réplica vieja sigue sirviendo para renderizar el PDV offline).
type RefreshCatalogUseCase struct {
	store     port.PendingOrderStore
	catalog   port.ProductCatalog
	companyID string
}

// NewRefreshCatalogUseCase crea una nueva instancia del caso de uso
func NewRefreshCatalogUseCase(store port.PendingOrderStore, catalog port.ProductCatalog, companyID string) *RefreshCatalogUseCase {
	return &RefreshCatalogUseCase{
		store:     store,
		catalog:   catalog,
		companyID: companyID,
	}
}

// Subscribe refresca el catálogo en cada transición offline→online
func (uc *RefreshCatalogUseCase) Subscribe(monitor port.ConnectivityMonitor) {
	monitor.OnChange(func(state port.State) {
		if state == port.StateOnline {
			go func() {
				if err := uc.Execute(context.Background()); err != nil {
					log.Printf("⚠️  Refresh de catálogo falló (se mantiene la réplica vieja): %v", err)
				}
			}()
		}
	})
}

// Execute trae el catálogo autoritativo y reemplaza la réplica local
func (uc *RefreshCatalogUseCase) Execute(ctx context.Context) error {
	products, err := uc.catalog.FetchProducts(ctx, uc.companyID)
	if err != nil {
		return fmt.Errorf("error fetching catalog: %w", err)
	}

	if err := uc.store.CacheProducts(ctx, products); err != nil {
		return fmt.Errorf("error caching products: %w", err)
	}

	log.Printf("📦 Catálogo local refrescado: %d productos", len(products))
	return nil
}
