package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCacheEntry es una réplica local de lectura de un producto del catálogo.
// Se refresca de forma oportunista cuando hay conexión y solo se usa para
// renderizar la lista de productos del PDV estando offline.
// La staleness se tolera: el stock real lo valida el backend durante el sync.
type ProductCacheEntry struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	UpdatedAt time.Time       `json:"updated_at"`
}
