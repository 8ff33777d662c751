package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrdersRelayed cuenta las órdenes que pasaron por el endpoint de sync,
// por resultado: accepted, duplicate, rejected, invalid.
var OrdersRelayed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pdv_sync_orders_relayed_total",
		Help: "Órdenes PDV recibidas por el sync relay, por resultado",
	},
	[]string{"outcome"},
)
