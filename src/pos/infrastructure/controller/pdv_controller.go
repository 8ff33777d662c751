package controller

import (
	"log"
	"net/http"

	"pdv/src/pos/application/request"
	"pdv/src/pos/application/response"
	"pdv/src/pos/application/usecase"
	"pdv/src/pos/domain/port"
	"pdv/src/pos/infrastructure/agent"

	"github.com/gin-gonic/gin"
)

// PDVController maneja las peticiones HTTP de la ventana del punto de venta.
// Es la superficie foreground del terminal: cerrar ventas, ver el catálogo
// cacheado y consultar el estado de la cola de sync.
type PDVController struct {
	submitUC    *usecase.SubmitOrderUseCase
	reconcileUC *usecase.ReconcilePendingUseCase
	store       port.PendingOrderStore
	syncAgent   *agent.SyncAgent
}

// NewPDVController crea una nueva instancia del controlador
func NewPDVController(
	submitUC *usecase.SubmitOrderUseCase,
	reconcileUC *usecase.ReconcilePendingUseCase,
	store port.PendingOrderStore,
	syncAgent *agent.SyncAgent,
) *PDVController {
	return &PDVController{
		submitUC:    submitUC,
		reconcileUC: reconcileUC,
		store:       store,
		syncAgent:   syncAgent,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *PDVController) RegisterRoutes(router *gin.RouterGroup) {
	pdv := router.Group("/pdv")
	{
		pdv.POST("/sale", c.SubmitSale)
		pdv.GET("/products", c.ListProducts)
		pdv.GET("/pending", c.ListPending)
		pdv.GET("/failed", c.ListFailed)
		pdv.POST("/sync", c.TriggerSync)
	}

	log.Println("Rutas PDV disponibles:")
	log.Println("  POST   /api/v1/pdv/sale  ⭐ (cierre de venta offline-first)")
	log.Println("  GET    /api/v1/pdv/products")
	log.Println("  GET    /api/v1/pdv/pending")
	log.Println("  GET    /api/v1/pdv/failed")
	log.Println("  POST   /api/v1/pdv/sync")
}

// SubmitSale cierra una venta en caja. Con o sin conexión la venta se acepta:
// la respuesta distingue DELIVERED de DEFERRED pero nunca es un fallo por red.
func (c *PDVController) SubmitSale(ctx *gin.Context) {
	var req request.SubmitOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := c.submitUC.Execute(ctx.Request.Context(), &req)
	if err != nil {
		// Acá la venta NO quedó registrada (falla de persistencia local o
		// request inválido): el operador tiene que verlo.
		log.Printf("❌ Venta no registrada: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Sale was not recorded",
			"details": err.Error(),
		})
		return
	}

	status := http.StatusCreated
	if resp.Deferred {
		// Aceptada localmente, entrega diferida
		status = http.StatusAccepted
	}
	ctx.JSON(status, resp)
}

// ListProducts lista la réplica local del catálogo (sirve estando offline)
func (c *PDVController) ListProducts(ctx *gin.Context) {
	products, err := c.store.ListCachedProducts(ctx.Request.Context())
	if err != nil {
		log.Printf("Error listing cached products: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       products,
		"total_count": len(products),
	})
}

// ListPending lista las órdenes encoladas esperando sync (vista de operador)
func (c *PDVController) ListPending(ctx *gin.Context) {
	orders, err := c.store.ListPending(ctx.Request.Context())
	if err != nil {
		log.Printf("Error listing pending orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]response.PendingOrderListItem, 0, len(orders))
	for _, order := range orders {
		items = append(items, response.PendingOrderListItem{
			OrderNumber: order.OrderNumber,
			Total:       order.Total,
			TotalItems:  order.TotalItems(),
			Attempts:    order.Attempts,
			LastError:   order.LastError,
			CreatedAt:   order.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_count": len(items),
	})
}

// ListFailed lista las órdenes en dead letter para resolución manual
func (c *PDVController) ListFailed(ctx *gin.Context) {
	orders, err := c.store.ListFailed(ctx.Request.Context())
	if err != nil {
		log.Printf("Error listing failed orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       orders,
		"total_count": len(orders),
	})
}

// TriggerSync dispara un sync manual: despierta al agente background y corre
// la reconciliación foreground (redundantes a propósito, la cola lo tolera)
func (c *PDVController) TriggerSync(ctx *gin.Context) {
	if c.syncAgent != nil {
		c.syncAgent.Notify()
	}

	result, err := c.reconcileUC.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":   "Sync cycle finished with errors",
			"details": err.Error(),
		})
		return
	}
	if result == nil {
		ctx.JSON(http.StatusOK, gin.H{"message": "Sync already in progress"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"delivered":   result.Delivered,
		"rejected":    result.Rejected,
		"dead_letter": result.DeadLetter,
		"aborted":     result.Aborted,
	})
}
