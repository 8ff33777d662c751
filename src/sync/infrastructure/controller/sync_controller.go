package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"pdv/src/shared/infrastructure/metrics"
	"pdv/src/sync/application/usecase"

	"github.com/gin-gonic/gin"
)

// SyncController maneja las peticiones HTTP del endpoint de sync relay.
// Contrato: 200 {message} si el backend aceptó; 400 {message} si falta
// orderData o companyId; 500 {message} si la operación autoritativa reportó
// error (el mensaje del backend viaja tal cual en el body).
type SyncController struct {
	relayUC *usecase.RelayOrderUseCase
}

// NewSyncController crea una nueva instancia del controlador
func NewSyncController(relayUC *usecase.RelayOrderUseCase) *SyncController {
	return &SyncController{
		relayUC: relayUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SyncController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sync", c.SyncOrder)

	log.Println("Rutas Sync disponibles:")
	log.Println("  POST   /api/v1/sync  ⭐ (relay de órdenes PDV offline)")
}

// syncRequest es el body que mandan los agentes de sync de los terminales
type syncRequest struct {
	OrderData json.RawMessage `json:"orderData"`
	CompanyID string          `json:"companyId"`
}

// SyncOrder recibe una orden encolada más su tenant y la reenvía al backend
func (c *SyncController) SyncOrder(ctx *gin.Context) {
	var req syncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		metrics.OrdersRelayed.WithLabelValues("invalid").Inc()
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	// companyId puede venir en el body o como header X-Tenant-ID (convención
	// de los demás servicios)
	companyID := req.CompanyID
	if companyID == "" {
		companyID = ctx.GetHeader("X-Tenant-ID")
	}

	// Presence checks, única validación del relay
	if len(req.OrderData) == 0 || string(req.OrderData) == "null" {
		metrics.OrdersRelayed.WithLabelValues("invalid").Inc()
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "orderData is required",
		})
		return
	}
	if companyID == "" {
		metrics.OrdersRelayed.WithLabelValues("invalid").Inc()
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "companyId is required",
		})
		return
	}

	message, duplicate, err := c.relayUC.Execute(ctx.Request.Context(), companyID, req.OrderData)
	if err != nil {
		// La operación autoritativa reportó error: el mensaje viaja al agente,
		// que deja la orden encolada y la reintenta en el próximo ciclo
		log.Printf("❌ Relay rechazado para tenant %s: %v", companyID, err)
		metrics.OrdersRelayed.WithLabelValues("rejected").Inc()
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": err.Error(),
		})
		return
	}

	if duplicate {
		metrics.OrdersRelayed.WithLabelValues("duplicate").Inc()
	} else {
		metrics.OrdersRelayed.WithLabelValues("accepted").Inc()
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
