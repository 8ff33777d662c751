package main

import (
	"log"

	sharedConfig "pdv/src/shared/infrastructure/config"
	syncUseCase "pdv/src/sync/application/usecase"
	syncPort "pdv/src/sync/domain/port"
	syncClient "pdv/src/sync/infrastructure/client"
	syncController "pdv/src/sync/infrastructure/controller"
	syncIdempotency "pdv/src/sync/infrastructure/idempotency"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.Println("🚀 PDV Sync Relay - Iniciando...")

	// Cargar variables de entorno (.env opcional)
	sharedConfig.Load()

	// Configurar el router con Gin
	router := gin.New()

	// Agregar middlewares básicos necesarios
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	if sharedConfig.GetEnv("PROMETHEUS_ENABLED", "true") == "true" {
		log.Println("Registering /metrics endpoint for Sync Relay")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for Sync Relay")
	}

	// Health check (el relay no guarda estado propio, alcanza con responder)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok", "service": "pdv-sync-relay"})
	})

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")

	// Configurar módulo Sync
	setupSyncModule(v1)

	// Iniciar el servidor
	port := sharedConfig.GetEnv("PORT", "8080")
	log.Printf("✅ Servidor Sync Relay iniciado en http://localhost:%s", port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", port)
	router.Run(":" + port)
}

// setupSyncModule configura el módulo Sync
func setupSyncModule(router *gin.RouterGroup) {
	log.Println("Configurando módulo Sync...")

	// Cliente del order-service autoritativo
	orderClient := syncClient.NewOrderClient()

	// Registro de idempotencia: Redis si está configurado, memoria si no
	var registry syncPort.IdempotencyRegistry
	redisAddr := sharedConfig.GetEnv("REDIS_ADDR", "")
	if redisAddr != "" {
		redisRegistry, err := syncIdempotency.NewRedisRegistry(
			redisAddr,
			sharedConfig.GetEnv("REDIS_PASSWORD", ""),
			sharedConfig.GetEnvInt("REDIS_DB", 0),
		)
		if err != nil {
			log.Printf("⚠️  Advertencia: no se pudo conectar a Redis: %v", err)
			log.Println("⚠️  Continuando con registro de idempotencia en memoria")
			registry = syncIdempotency.NewMemoryRegistry()
		} else {
			log.Println("✅ Registro de idempotencia en Redis conectado")
			registry = redisRegistry
		}
	} else {
		log.Println("⚠️  REDIS_ADDR no configurado, registro de idempotencia en memoria")
		registry = syncIdempotency.NewMemoryRegistry()
	}

	// Crear casos de uso
	relayUC := syncUseCase.NewRelayOrderUseCase(orderClient, registry)

	// Crear controladores y registrar rutas
	syncCtrl := syncController.NewSyncController(relayUC)
	syncCtrl.RegisterRoutes(router)
}
