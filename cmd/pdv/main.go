package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	posUseCase "pdv/src/pos/application/usecase"
	posAgent "pdv/src/pos/infrastructure/agent"
	posClient "pdv/src/pos/infrastructure/client"
	posConnectivity "pdv/src/pos/infrastructure/connectivity"
	posController "pdv/src/pos/infrastructure/controller"
	posStore "pdv/src/pos/infrastructure/store"
	sharedConfig "pdv/src/shared/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("🚀 PDV Terminal - Iniciando...")

	// Cargar variables de entorno (.env opcional)
	sharedConfig.Load()

	// Tenant del terminal: obligatorio, enruta las órdenes a la partición correcta
	companyID := os.Getenv("COMPANY_ID")
	if companyID == "" {
		log.Fatal("❌ COMPANY_ID no configurado. El terminal no puede operar sin tenant.")
	}

	// ========================================================================
	// 1. STORAGE LOCAL DURABLE (cola de pendientes + réplica del catálogo)
	// ========================================================================
	storePath := sharedConfig.GetEnv("PDV_STORE_PATH", "./pdv-data")
	localStore, err := posStore.NewBadgerStore(storePath)
	if err != nil {
		log.Fatalf("❌ No se pudo abrir el storage local en %s: %v", storePath, err)
	}
	defer localStore.Close()

	// ========================================================================
	// 2. MONITOR DE CONECTIVIDAD
	// ========================================================================
	pollInterval := time.Duration(sharedConfig.GetEnvInt("CONNECTIVITY_POLL_SECONDS", 5)) * time.Second
	monitor := posConnectivity.NewInterfaceMonitor(pollInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	monitor.Start(ctx)
	defer monitor.Stop()

	// ========================================================================
	// 3. CLIENTES HTTP (directo al order-service y al sync relay)
	// ========================================================================
	orderService := posClient.NewOrderServiceClient()
	relay := posClient.NewRelayClient()

	// ========================================================================
	// 4. CASOS DE USO
	// ========================================================================
	submitUC := posUseCase.NewSubmitOrderUseCase(localStore, orderService, monitor, companyID)

	// Reconciliación foreground: drena directo contra el backend al volver online
	reconcileUC := posUseCase.NewReconcilePendingUseCase(localStore, orderService)
	reconcileUC.Subscribe(monitor)

	// Refresh oportunista del catálogo local
	refreshUC := posUseCase.NewRefreshCatalogUseCase(localStore, orderService, companyID)
	refreshUC.Subscribe(monitor)

	// ========================================================================
	// 5. AGENTE DE SYNC BACKGROUND (habla SOLO con el relay, por la red)
	// ========================================================================
	syncAgent := posAgent.NewSyncAgent(localStore, relay)
	syncAgent.Subscribe(monitor)
	syncAgent.Start(ctx)
	defer syncAgent.Stop()

	// La plataforma entrega la señal de sync como SIGUSR1; equivale al tag
	// registrado por la aplicación foreground
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1)
	go func() {
		for range sigs {
			log.Printf("📨 Señal %q recibida, despertando al agente", posAgent.SyncTag)
			syncAgent.Notify()
		}
	}()

	// Si arrancamos online con backlog de un apagón anterior, drenar ya
	syncAgent.Notify()

	// ========================================================================
	// 6. SUPERFICIE HTTP DEL TERMINAL (la ventana del punto de venta)
	// ========================================================================
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":       "ok",
			"service":      "pdv-terminal",
			"connectivity": string(monitor.CurrentState()),
		})
	})

	v1 := router.Group("/api/v1")
	pdvCtrl := posController.NewPDVController(submitUC, reconcileUC, localStore, syncAgent)
	pdvCtrl.RegisterRoutes(v1)

	port := sharedConfig.GetEnv("PDV_PORT", "8090")
	log.Printf("✅ Terminal PDV iniciado en http://localhost:%s (tenant %s)", port, companyID)
	router.Run(":" + port)
}
