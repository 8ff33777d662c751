package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"pdv/src/pos/domain/entity"
	"pdv/src/pos/domain/port"
)

// RelayClient cliente HTTP contra el endpoint de sync relay.
// Es el ÚNICO camino de entrega del agente background: el agente nunca invoca
// lógica in-process, siempre habla por la red, incluso corriendo en la misma
// máquina que el relay. Eso mantiene el contrato del relay testeable aparte.
// HITO E - PDV Offline
type RelayClient struct {
	httpClient *http.Client
	relayURL   string
}

// NewRelayClient crea una nueva instancia del cliente
func NewRelayClient() *RelayClient {
	relayURL := os.Getenv("SYNC_RELAY_URL")
	if relayURL == "" {
		relayURL = "http://localhost:8080" // Default para entorno local
	}

	return &RelayClient{
		httpClient: &http.Client{
			// Timeout acotado por intento de sync
			Timeout: 10 * time.Second,
		},
		relayURL: relayURL,
	}
}

// NewRelayClientWithURL crea un cliente apuntando a una URL explícita
func NewRelayClientWithURL(relayURL string) *RelayClient {
	return &RelayClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		relayURL: relayURL,
	}
}

// syncRequest es el body que espera el relay
type syncRequest struct {
	OrderData *entity.PendingOrder `json:"orderData"`
	CompanyID string               `json:"companyId"`
}

// syncResponse es la respuesta del relay (200, 400 y 500 comparten forma)
type syncResponse struct {
	Message string `json:"message"`
}

// Deliver manda una orden encolada al relay para que la reenvíe a la
// operación autoritativa.
// nil = backend aceptó (200); *RejectionError = respuesta de error
// estructurada (400/500); otro error = falla de red (sin respuesta).
func (c *RelayClient) Deliver(ctx context.Context, order *entity.PendingOrder) error {
	reqBody := syncRequest{
		OrderData: order,
		CompanyID: order.CompanyID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("error marshalling sync request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/sync", c.relayURL)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", order.CompanyID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Sin respuesta: falla de red, el ciclo de drenaje aborta
		return fmt.Errorf("error calling sync relay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var relayResp syncResponse
	if err := json.Unmarshal(body, &relayResp); err != nil || relayResp.Message == "" {
		relayResp.Message = fmt.Sprintf("sync relay returned status %d: %s", resp.StatusCode, string(body))
	}
	return &port.RejectionError{Message: relayResp.Message}
}
