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
)

// OrderClient cliente HTTP del relay hacia el order-service autoritativo.
// El relay no puede invocar la lógica de creación in-process (corre en otro
// deployment), así que el reenvío siempre es por la red.
type OrderClient struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewOrderClient crea una nueva instancia del cliente
func NewOrderClient() *OrderClient {
	baseURL := os.Getenv("ORDER_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8081" // Default para entorno local
	}

	return &OrderClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		authToken: os.Getenv("ORDER_SERVICE_TOKEN"),
	}
}

// errorMessage es el body estructurado de error del order-service
type errorMessage struct {
	Message string `json:"message"`
}

// Create reenvía el payload opaco de la orden a la operación autoritativa.
// El body viaja tal cual llegó del terminal: el relay no re-arma la orden.
func (c *OrderClient) Create(ctx context.Context, companyID string, orderData json.RawMessage) error {
	url := fmt.Sprintf("%s/api/v1/orders", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(orderData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	// Headers obligatorios
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", companyID)

	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling order-service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}

	// El mensaje del backend viaja tal cual hacia el agente de sync
	var errResp errorMessage
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("%s", errResp.Message)
	}
	return fmt.Errorf("order-service returned status %d: %s", resp.StatusCode, string(body))
}
