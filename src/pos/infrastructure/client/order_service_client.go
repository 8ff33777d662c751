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

// OrderServiceClient cliente HTTP directo contra el order-service autoritativo.
// Es el camino de entrega del submit online y de la reconciliación foreground
// (sin pasar por el relay). También refresca la réplica local del catálogo.
// HITO E - PDV Offline
type OrderServiceClient struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewOrderServiceClient crea una nueva instancia del cliente
func NewOrderServiceClient() *OrderServiceClient {
	baseURL := os.Getenv("ORDER_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8081" // Default para entorno local
	}

	return &OrderServiceClient{
		httpClient: &http.Client{
			// Timeout acotado por intento: pasado este límite el intento se
			// trata como falla de red y el ciclo de drenaje aborta.
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

// Deliver entrega una orden a la operación autoritativa de creación.
// nil = aceptada; *RejectionError = el backend respondió con error de negocio;
// otro error = falla de red (sin respuesta).
func (c *OrderServiceClient) Deliver(ctx context.Context, order *entity.PendingOrder) error {
	jsonData, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("error marshalling order: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/orders", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	// Headers obligatorios
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", order.CompanyID)

	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Sin respuesta del otro lado: falla de red
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

	// El backend respondió con error: rechazo de negocio, NO falla de red
	var errResp errorMessage
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		errResp.Message = fmt.Sprintf("order-service returned status %d: %s", resp.StatusCode, string(body))
	}
	return &port.RejectionError{Message: errResp.Message}
}

// FetchProducts trae el catálogo del tenant para la réplica local
func (c *OrderServiceClient) FetchProducts(ctx context.Context, companyID string) ([]*entity.ProductCacheEntry, error) {
	url := fmt.Sprintf("%s/api/v1/products", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("X-Tenant-ID", companyID)

	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling order-service /products: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order-service /products returned status %d: %s", resp.StatusCode, string(body))
	}

	var products []*entity.ProductCacheEntry
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("error unmarshalling products: %w", err)
	}

	return products, nil
}
