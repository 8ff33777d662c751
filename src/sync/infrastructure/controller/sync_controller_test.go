package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdv/src/sync/application/usecase"
	"pdv/src/sync/infrastructure/idempotency"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCreator simula la operación autoritativa de creación de órdenes
type fakeCreator struct {
	created []json.RawMessage
	tenants []string
	err     error
}

func (f *fakeCreator) Create(_ context.Context, companyID string, orderData json.RawMessage) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, orderData)
	f.tenants = append(f.tenants, companyID)
	return nil
}

func setupRouter(creator *fakeCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	relayUC := usecase.NewRelayOrderUseCase(creator, idempotency.NewMemoryRegistry())
	syncController := NewSyncController(relayUC)

	router := gin.New()
	api := router.Group("/api/v1")
	syncController.RegisterRoutes(api)
	return router
}

func postSync(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/sync", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["message"]
}

func TestSyncOrder_ForwardsToBackend(t *testing.T) {
	creator := &fakeCreator{}
	router := setupRouter(creator)

	w := postSync(router, `{"orderData": {"order_number": "order-1", "total": "301.00"}, "companyId": "company-123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order synchronized", responseMessage(t, w))
	require.Len(t, creator.created, 1)
	assert.Equal(t, "company-123", creator.tenants[0])
	// El payload viaja opaco, sin reinterpretar
	assert.JSONEq(t, `{"order_number": "order-1", "total": "301.00"}`, string(creator.created[0]))
}

func TestSyncOrder_MissingOrderData(t *testing.T) {
	router := setupRouter(&fakeCreator{})

	w := postSync(router, `{"companyId": "company-123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "orderData is required", responseMessage(t, w))
}

func TestSyncOrder_MissingCompanyID(t *testing.T) {
	router := setupRouter(&fakeCreator{})

	w := postSync(router, `{"orderData": {"order_number": "order-1"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "companyId is required", responseMessage(t, w))
}

func TestSyncOrder_TenantHeaderFallback(t *testing.T) {
	creator := &fakeCreator{}
	router := setupRouter(creator)

	req := httptest.NewRequest("POST", "/api/v1/sync", bytes.NewBufferString(`{"orderData": {"order_number": "order-1"}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", "company-456")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, creator.tenants, 1)
	assert.Equal(t, "company-456", creator.tenants[0])
}

func TestSyncOrder_BackendErrorTravelsInBody(t *testing.T) {
	creator := &fakeCreator{err: errors.New("Estoque insuficiente")}
	router := setupRouter(creator)

	w := postSync(router, `{"orderData": {"order_number": "order-1"}, "companyId": "company-123"}`)

	// El mensaje de negocio del backend viaja tal cual para que el agente
	// lo anote en la orden encolada
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Estoque insuficiente", responseMessage(t, w))
}

func TestSyncOrder_DuplicateShortCircuits(t *testing.T) {
	creator := &fakeCreator{}
	router := setupRouter(creator)

	body := `{"orderData": {"order_number": "order-1"}, "companyId": "company-123"}`

	w := postSync(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	// Reintento del mismo order_number (agente y reconciliación foreground
	// pueden pisarse): éxito sin tocar el backend de nuevo
	w = postSync(router, body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order already synchronized", responseMessage(t, w))
	assert.Len(t, creator.created, 1)
}

func TestSyncOrder_SameOrderNumberDifferentTenant(t *testing.T) {
	creator := &fakeCreator{}
	router := setupRouter(creator)

	w := postSync(router, `{"orderData": {"order_number": "order-1"}, "companyId": "company-123"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// La dedup es por tenant: mismo order_number en otro tenant no colisiona
	w = postSync(router, `{"orderData": {"order_number": "order-1"}, "companyId": "company-999"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, creator.created, 2)
}
