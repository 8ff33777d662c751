package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPendingOrder_ComputesTotalFromItems(t *testing.T) {
	items := []PendingOrderItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.NewFromFloat(150.50)},
		{ProductID: "prod-2", Quantity: 1, UnitPrice: decimal.NewFromFloat(80.00)},
	}

	order, err := NewPendingOrder("company-123", items, "Juan Pérez", "juan@example.com", decimal.Zero)
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "company-123", order.CompanyID)
	assert.Equal(t, OriginPDV, order.Origin)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(381.00)))
	assert.Equal(t, 2, order.TotalItems())
	assert.False(t, order.CreatedAt.IsZero())
	assert.Zero(t, order.Attempts)
}

func TestNewPendingOrder_RespectsFrozenTotal(t *testing.T) {
	items := []PendingOrderItem{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromFloat(150.50)},
	}

	// El total informado manda aunque no coincida con la suma de subtotales
	// (descuento aplicado en caja, por ejemplo)
	order, err := NewPendingOrder("company-123", items, "", "", decimal.NewFromFloat(100.00))
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(100.00)))
}

func TestNewPendingOrder_Validations(t *testing.T) {
	items := []PendingOrderItem{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromFloat(150.50)},
	}

	_, err := NewPendingOrder("", items, "", "", decimal.Zero)
	assert.ErrorIs(t, err, ErrCompanyIDRequired)

	_, err = NewPendingOrder("company-123", nil, "", "", decimal.Zero)
	assert.ErrorIs(t, err, ErrOrderMustHaveItems)

	_, err = NewPendingOrder("company-123", items, "", "", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidTotal)
}

func TestNewPendingOrderItem_Validations(t *testing.T) {
	_, err := NewPendingOrderItem("", 1, decimal.NewFromFloat(150.50))
	assert.ErrorIs(t, err, ErrProductIDRequired)

	_, err = NewPendingOrderItem("prod-1", 0, decimal.NewFromFloat(150.50))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewPendingOrderItem("prod-1", 1, decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	item, err := NewPendingOrderItem("prod-1", 3, decimal.NewFromFloat(150.50))
	require.NoError(t, err)
	assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(451.50)))
}

func TestRegisterFailure_OnlyTouchesBookkeeping(t *testing.T) {
	items := []PendingOrderItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.NewFromFloat(150.50)},
	}
	order, err := NewPendingOrder("company-123", items, "", "", decimal.Zero)
	require.NoError(t, err)

	originalTotal := order.Total

	order.RegisterFailure("Estoque insuficiente")
	order.RegisterFailure("Estoque insuficiente")

	assert.Equal(t, 2, order.Attempts)
	assert.Equal(t, "Estoque insuficiente", order.LastError)
	assert.True(t, order.Total.Equal(originalTotal))
	assert.Len(t, order.Items, 1)
}
