package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var orderNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleLines() []CartLine {
	return []CartLine{
		{ProductID: 1, UnitPrice: dec("19.99"), Quantity: 2},
		{ProductID: 2, UnitPrice: dec("5.00"), Quantity: 1},
	}
}

func TestSubtotal(t *testing.T) {
	assert.True(t, dec("44.98").Equal(Subtotal(sampleLines())))
	assert.True(t, Subtotal(nil).IsZero())
}

func TestNewOrder(t *testing.T) {
	promoID := int64(7)
	order, err := NewOrder(100, sampleLines(), dec("4.98"), &promoID, orderNow)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, int64(100), order.UserID)
	assert.Equal(t, StatusPending, order.Status)
	assert.True(t, dec("44.98").Equal(order.Subtotal))
	assert.True(t, dec("4.98").Equal(order.DiscountAmount))
	assert.True(t, dec("40.00").Equal(order.TotalAmount))
	require.NotNil(t, order.PromotionID)
	assert.Equal(t, int64(7), *order.PromotionID)
	assert.Equal(t, orderNow, order.CreatedAt)
	assert.Equal(t, orderNow, order.UpdatedAt)

	require.Len(t, order.Lines, 2)
	for i, l := range order.Lines {
		assert.Equal(t, order.ID, l.OrderID)
		assert.Equal(t, sampleLines()[i].ProductID, l.ProductID)
		assert.Equal(t, sampleLines()[i].Quantity, l.Quantity)
		assert.True(t, sampleLines()[i].UnitPrice.Equal(l.UnitPriceAtPurchase))
	}
}

func TestNewOrder_EmptyCart(t *testing.T) {
	_, err := NewOrder(100, nil, decimal.Zero, nil, orderNow)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewOrder_InvalidLines(t *testing.T) {
	_, err := NewOrder(100, []CartLine{{ProductID: 1, UnitPrice: dec("1.00"), Quantity: 0}}, decimal.Zero, nil, orderNow)
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = NewOrder(100, []CartLine{{ProductID: 1, UnitPrice: dec("-1.00"), Quantity: 1}}, decimal.Zero, nil, orderNow)
	assert.ErrorIs(t, err, ErrInvalidLine)
}

func TestNewOrder_DiscountIsBounded(t *testing.T) {
	// 折扣超过小计时收敛到小计，总额不会为负
	order, err := NewOrder(100, sampleLines(), dec("999"), nil, orderNow)
	require.NoError(t, err)
	assert.True(t, order.DiscountAmount.Equal(order.Subtotal))
	assert.True(t, order.TotalAmount.IsZero())

	// 负折扣视为零
	order, err = NewOrder(100, sampleLines(), dec("-5"), nil, orderNow)
	require.NoError(t, err)
	assert.True(t, order.DiscountAmount.IsZero())
	assert.True(t, order.TotalAmount.Equal(order.Subtotal))
}

func TestNewOrder_UniqueIDs(t *testing.T) {
	a, err := NewOrder(100, sampleLines(), decimal.Zero, nil, orderNow)
	require.NoError(t, err)
	b, err := NewOrder(100, sampleLines(), decimal.Zero, nil, orderNow)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
