package valueobject_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/domain/valueobject"
)

func TestNewLineItem_Valid(t *testing.T) {
	productID := uuid.New()
	price := decimal.NewFromInt(250)

	item, err := valueobject.NewLineItem(productID, price, 4)
	require.NoError(t, err)

	assert.Equal(t, productID, item.ProductID())
	assert.True(t, item.UnitPrice().Equal(price))
	assert.Equal(t, 4, item.Quantity())
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(1000)))
}

func TestNewLineItem_NilProduct(t *testing.T) {
	_, err := valueobject.NewLineItem(uuid.Nil, decimal.NewFromInt(10), 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "product ID is required")
}

func TestNewLineItem_NegativePrice(t *testing.T) {
	_, err := valueobject.NewLineItem(uuid.New(), decimal.NewFromInt(-5), 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unit price cannot be negative")
}

func TestNewLineItem_ZeroQuantity(t *testing.T) {
	_, err := valueobject.NewLineItem(uuid.New(), decimal.NewFromInt(5), 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be positive")
}

func TestNewLineItem_FractionalPrice(t *testing.T) {
	price := decimal.RequireFromString("19.99")

	item, err := valueobject.NewLineItem(uuid.New(), price, 3)
	require.NoError(t, err)

	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestTotalOf(t *testing.T) {
	itemA, err := valueobject.NewLineItem(uuid.New(), decimal.NewFromInt(100), 2)
	require.NoError(t, err)
	itemB, err := valueobject.NewLineItem(uuid.New(), decimal.NewFromInt(75), 4)
	require.NoError(t, err)

	total := valueobject.TotalOf([]valueobject.LineItem{itemA, itemB})
	assert.True(t, total.Equal(decimal.NewFromInt(500)))
}

func TestTotalOf_Empty(t *testing.T) {
	assert.True(t, valueobject.TotalOf(nil).IsZero())
}
