package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Invariants(t *testing.T) {
	_, err := NewProduct("", decimal.NewFromInt(10), 5)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("Keyboard", decimal.NewFromInt(-1), 5)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct("Keyboard", decimal.NewFromInt(10), -5)
	require.ErrorIs(t, err, ErrNegativeQuantity)

	product, err := NewProduct("Keyboard", decimal.NewFromFloat(49.90), 5)
	require.NoError(t, err)
	require.Empty(t, product.ID)
	require.True(t, product.Price.Equal(decimal.NewFromFloat(49.90)))
}

func TestProduct_Decrement(t *testing.T) {
	product, err := NewProduct("Keyboard", decimal.NewFromInt(10), 5)
	require.NoError(t, err)

	require.ErrorIs(t, product.Decrement(0), ErrInvalidDecrement)
	require.ErrorIs(t, product.Decrement(-2), ErrInvalidDecrement)
	require.ErrorIs(t, product.Decrement(6), ErrQuantityExceeded)
	require.EqualValues(t, 5, product.Quantity)

	require.NoError(t, product.Decrement(2))
	require.EqualValues(t, 3, product.Quantity)

	require.NoError(t, product.Decrement(3))
	require.EqualValues(t, 0, product.Quantity)
	require.ErrorIs(t, product.Decrement(1), ErrQuantityExceeded)
}
