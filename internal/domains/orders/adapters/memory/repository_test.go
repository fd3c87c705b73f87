package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
)

func TestRepository_CreateAssignsIdentity(t *testing.T) {
	repo := NewRepository()

	order, err := domain.NewOrder("C1", []domain.LineItem{
		{ProductID: "P1", Price: decimal.NewFromFloat(10.0), Quantity: 2},
	})
	require.NoError(t, err)

	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	loaded, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.CustomerID, loaded.CustomerID)
	require.Len(t, loaded.Items, 1)

	// Mutating the returned aggregate must not reach the stored copy.
	loaded.Items[0].Quantity = 99
	again, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, again.Items[0].Quantity)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository()
	for _, customer := range []string{"C1", "C2"} {
		order, err := domain.NewOrder(customer, []domain.LineItem{
			{ProductID: "P1", Price: decimal.NewFromInt(1), Quantity: 1},
		})
		require.NoError(t, err)
		_, err = repo.Create(context.Background(), order)
		require.NoError(t, err)
	}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
}
