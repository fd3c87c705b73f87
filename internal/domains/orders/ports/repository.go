package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository durably stores order aggregates. Create assigns the identifier
// and creation timestamp and returns the stored representation; orders are
// never updated or deleted through this port.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
