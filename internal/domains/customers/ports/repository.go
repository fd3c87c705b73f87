package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

// Repository persists customers. FindByID is the lookup contract consumed by
// the order placement workflow; it has no side effects.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}
