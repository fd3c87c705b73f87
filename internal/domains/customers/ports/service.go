package ports

import (
	"context"

	"github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
)

// Service exposes customer use cases to adapters.
type Service interface {
	CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
}
