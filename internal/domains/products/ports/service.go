package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
)

// Service exposes product use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int32) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
