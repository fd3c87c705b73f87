package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products and serves the batch lookup/decrement contract
// consumed by the order placement workflow.
//
// FindAllByID returns the subset of the requested ids that exist, without
// failing on an empty or partial result; detecting an incomplete resolution
// is the caller's responsibility. UpdateQuantity resolves products by the
// same id semantics and applies the decrements, so what was validated and
// what gets decremented cannot diverge.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error)
	UpdateQuantity(ctx context.Context, decrements []domain.QuantityDecrement) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
