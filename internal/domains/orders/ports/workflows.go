package ports

import (
	"context"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable placement for the orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (*domain.Order, error)
}
