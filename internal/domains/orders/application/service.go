package application

import (
	"context"
	"errors"
	"fmt"

	customersports "github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
	productsdomain "github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	productsports "github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
)

// Service orchestrates order placement across the customer, product, and
// order stores.
type Service struct {
	orders    ports.Repository
	products  productsports.Repository
	customers customersports.Repository
}

// NewService wires the placement workflow with its three collaborators.
func NewService(orders ports.Repository, products productsports.Repository, customers customersports.Repository) *Service {
	return &Service{orders: orders, products: products, customers: customers}
}

// PlaceOrder runs the full placement sequence inline: validate, persist the
// order, then decrement stock. If the decrement fails after the order was
// committed, the error is surfaced as ErrStockUpdateFailed; the durable
// workflow path retries the decrement instead of surfacing it.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (*domain.Order, error) {
	order, err := s.PersistOrder(ctx, customerID, items)
	if err != nil {
		return nil, err
	}
	if err := s.DecrementStock(ctx, items); err != nil {
		return nil, fmt.Errorf("%w: order %s: %w", ErrStockUpdateFailed, order.ID, err)
	}
	return order, nil
}

// PersistOrder runs every placement validation and stores the order without
// touching stock. All checks happen before the write, so a failed validation
// leaves no partial state behind.
func (s *Service) PersistOrder(ctx context.Context, customerID string, items []domain.ItemRequest) (*domain.Order, error) {
	if err := domain.ValidateRequest(customerID, items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customersports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrCustomerNotFound, customerID)
		}
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	found, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || len(found) == 0 {
		return nil, ErrNoProducts
	}
	if len(found) != len(items) {
		return nil, fmt.Errorf("%w: requested %d products, resolved %d", ErrProductMismatch, len(items), len(found))
	}

	byID := make(map[string]*productsdomain.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}

	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		var available int32
		product := byID[item.ProductID]
		if product != nil {
			available = product.Quantity
		}
		if available < item.Quantity {
			return nil, fmt.Errorf("%w: product %q has %d, requested %d",
				ErrInsufficientStock, item.ProductID, available, item.Quantity)
		}
		// Snapshot the stored price; callers never supply one.
		lineItems = append(lineItems, domain.LineItem{
			ProductID: product.ID,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	order, err := domain.NewOrder(customer.ID, lineItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.orders.Create(ctx, order)
}

// DecrementStock writes the requested quantities back against product
// storage using the same id-resolution semantics the lookup used.
func (s *Service) DecrementStock(ctx context.Context, items []domain.ItemRequest) error {
	decrements := make([]productsdomain.QuantityDecrement, 0, len(items))
	for _, item := range items {
		decrements = append(decrements, productsdomain.QuantityDecrement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	_, err := s.products.UpdateQuantity(ctx, decrements)
	return err
}

// GetOrderByID loads a single order aggregate.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders exposes all orders for admin use cases.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

var _ ports.Service = (*Service)(nil)
