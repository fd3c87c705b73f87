package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.Name == name {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

// FindAllByID returns the subset of ids present in the store. A partial or
// empty result is not an error here; callers own the completeness check.
func (r *Repository) FindAllByID(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			clone := *product
			found = append(found, &clone)
		}
	}
	return found, nil
}

// UpdateQuantity applies all decrements atomically under the store lock:
// every product is resolved and checked before any quantity is written.
func (r *Repository) UpdateQuantity(_ context.Context, decrements []domain.QuantityDecrement) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make([]*domain.Product, 0, len(decrements))
	for _, d := range decrements {
		product, ok := r.products[d.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ports.ErrNotFound, d.ProductID)
		}
		clone := *product
		if err := clone.Decrement(d.Quantity); err != nil {
			return nil, fmt.Errorf("product %q: %w", d.ProductID, err)
		}
		staged = append(staged, &clone)
	}

	affected := make([]*domain.Product, 0, len(staged))
	for _, product := range staged {
		r.products[product.ID] = product
		clone := *product
		affected = append(affected, &clone)
	}
	return affected, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}
