package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
)

// Service orchestrates product catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a new product, enforcing name uniqueness.
func (s *Service) CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int32) (*domain.Product, error) {
	product, err := domain.NewProduct(name, price, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByName(ctx, product.Name)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}
	return s.repo.Save(ctx, product)
}

// ListProducts exposes the catalog.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
