package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer registers a new customer, enforcing email uniqueness.
func (s *Service) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(name, email)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}
	return s.repo.Save(ctx, customer)
}

// GetCustomerByID loads a single customer.
func (s *Service) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// ListCustomers exposes all customers for admin use cases.
func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
