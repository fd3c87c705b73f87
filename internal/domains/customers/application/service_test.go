package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
)

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer
	nextID    int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
}

func (f *fakeCustomerRepo) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	clone := *customer
	if clone.ID == "" {
		f.nextID++
		clone.ID = string(rune('A' + f.nextID))
	}
	f.customers[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	var list []*domain.Customer
	for _, c := range f.customers {
		clone := *c
		list = append(list, &clone)
	}
	return list, nil
}

func TestCreateCustomer_Persists(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	customer, err := svc.CreateCustomer(context.Background(), "Ada Lovelace", "Ada@Example.com")
	require.NoError(t, err)
	require.NotEmpty(t, customer.ID)
	require.Equal(t, "ada@example.com", customer.Email)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), "Another Ada", "ada@example.com")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateCustomer_InvalidInput(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), "", "ada@example.com")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.CreateCustomer(context.Background(), "Ada", "not-an-email")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestGetCustomerByID_Missing(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	_, err := svc.GetCustomerByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
