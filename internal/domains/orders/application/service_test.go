package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	customersdomain "github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
	customersports "github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
	productsdomain "github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	productsports "github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
)

type fakeCustomerRepo struct {
	customers map[string]*customersdomain.Customer
}

func (f *fakeCustomerRepo) Save(_ context.Context, c *customersdomain.Customer) (*customersdomain.Customer, error) {
	clone := *c
	f.customers[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id string) (*customersdomain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, customersports.ErrNotFound
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, _ string) (*customersdomain.Customer, error) {
	return nil, customersports.ErrNotFound
}

func (f *fakeCustomerRepo) List(_ context.Context) ([]*customersdomain.Customer, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products   map[string]*productsdomain.Product
	writeCalls int
	updateErr  error
}

func (f *fakeProductRepo) Save(_ context.Context, p *productsdomain.Product) (*productsdomain.Product, error) {
	clone := *p
	f.products[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeProductRepo) FindByName(_ context.Context, _ string) (*productsdomain.Product, error) {
	return nil, productsports.ErrNotFound
}

func (f *fakeProductRepo) FindAllByID(_ context.Context, ids []string) ([]*productsdomain.Product, error) {
	var found []*productsdomain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			clone := *p
			found = append(found, &clone)
		}
	}
	return found, nil
}

func (f *fakeProductRepo) UpdateQuantity(_ context.Context, decrements []productsdomain.QuantityDecrement) ([]*productsdomain.Product, error) {
	f.writeCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	var affected []*productsdomain.Product
	for _, d := range decrements {
		p, ok := f.products[d.ProductID]
		if !ok {
			return nil, productsports.ErrNotFound
		}
		if err := p.Decrement(d.Quantity); err != nil {
			return nil, err
		}
		clone := *p
		affected = append(affected, &clone)
	}
	return affected, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*productsdomain.Product, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	orders     map[string]*domain.Order
	writeCalls int
	nextID     int
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.writeCalls++
	f.nextID++
	clone := *order
	clone.ID = fmt.Sprintf("order-%d", f.nextID)
	clone.CreatedAt = time.Now().UTC()
	clone.Items = append([]domain.LineItem{}, order.Items...)
	stored := clone
	f.orders[clone.ID] = &stored
	return &clone, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, o := range f.orders {
		clone := *o
		list = append(list, &clone)
	}
	return list, nil
}

type fixture struct {
	svc       *Service
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
}

func newFixture() *fixture {
	orders := &fakeOrderRepo{orders: map[string]*domain.Order{}}
	products := &fakeProductRepo{products: map[string]*productsdomain.Product{}}
	customers := &fakeCustomerRepo{customers: map[string]*customersdomain.Customer{}}
	return &fixture{
		svc:       NewService(orders, products, customers),
		orders:    orders,
		products:  products,
		customers: customers,
	}
}

func (f *fixture) seedCustomer(id string) {
	f.customers.customers[id] = &customersdomain.Customer{ID: id, Name: "Customer " + id, Email: id + "@example.com"}
}

func (f *fixture) seedProduct(id string, price float64, quantity int32) {
	f.products.products[id] = &productsdomain.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromFloat(price),
		Quantity: quantity,
	}
}

func (f *fixture) assertNoWrites(t *testing.T) {
	t.Helper()
	require.Zero(t, f.orders.writeCalls, "no order writes expected")
	require.Zero(t, f.products.writeCalls, "no stock writes expected")
}

func TestPlaceOrder_CustomerNotFound(t *testing.T) {
	f := newFixture()
	f.seedProduct("P1", 10.0, 5)

	_, err := f.svc.PlaceOrder(context.Background(), "missing", []domain.ItemRequest{{ProductID: "P1", Quantity: 1}})
	require.ErrorIs(t, err, ErrCustomerNotFound)
	f.assertNoWrites(t)
}

func TestPlaceOrder_EmptyRequest(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")

	_, err := f.svc.PlaceOrder(context.Background(), "C1", nil)
	require.ErrorIs(t, err, ErrNoProducts)
	f.assertNoWrites(t)
}

func TestPlaceOrder_NoProductsResolved(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")

	_, err := f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{
		{ProductID: "ghost-1", Quantity: 1},
		{ProductID: "ghost-2", Quantity: 2},
	})
	require.ErrorIs(t, err, ErrNoProducts)
	f.assertNoWrites(t)
}

func TestPlaceOrder_PartialResolutionMismatch(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)

	_, err := f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	require.ErrorIs(t, err, ErrProductMismatch)
	f.assertNoWrites(t)
}

func TestPlaceOrder_InsufficientStock_FirstViolationReported(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 1)
	f.seedProduct("P2", 5.0, 100)

	// P2 alone would be satisfiable; the P1 violation is reported first and
	// aborts before any write.
	_, err := f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Contains(t, err.Error(), "P1")
	f.assertNoWrites(t)
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)

	_, err := f.svc.PlaceOrder(context.Background(), "", []domain.ItemRequest{{ProductID: "P1", Quantity: 1}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyCustomer)

	_, err = f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{{ProductID: "P1", Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNonPositiveQty)

	_, err = f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P1", Quantity: 2},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrDuplicateProductID)

	f.assertNoWrites(t)
}

func TestPlaceOrder_RoundTrip(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)

	order, err := f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{{ProductID: "P1", Quantity: 2}})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "C1", order.CustomerID)
	require.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Items, 1)
	require.Equal(t, "P1", order.Items[0].ProductID)
	require.True(t, order.Items[0].Price.Equal(decimal.NewFromFloat(10.0)))
	require.EqualValues(t, 2, order.Items[0].Quantity)

	remaining, err := f.products.FindAllByID(context.Background(), []string{"P1"})
	require.NoError(t, err)
	require.EqualValues(t, 3, remaining[0].Quantity)
}

func TestPlaceOrder_NotIdempotent(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)

	items := []domain.ItemRequest{{ProductID: "P1", Quantity: 2}}
	first, err := f.svc.PlaceOrder(context.Background(), "C1", items)
	require.NoError(t, err)
	second, err := f.svc.PlaceOrder(context.Background(), "C1", items)
	require.NoError(t, err)

	// Two identical calls are two distinct orders and decrement stock twice.
	require.NotEqual(t, first.ID, second.ID)
	remaining, err := f.products.FindAllByID(context.Background(), []string{"P1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, remaining[0].Quantity)
}

func TestPlaceOrder_PriceSnapshotIsAuthoritative(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)

	order, err := f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{{ProductID: "P1", Quantity: 1}})
	require.NoError(t, err)

	// A later price change must not leak into the stored line item.
	f.products.products["P1"].Price = decimal.NewFromFloat(99.99)
	stored, err := f.svc.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, stored.Items[0].Price.Equal(decimal.NewFromFloat(10.0)))
}

func TestPlaceOrder_StockUpdateFailureAfterCommit(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)
	f.products.updateErr = errors.New("connection reset")

	_, err := f.svc.PlaceOrder(context.Background(), "C1", []domain.ItemRequest{{ProductID: "P1", Quantity: 2}})
	require.ErrorIs(t, err, ErrStockUpdateFailed)

	// The order stands even though the decrement never landed.
	require.Equal(t, 1, f.orders.writeCalls)
	orders, listErr := f.svc.ListOrders(context.Background())
	require.NoError(t, listErr)
	require.Len(t, orders, 1)
}

func TestPersistOrder_DoesNotTouchStock(t *testing.T) {
	f := newFixture()
	f.seedCustomer("C1")
	f.seedProduct("P1", 10.0, 5)

	order, err := f.svc.PersistOrder(context.Background(), "C1", []domain.ItemRequest{{ProductID: "P1", Quantity: 2}})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Zero(t, f.products.writeCalls)

	require.NoError(t, f.svc.DecrementStock(context.Background(), []domain.ItemRequest{{ProductID: "P1", Quantity: 2}}))
	remaining, err := f.products.FindAllByID(context.Background(), []string{"P1"})
	require.NoError(t, err)
	require.EqualValues(t, 3, remaining[0].Quantity)
}

func TestGetOrderByID_Missing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetOrderByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
