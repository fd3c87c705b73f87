package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")
	ErrInvalidDecrement = errors.New("decrement quantity must be greater than zero")
	ErrQuantityExceeded = errors.New("decrement exceeds available quantity")
)

// Product is a sellable item with a unit price and an available quantity.
// Quantity is mutated only through decrements applied after an order commits.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int32
}

// QuantityDecrement is one (product, quantity) pair of a stock write-back.
type QuantityDecrement struct {
	ProductID string
	Quantity  int32
}

// NewProduct validates the invariants and builds a new Product. The
// identifier is assigned by the repository on save.
func NewProduct(name string, price decimal.Decimal, quantity int32) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return &Product{Name: name, Price: price, Quantity: quantity}, nil
}

// Decrement reduces the available quantity, refusing to drive it negative.
func (p *Product) Decrement(quantity int32) error {
	if quantity <= 0 {
		return ErrInvalidDecrement
	}
	if quantity > p.Quantity {
		return ErrQuantityExceeded
	}
	p.Quantity -= quantity
	return nil
}
