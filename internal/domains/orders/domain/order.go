package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomer      = errors.New("order customer is required")
	ErrNoItems            = errors.New("order must contain at least one line item")
	ErrEmptyProductID     = errors.New("product id is required")
	ErrNonPositiveQty     = errors.New("quantity must be greater than zero")
	ErrDuplicateProductID = errors.New("request contains duplicate product ids")
)

// ItemRequest is one requested (product, quantity) pair of a placement
// request. Callers never supply a price; the stored product price is
// authoritative at order time.
type ItemRequest struct {
	ProductID string
	Quantity  int32
}

// LineItem references a product and snapshots its unit price at order time.
// The product may change independently afterwards; the snapshot must not.
type LineItem struct {
	ProductID string
	Price     decimal.Decimal
	Quantity  int32
}

// Order associates one customer with one or more line items. It is created
// exactly once by the placement workflow and is immutable afterwards.
type Order struct {
	ID         string
	CustomerID string
	Items      []LineItem
	CreatedAt  time.Time
}

// NewOrder validates the invariants and builds an unsaved Order. Identifier
// and creation timestamp are assigned by the order store.
func NewOrder(customerID string, items []LineItem) (*Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrEmptyCustomer
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, ErrEmptyProductID
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("product %q: %w", item.ProductID, ErrNonPositiveQty)
		}
	}
	return &Order{
		CustomerID: customerID,
		Items:      append([]LineItem{}, items...),
	}, nil
}

// Total sums price times quantity over all line items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}

// ValidateRequest checks a placement request before any lookup work runs:
// the customer id must be present, every item needs a product id and a
// positive quantity, and product ids must be distinct. Duplicates are
// rejected rather than merged so each requested line maps 1:1 to a stored
// line item. An empty item list passes here; the workflow reports it
// together with the no-products-resolved case.
func ValidateRequest(customerID string, items []ItemRequest) error {
	if strings.TrimSpace(customerID) == "" {
		return ErrEmptyCustomer
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return ErrEmptyProductID
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("product %q: %w", item.ProductID, ErrNonPositiveQty)
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateProductID, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}
