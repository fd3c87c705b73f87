package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("customer email is invalid")
)

// Customer is the buyer identity referenced by orders. The order placement
// workflow reads customers and never mutates them.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// NewCustomer validates the invariants and builds a new Customer. The
// identifier is assigned by the repository on save.
func NewCustomer(name, email string) (*Customer, error) {
	c := &Customer{}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.ChangeEmail(email); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename mutates the customer name ensuring the invariant.
func (c *Customer) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// ChangeEmail normalizes and stores the contact address.
func (c *Customer) ChangeEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	return nil
}
