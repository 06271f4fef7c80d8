package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

type customerRepository struct {
	byID   map[uuid.UUID]*domain.Customer
	byName map[string]*domain.Customer
}

func NewCustomers(customers ...*domain.Customer) (port.CustomerDirectory, error) {
	r := &customerRepository{
		byID:   make(map[uuid.UUID]*domain.Customer, len(customers)),
		byName: make(map[string]*domain.Customer, len(customers)),
	}

	for _, c := range customers {
		if c == nil {
			return nil, fmt.Errorf("customer is nil")
		}
		if _, ok := r.byID[c.ID]; ok {
			return nil, fmt.Errorf("customer[%s] is duplicated", c.ID)
		}
		if _, ok := r.byName[c.Name]; ok {
			return nil, fmt.Errorf("customer name[%s] is duplicated", c.Name)
		}
		r.byID[c.ID] = c
		r.byName[c.Name] = c
	}

	return r, nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("customerID is empty")
	}

	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("customer[%s]: %w", id, ErrNotFound)
	}
	return c, nil
}

func (r *customerRepository) FindByName(ctx context.Context, name string) (*domain.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("customer[%s]: %w", name, ErrNotFound)
	}
	return c, nil
}
