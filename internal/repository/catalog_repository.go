package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

var ErrNotFound = errors.New("not found")

type catalogRepository struct {
	byID   map[uuid.UUID]*domain.Product
	byName map[string]*domain.Product
}

func NewCatalog(products ...*domain.Product) (port.Catalog, error) {
	r := &catalogRepository{
		byID:   make(map[uuid.UUID]*domain.Product, len(products)),
		byName: make(map[string]*domain.Product, len(products)),
	}

	for _, p := range products {
		if err := r.add(p); err != nil {
			return nil, fmt.Errorf("r.add: %w", err)
		}
	}

	return r, nil
}

func (r *catalogRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("productID is empty")
	}

	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product[%s]: %w", id, ErrNotFound)
	}
	return p, nil
}

func (r *catalogRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("product[%s]: %w", name, ErrNotFound)
	}
	return p, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})

	return products, nil
}

func (r *catalogRepository) add(p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("product is nil")
	}
	if _, ok := r.byID[p.ID]; ok {
		return fmt.Errorf("product[%s] is duplicated", p.ID)
	}
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("product name[%s] is duplicated", p.Name)
	}

	r.byID[p.ID] = p
	r.byName[p.Name] = p
	return nil
}
