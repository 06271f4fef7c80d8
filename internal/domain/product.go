package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Expiry marks a product as perishable.
type Expiry struct {
	Date Date
}

// Shipping marks a product as physically shipped, with a per-unit weight in grams.
type Shipping struct {
	WeightGrams float64
}

// Product is a catalog entry with live stock. Expiry and Shipping are
// independent capabilities; either, both or neither may be set.
type Product struct {
	ID       uuid.UUID
	Name     string
	Price    Money
	Expiry   *Expiry
	Shipping *Shipping

	mu    sync.Mutex
	stock int
}

type ProductOption func(*Product)

func WithID(id uuid.UUID) ProductOption {
	return func(p *Product) {
		p.ID = id
	}
}

func WithExpiry(date Date) ProductOption {
	return func(p *Product) {
		p.Expiry = &Expiry{Date: date}
	}
}

func WithShipping(weightGrams float64) ProductOption {
	return func(p *Product) {
		p.Shipping = &Shipping{WeightGrams: weightGrams}
	}
}

func NewProduct(name string, price Money, stock int, opts ...ProductOption) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price %s is negative", ErrInvalidProduct, price)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock %d is negative", ErrInvalidProduct, stock)
	}

	p := &Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
		stock: stock,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.Expiry != nil && p.Expiry.Date.IsZero() {
		return nil, fmt.Errorf("%w: %s has no expiry date", ErrInvalidProduct, name)
	}
	if p.Shipping != nil && p.Shipping.WeightGrams < 0 {
		return nil, fmt.Errorf("%w: %s weight %g is negative", ErrInvalidProduct, name, p.Shipping.WeightGrams)
	}

	return p, nil
}

func MustProduct(name string, price Money, stock int, opts ...ProductOption) *Product {
	p, err := NewProduct(name, price, stock, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Product) Stock() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stock
}

func (p *Product) DecrementStock(amount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.decrementLocked(amount, ErrInsufficientStock)
}

func (p *Product) Restock(amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stock += amount
	return nil
}

func (p *Product) IsExpirable() bool {
	return p.Expiry != nil
}

func (p *Product) IsShippable() bool {
	return p.Shipping != nil
}

// IsExpired reports whether asOf is strictly after the expiry date.
func (p *Product) IsExpired(asOf Date) bool {
	if p.Expiry == nil {
		return false
	}
	return asOf.After(p.Expiry.Date)
}

func (p *Product) ShippingWeight() float64 {
	if p.Shipping == nil {
		return 0
	}
	return p.Shipping.WeightGrams
}

// decrementLocked requires p.mu held.
func (p *Product) decrementLocked(amount int, shortfall error) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if p.stock < amount {
		return &StockError{Product: p.Name, Requested: amount, Available: p.stock, err: shortfall}
	}

	p.stock -= amount
	return nil
}
