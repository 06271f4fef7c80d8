package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Customer struct {
	ID   uuid.UUID
	Name string

	mu      sync.Mutex
	balance Money
}

func NewCustomer(name string, balance Money) (*Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidCustomer)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s is negative", ErrInvalidCustomer, balance)
	}

	return &Customer{
		ID:      uuid.New(),
		Name:    name,
		balance: balance,
	}, nil
}

func MustCustomer(name string, balance Money) *Customer {
	c, err := NewCustomer(name, balance)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Customer) Balance() Money {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.balance
}

func (c *Customer) TrySpend(amount Money) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.spendLocked(amount)
}

func (c *Customer) Deposit(amount Money) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	balance, err := c.balance.Add(amount)
	if err != nil {
		return err
	}
	c.balance = balance
	return nil
}

// spendLocked requires c.mu held.
func (c *Customer) spendLocked(amount Money) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	short, err := c.balance.LessThan(amount)
	if err != nil {
		return err
	}
	if short {
		return &FundsError{Customer: c.Name, Required: amount, Available: c.balance}
	}

	balance, err := c.balance.Sub(amount)
	if err != nil {
		return err
	}
	c.balance = balance
	return nil
}

// refundLocked requires c.mu held.
func (c *Customer) refundLocked(amount Money) {
	if balance, err := c.balance.Add(amount); err == nil {
		c.balance = balance
	}
}
