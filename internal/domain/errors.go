package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidProduct    = errors.New("product is not valid")
	ErrInvalidCustomer   = errors.New("customer is not valid")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOutOfStock        = errors.New("out of stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrExpiredProduct    = errors.New("product is expired")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
)

// StockError reports a stock shortfall. It unwraps to ErrInsufficientStock
// or ErrOutOfStock depending on where the shortfall was detected.
type StockError struct {
	Product   string
	Requested int
	Available int

	err error
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: %s requested %d, available %d", e.err, e.Product, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return e.err
}

type FundsError struct {
	Customer  string
	Required  Money
	Available Money
}

func (e *FundsError) Error() string {
	return fmt.Sprintf("%s: %s required %s, available %s", ErrInsufficientFunds, e.Customer, e.Required, e.Available)
}

func (e *FundsError) Unwrap() error {
	return ErrInsufficientFunds
}

type ExpiredError struct {
	Product   string
	ExpiresOn Date
	AsOf      Date
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s: %s expired on %s, checked on %s", ErrExpiredProduct, e.Product, e.ExpiresOn, e.AsOf)
}

func (e *ExpiredError) Unwrap() error {
	return ErrExpiredProduct
}
