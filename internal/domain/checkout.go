package domain

import (
	"fmt"

	"github.com/nikolayk812/checkout-demo/internal/shipping"
)

type bill struct {
	lines    []ReceiptLine
	subtotal Money
	fee      Money
	total    Money
	shipment shipping.Manifest
}

// Checkout validates the cart against live stock and expiry, charges the
// customer for the subtotal plus shipping and takes the items out of stock.
// Either everything is applied or nothing is: on error no product or customer
// has changed and the cart keeps its items. On success the cart is cleared.
func (c *Cart) Checkout(customer *Customer, asOf Date) (Receipt, error) {
	if c.IsEmpty() {
		return Receipt{}, ErrEmptyCart
	}
	if customer == nil {
		return Receipt{}, fmt.Errorf("%w: customer is nil", ErrInvalidCustomer)
	}

	items := c.Items()
	products := make([]*Product, 0, len(items))
	for _, it := range items {
		products = append(products, it.Product)
	}

	receipt, err := withLocks(customer, products, func() (Receipt, error) {
		b, err := c.price(items, asOf)
		if err != nil {
			return Receipt{}, err
		}

		short, err := customer.balance.LessThan(b.total)
		if err != nil {
			return Receipt{}, fmt.Errorf("customer %s: %w", customer.Name, err)
		}
		if short {
			return Receipt{}, &FundsError{Customer: customer.Name, Required: b.total, Available: customer.balance}
		}

		if err := commit(customer, items, b.total); err != nil {
			return Receipt{}, fmt.Errorf("commit: %w", err)
		}

		return Receipt{
			Customer:    customer.Name,
			Date:        asOf,
			Lines:       b.lines,
			Subtotal:    b.subtotal,
			ShippingFee: b.fee,
			Total:       b.total,
			Balance:     customer.balance,
			Shipment:    b.shipment,
		}, nil
	})
	if err != nil {
		return Receipt{}, err
	}

	c.Clear()
	return receipt, nil
}

// price validates every line and computes the bill. Product locks must be held.
func (c *Cart) price(items []CartItem, asOf Date) (bill, error) {
	var (
		b     = bill{subtotal: Zero(c.currency)}
		units []shipping.Unit
	)

	for _, it := range items {
		p := it.Product

		if p.stock < it.Quantity {
			return bill{}, &StockError{Product: p.Name, Requested: it.Quantity, Available: p.stock, err: ErrOutOfStock}
		}
		if p.IsExpired(asOf) {
			return bill{}, &ExpiredError{Product: p.Name, ExpiresOn: p.Expiry.Date, AsOf: asOf}
		}

		lineTotal := p.Price.Mul(it.Quantity)
		subtotal, err := b.subtotal.Add(lineTotal)
		if err != nil {
			return bill{}, fmt.Errorf("product %s: %w", p.Name, err)
		}
		b.subtotal = subtotal

		b.lines = append(b.lines, ReceiptLine{
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			Total:     lineTotal,
		})

		if p.IsShippable() {
			for range it.Quantity {
				units = append(units, shipping.Unit{Name: p.Name, WeightGrams: p.ShippingWeight()})
			}
		}
	}

	b.shipment = shipping.Aggregate(units)
	b.fee = NewMoney(c.fees.Fee(b.shipment.TotalGrams), c.currency)

	total, err := b.subtotal.Add(b.fee)
	if err != nil {
		return bill{}, err
	}
	b.total = total

	return b, nil
}

// commit debits the customer and decrements stock, undoing applied steps if
// a later one fails. All involved locks must be held.
func commit(customer *Customer, items []CartItem, total Money) error {
	if err := customer.spendLocked(total); err != nil {
		return fmt.Errorf("customer %s: %w", customer.Name, err)
	}

	for i, it := range items {
		if err := it.Product.decrementLocked(it.Quantity, ErrOutOfStock); err != nil {
			for _, done := range items[:i] {
				done.Product.stock += done.Quantity
			}
			customer.refundLocked(total)
			return fmt.Errorf("product %s: %w", it.Product.Name, err)
		}
	}

	return nil
}
