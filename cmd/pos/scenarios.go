package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/nikolayk812/checkout-demo/internal/service"
	"go.uber.org/zap"
)

type driver struct {
	ctx    context.Context
	out    io.Writer
	seed   repository.Seed
	svc    *service.Checkout
	cart   *domain.Cart
	asOf   domain.Date
	logger *zap.Logger
}

type scenario struct {
	name string
	run  func(d *driver) error
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "Successful checkout with mixed products",
			run: func(d *driver) error {
				if err := d.addNamed("TV", 1); err != nil {
					return err
				}
				if err := d.addNamed("Biscuits", 2); err != nil {
					return err
				}
				if err := d.addNamed("Scratch Card", 5); err != nil {
					return err
				}
				if err := d.addNamed("Fresh Milk", 1); err != nil {
					return err
				}
				return d.checkout("Alice", "TV", "Biscuits", "Scratch Card", "Fresh Milk")
			},
		},
		{
			name: "Adding more than available quantity",
			run: func(d *driver) error {
				if err := d.addNamed("Mobile", 12); err != nil {
					return err
				}
				return d.checkout("Bob")
			},
		},
		{
			name: "Checkout with insufficient customer balance",
			run: func(d *driver) error {
				if err := d.addNamed("TV", 2); err != nil {
					return err
				}
				return d.checkout("Bob")
			},
		},
		{
			name: "Checkout with an expired product",
			run: func(d *driver) error {
				if err := d.addNamed("Cheese", 1); err != nil {
					return err
				}
				return d.checkout("Charlie")
			},
		},
		{
			name: "Checkout with an empty cart",
			run: func(d *driver) error {
				return d.checkout("Alice")
			},
		},
		{
			name: "Multiple items of the same shippable product",
			run: func(d *driver) error {
				if err := d.addNamed("Heavy Book", 3); err != nil {
					return err
				}
				return d.checkout("Charlie", "Heavy Book")
			},
		},
		{
			name: "Product becomes out of stock before checkout",
			run: func(d *driver) error {
				if err := d.addNamed("Mobile", 5); err != nil {
					return err
				}
				mobile, err := d.seed.Catalog.FindByName(d.ctx, "Mobile")
				if err != nil {
					return fmt.Errorf("catalog.FindByName: %w", err)
				}
				if err := mobile.DecrementStock(6); err != nil {
					return fmt.Errorf("mobile.DecrementStock: %w", err)
				}
				return d.checkout("Alice", "Mobile")
			},
		},
	}
}

func (d *driver) header(name string) {
	d.logger.Debug("running scenario", zap.String("scenario", name), zap.Stringer("as_of", d.asOf))

	fmt.Fprintf(d.out, "\n========================================\n")
	fmt.Fprintf(d.out, "TEST CASE: %s (as of %s)\n", name, d.asOf)
	fmt.Fprintf(d.out, "========================================\n")
}

// addNamed adds a catalog product. Rejections are part of the demo and are
// printed, not returned.
func (d *driver) addNamed(name string, quantity int) error {
	p, err := d.seed.Catalog.FindByName(d.ctx, name)
	if err != nil {
		return fmt.Errorf("catalog.FindByName: %w", err)
	}

	if _, err := d.svc.AddProduct(d.cart, p, quantity); err != nil {
		fmt.Fprintf(d.out, "Error: %v\n", err)
		return nil
	}

	fmt.Fprintf(d.out, "%dx %s added to cart.\n", quantity, p.Name)
	return nil
}

// checkout checks the cart out for the named customer and then reports the
// customer's balance and the stock of the listed products.
func (d *driver) checkout(customerName string, report ...string) error {
	customer, err := d.seed.Customers.FindByName(d.ctx, customerName)
	if err != nil {
		return fmt.Errorf("customers.FindByName: %w", err)
	}

	_, err = d.svc.Checkout(d.ctx, d.cart, customer, d.asOf)
	switch {
	case errors.Is(err, service.ErrDelivery):
		return err
	case err != nil:
		fmt.Fprintf(d.out, "Error: %v\n", err)
	}

	fmt.Fprintf(d.out, "%s's balance: %s\n", customer.Name, customer.Balance())
	for _, name := range report {
		p, err := d.seed.Catalog.FindByName(d.ctx, name)
		if err != nil {
			return fmt.Errorf("catalog.FindByName: %w", err)
		}
		fmt.Fprintf(d.out, "%s quantity after checkout: %d\n", p.Name, p.Stock())
	}

	return nil
}
