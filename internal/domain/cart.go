package domain

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/nikolayk812/checkout-demo/internal/shipping"
	"golang.org/x/text/currency"
)

// Cart collects line items for one shopping session. It is not safe for
// concurrent use; the products and customers it touches are.
type Cart struct {
	currency currency.Unit
	fees     shipping.FeePolicy

	items    map[*Product]int
	products []*Product
}

type CartItem struct {
	Product  *Product
	Quantity int
}

type CartOption func(*Cart)

func WithFeePolicy(policy shipping.FeePolicy) CartOption {
	return func(c *Cart) {
		c.fees = policy
	}
}

func NewCart(unit currency.Unit, opts ...CartOption) *Cart {
	c := &Cart{
		currency: unit,
		fees:     shipping.DefaultFeePolicy(),
		items:    make(map[*Product]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cart) Currency() currency.Unit {
	return c.currency
}

// AddProduct adds quantity units of product and returns the cart's total
// quantity for it. A product whose name is already in the cart is merged onto
// the first instance added under that name. Stock is checked, not reserved.
func (c *Cart) AddProduct(product *Product, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if product == nil {
		return 0, fmt.Errorf("%w: product is nil", ErrInvalidProduct)
	}
	if product.Price.Currency != c.currency {
		return 0, fmt.Errorf("%w: %s is priced in %s, cart is in %s",
			ErrInvalidProduct, product.Name, product.Price.Currency, c.currency)
	}

	registered := c.findProduct(product.Name)
	known := registered != nil
	if !known {
		registered = product
	}

	if available := registered.Stock(); available < quantity {
		return 0, &StockError{
			Product:   registered.Name,
			Requested: quantity,
			Available: available,
			err:       ErrInsufficientStock,
		}
	}

	if !known {
		c.products = append(c.products, product)
	}
	c.items[registered] += quantity
	return c.items[registered], nil
}

// Quantity returns the quantity held for the product registered under name.
func (c *Cart) Quantity(name string) int {
	p := c.findProduct(name)
	if p == nil {
		return 0
	}
	return c.items[p]
}

// Items returns the line items ordered by product name, then ID.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.items))
	for _, p := range c.products {
		if qty := c.items[p]; qty > 0 {
			items = append(items, CartItem{Product: p, Quantity: qty})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Product, items[j].Product
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})

	return items
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	c.items = make(map[*Product]int)
	c.products = nil
}

func (c *Cart) findProduct(name string) *Product {
	for _, p := range c.products {
		if p.Name == name {
			return p
		}
	}
	return nil
}
