package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/service"
	"github.com/nikolayk812/checkout-demo/internal/shipping"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

var errorsByName = map[string]error{
	"InvalidQuantity":   domain.ErrInvalidQuantity,
	"InvalidProduct":    domain.ErrInvalidProduct,
	"InsufficientStock": domain.ErrInsufficientStock,
	"OutOfStock":        domain.ErrOutOfStock,
	"EmptyCart":         domain.ErrEmptyCart,
	"ExpiredProduct":    domain.ErrExpiredProduct,
	"InsufficientFunds": domain.ErrInsufficientFunds,
}

// recordingSink keeps everything delivered to it.
type recordingSink struct {
	manifests []shipping.Manifest
	receipts  []domain.Receipt
}

func (s *recordingSink) Ship(_ context.Context, m shipping.Manifest) error {
	s.manifests = append(s.manifests, m)
	return nil
}

func (s *recordingSink) Issue(_ context.Context, r domain.Receipt) error {
	s.receipts = append(s.receipts, r)
	return nil
}

type checkoutTestContext struct {
	products  map[string]*domain.Product
	customers map[string]*domain.Customer
	sink      *recordingSink
	svc       *service.Checkout
	cart      *domain.Cart

	addErr   error
	receipt  domain.Receipt
	checkErr error
}

func (c *checkoutTestContext) reset() error {
	c.products = make(map[string]*domain.Product)
	c.customers = make(map[string]*domain.Customer)
	c.sink = &recordingSink{}
	c.cart = domain.NewCart(currency.USD)
	c.addErr = nil
	c.receipt = domain.Receipt{}
	c.checkErr = nil

	svc, err := service.NewCheckout(c.sink, c.sink, zap.NewNop())
	if err != nil {
		return err
	}
	c.svc = svc
	return nil
}

func (c *checkoutTestContext) aProduct(name string, price, stock int) error {
	return c.addToCatalog(name, price, stock)
}

func (c *checkoutTestContext) aShippableProduct(name string, price, stock int, grams float64) error {
	return c.addToCatalog(name, price, stock, domain.WithShipping(grams))
}

func (c *checkoutTestContext) anExpirableProduct(name string, price, stock int, expires string) error {
	date, err := domain.ParseDate(expires)
	if err != nil {
		return err
	}
	return c.addToCatalog(name, price, stock, domain.WithExpiry(date))
}

func (c *checkoutTestContext) addToCatalog(name string, price, stock int, opts ...domain.ProductOption) error {
	p, err := domain.NewProduct(name, domain.MustMoney(fmt.Sprint(price), currency.USD), stock, opts...)
	if err != nil {
		return err
	}
	c.products[name] = p
	return nil
}

func (c *checkoutTestContext) aCustomer(name string, balance int) error {
	customer, err := domain.NewCustomer(name, domain.MustMoney(fmt.Sprint(balance), currency.USD))
	if err != nil {
		return err
	}
	c.customers[name] = customer
	return nil
}

func (c *checkoutTestContext) iAdd(quantity int, name string) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	_, c.addErr = c.svc.AddProduct(c.cart, p, quantity)
	return nil
}

func (c *checkoutTestContext) soldElsewhere(quantity int, name string) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	return p.DecrementStock(quantity)
}

func (c *checkoutTestContext) checksOut(name, date string) error {
	customer, ok := c.customers[name]
	if !ok {
		return fmt.Errorf("unknown customer %q", name)
	}
	asOf, err := domain.ParseDate(date)
	if err != nil {
		return err
	}
	c.receipt, c.checkErr = c.svc.Checkout(context.Background(), c.cart, customer, asOf)
	return nil
}

func (c *checkoutTestContext) theAddIsRejectedWith(kind string) error {
	return expectError(c.addErr, kind)
}

func (c *checkoutTestContext) theCheckoutSucceeds() error {
	if c.checkErr != nil {
		return fmt.Errorf("expected success but got error: %v", c.checkErr)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWith(kind string) error {
	return expectError(c.checkErr, kind)
}

func (c *checkoutTestContext) theSubtotalIs(want string) error {
	return expectMoney("subtotal", c.receipt.Subtotal, want)
}

func (c *checkoutTestContext) theShippingFeeIs(want string) error {
	return expectMoney("shipping fee", c.receipt.ShippingFee, want)
}

func (c *checkoutTestContext) theTotalIs(want string) error {
	return expectMoney("total", c.receipt.Total, want)
}

func (c *checkoutTestContext) customerHasBalance(name, want string) error {
	customer, ok := c.customers[name]
	if !ok {
		return fmt.Errorf("unknown customer %q", name)
	}
	return expectMoney(name+" balance", customer.Balance(), want)
}

func (c *checkoutTestContext) productHasStock(name string, want int) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	if got := p.Stock(); got != want {
		return fmt.Errorf("%s stock is %d, expected %d", name, got, want)
	}
	return nil
}

func (c *checkoutTestContext) parcelsWereShipped(count int, name string, grams float64) error {
	if len(c.sink.manifests) != 1 {
		return fmt.Errorf("expected 1 shipment notice, got %d", len(c.sink.manifests))
	}
	for _, parcel := range c.sink.manifests[0].Parcels {
		if parcel.Name != name {
			continue
		}
		if parcel.Count != count || parcel.WeightGrams != grams {
			return fmt.Errorf("parcel %s is %dx %gg, expected %dx %gg", name, parcel.Count, parcel.WeightGrams, count, grams)
		}
		return nil
	}
	return fmt.Errorf("no parcel of %s was shipped", name)
}

func (c *checkoutTestContext) nothingWasShipped() error {
	if len(c.sink.manifests) != 0 {
		return fmt.Errorf("expected no shipment notice, got %d", len(c.sink.manifests))
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if !c.cart.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d items", c.cart.Len())
	}
	return nil
}

func expectError(err error, kind string) error {
	want, ok := errorsByName[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if err == nil {
		return fmt.Errorf("expected %s but got no error", kind)
	}
	if !errors.Is(err, want) {
		return fmt.Errorf("expected %s but got: %v", kind, err)
	}
	return nil
}

func expectMoney(label string, got domain.Money, want string) error {
	if !got.Equal(domain.MustMoney(want, currency.USD)) {
		return fmt.Errorf("%s is %s, expected %s", label, got, want)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	// Given steps
	ctx.Step(`^a product "([^"]*)" priced (\d+) with stock (\d+)$`, tc.aProduct)
	ctx.Step(`^a product "([^"]*)" priced (\d+) with stock (\d+) weighing (\d+) grams$`, tc.aShippableProduct)
	ctx.Step(`^a product "([^"]*)" priced (\d+) with stock (\d+) expiring on "([^"]*)"$`, tc.anExpirableProduct)
	ctx.Step(`^a customer "([^"]*)" with balance (\d+)$`, tc.aCustomer)

	// When steps
	ctx.Step(`^I add (-?\d+) of "([^"]*)" to the cart$`, tc.iAdd)
	ctx.Step(`^(\d+) units of "([^"]*)" are sold elsewhere$`, tc.soldElsewhere)
	ctx.Step(`^"([^"]*)" checks out on "([^"]*)"$`, tc.checksOut)

	// Then steps
	ctx.Step(`^the add is rejected with "([^"]*)"$`, tc.theAddIsRejectedWith)
	ctx.Step(`^the checkout succeeds$`, tc.theCheckoutSucceeds)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, tc.theCheckoutFailsWith)
	ctx.Step(`^the subtotal is (\d+(?:\.\d+)?)$`, tc.theSubtotalIs)
	ctx.Step(`^the shipping fee is (\d+(?:\.\d+)?)$`, tc.theShippingFeeIs)
	ctx.Step(`^the total is (\d+(?:\.\d+)?)$`, tc.theTotalIs)
	ctx.Step(`^"([^"]*)" has balance (\d+(?:\.\d+)?)$`, tc.customerHasBalance)
	ctx.Step(`^"([^"]*)" has stock (\d+)$`, tc.productHasStock)
	ctx.Step(`^(\d+) parcels? of "([^"]*)" weighing (\d+) grams (?:was|were) shipped$`, tc.parcelsWereShipped)
	ctx.Step(`^nothing was shipped$`, tc.nothingWasShipped)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
