package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"go.uber.org/zap"
)

// ErrDelivery means the checkout was committed but the shipment notice or the
// receipt could not be delivered.
var ErrDelivery = errors.New("checkout committed, delivery failed")

type Checkout struct {
	shipments port.ShipmentSink
	receipts  port.ReceiptSink
	logger    *zap.Logger
}

func NewCheckout(shipments port.ShipmentSink, receipts port.ReceiptSink, logger *zap.Logger) (*Checkout, error) {
	if shipments == nil {
		return nil, fmt.Errorf("shipments is nil")
	}
	if receipts == nil {
		return nil, fmt.Errorf("receipts is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Checkout{
		shipments: shipments,
		receipts:  receipts,
		logger:    logger,
	}, nil
}

// AddProduct adds to the cart and logs rejected additions.
func (s *Checkout) AddProduct(cart *domain.Cart, product *domain.Product, quantity int) (int, error) {
	total, err := cart.AddProduct(product, quantity)
	if err != nil {
		s.logger.Warn("add to cart rejected", productField(product), zap.Int("quantity", quantity), zap.Error(err))
		return 0, fmt.Errorf("cart.AddProduct: %w", err)
	}

	s.logger.Debug("added to cart", productField(product), zap.Int("quantity", quantity), zap.Int("in_cart", total))
	return total, nil
}

// Checkout runs the cart's checkout and then hands the shipment manifest and
// the receipt to the sinks. An error wrapping ErrDelivery comes with the
// committed receipt.
func (s *Checkout) Checkout(ctx context.Context, cart *domain.Cart, customer *domain.Customer, asOf domain.Date) (domain.Receipt, error) {
	if cart == nil {
		return domain.Receipt{}, fmt.Errorf("cart is nil")
	}

	items := cart.Len()

	receipt, err := cart.Checkout(customer, asOf)
	if err != nil {
		s.logger.Warn("checkout rejected",
			customerField(customer),
			zap.Int("items", items),
			zap.Stringer("as_of", asOf),
			zap.Error(err))
		return domain.Receipt{}, fmt.Errorf("cart.Checkout: %w", err)
	}

	s.logger.Info("checkout committed",
		zap.String("customer", receipt.Customer),
		zap.Int("items", items),
		zap.Int("units", receipt.Quantity()),
		zap.Stringer("subtotal", receipt.Subtotal),
		zap.Stringer("shipping_fee", receipt.ShippingFee),
		zap.Stringer("total", receipt.Total),
		zap.Stringer("balance", receipt.Balance))

	var deliveryErr error

	if !receipt.Shipment.IsEmpty() {
		if err := s.shipments.Ship(ctx, receipt.Shipment); err != nil {
			deliveryErr = errors.Join(deliveryErr, fmt.Errorf("shipments.Ship: %w", err))
		}
	}

	if err := s.receipts.Issue(ctx, receipt); err != nil {
		deliveryErr = errors.Join(deliveryErr, fmt.Errorf("receipts.Issue: %w", err))
	}

	if deliveryErr != nil {
		s.logger.Error("checkout delivery failed", zap.String("customer", receipt.Customer), zap.Error(deliveryErr))
		return receipt, fmt.Errorf("%w: %w", ErrDelivery, deliveryErr)
	}

	return receipt, nil
}

func productField(p *domain.Product) zap.Field {
	if p == nil {
		return zap.Skip()
	}
	return zap.String("product", p.Name)
}

func customerField(c *domain.Customer) zap.Field {
	if c == nil {
		return zap.Skip()
	}
	return zap.String("customer", c.Name)
}
