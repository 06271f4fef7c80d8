package domain

import (
	"github.com/nikolayk812/checkout-demo/internal/shipping"
)

type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice Money
	Total     Money
}

// Receipt is the outcome of a committed checkout.
type Receipt struct {
	Customer string
	Date     Date
	Lines    []ReceiptLine

	Subtotal    Money
	ShippingFee Money
	Total       Money
	Balance     Money

	Shipment shipping.Manifest
}

func (r Receipt) Quantity() int {
	var n int
	for _, l := range r.Lines {
		n += l.Quantity
	}
	return n
}
