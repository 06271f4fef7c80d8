// Package render prints shipment notices and receipts as plain text.
package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/shipping"
)

const separator = "---------------------"

// Printer writes to w. It is safe to use as both port.ShipmentSink and
// port.ReceiptSink.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Ship(_ context.Context, manifest shipping.Manifest) error {
	if manifest.IsEmpty() {
		return nil
	}

	pw := &errWriter{w: p.w}

	pw.printf("** Shipment notice **\n")
	for _, parcel := range manifest.Parcels {
		pw.printf("%dx %s\n", parcel.Count, parcel.Name)
		pw.printf("%sg\n", formatWeight(parcel.WeightGrams))
	}
	pw.printf("Total package weight %skg\n", formatWeight(manifest.TotalKilograms()))

	return pw.err
}

func (p *Printer) Issue(_ context.Context, receipt domain.Receipt) error {
	pw := &errWriter{w: p.w}

	pw.printf("** Checkout receipt **\n")
	for _, line := range receipt.Lines {
		pw.printf("%dx %s\n", line.Quantity, line.Name)
		pw.printf("%s\n", line.Total)
	}
	pw.printf("%s\n", separator)

	tw := tabwriter.NewWriter(pw, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Subtotal\t%s\n", receipt.Subtotal)
	fmt.Fprintf(tw, "Shipping\t%s\n", receipt.ShippingFee)
	fmt.Fprintf(tw, "Amount\t%s\n", receipt.Total)
	if err := tw.Flush(); err != nil && pw.err == nil {
		pw.err = err
	}

	pw.printf("%s balance after payment: %s\n", receipt.Customer, receipt.Balance)

	return pw.err
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e, format, args...)
}
