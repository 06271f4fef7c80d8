package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/shipping"
)

type Catalog interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type CustomerDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	FindByName(ctx context.Context, name string) (*domain.Customer, error)
}

type ShipmentSink interface {
	Ship(ctx context.Context, manifest shipping.Manifest) error
}

type ReceiptSink interface {
	Issue(ctx context.Context, receipt domain.Receipt) error
}
