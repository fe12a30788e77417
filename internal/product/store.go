package product

import (
	"context"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// Store owns the product catalog. Identifiers are assigned by Create and
// are never reused, even after Delete.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, category string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) (Product, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
