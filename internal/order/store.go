package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Totals go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Items      []Item          `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"
)

// ValidStatuses is the full order status set. Any status may follow any
// other; there is no transition graph.
var ValidStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCanceled,
}

func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Store owns created orders. Identifiers are assigned by Create,
// sequentially from "1", and are never reused. Orders are never deleted.
type Store interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id string) (Order, bool, error)
	List(ctx context.Context, customerID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
