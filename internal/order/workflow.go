package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductNotFoundError aborts order creation when a line item references a
// product the catalog does not know. Items are checked in submission
// order, so the reported id is always the first offending one.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product %s not found", e.ProductID)
}

// UpstreamError reports a Product Service response that is neither a hit
// nor a 404. Its status code is surfaced to the caller unchanged.
type UpstreamError struct {
	ProductID string
	Status    int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Error fetching product %s", e.ProductID)
}

// UnavailableError reports that the Product Service could not be reached
// at all (connection refused, DNS failure, timeout).
type UnavailableError struct {
	ProductID string
	Err       error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Product Service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// placeOrder is the order-creation workflow: validate and price every line
// item against the Product Service, then persist exactly one order.
//
// Items are priced sequentially, in submission order, and the first lookup
// failure aborts the whole call. Nothing is written to the store until
// every item has priced, so a failed call leaves no partial state behind.
func (s *Server) placeOrder(ctx context.Context, customerID string, items []Item) (Order, error) {
	total := decimal.Zero

	for _, it := range items {
		p, err := s.Products.GetProduct(ctx, it.ProductID)
		if err != nil {
			return Order{}, classifyLookupError(it.ProductID, err)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	o := Order{
		CustomerID: customerID,
		Items:      items,
		Total:      total.Round(2),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	return s.Store.Create(ctx, o)
}

func classifyLookupError(productID string, err error) error {
	if errors.Is(err, ErrProductNotFound) {
		return &ProductNotFoundError{ProductID: productID}
	}

	var te *TransportError
	if errors.As(err, &te) {
		return &UnavailableError{ProductID: productID, Err: te.Err}
	}

	var se *StatusError
	if errors.As(err, &se) {
		return &UpstreamError{ProductID: productID, Status: se.Code}
	}

	return err
}
