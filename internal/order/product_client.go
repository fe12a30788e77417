package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the upstream catalog record as the Product Service reports it.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

var ErrProductNotFound = errors.New("product not found")

// StatusError reports an unexpected non-2xx, non-404 response from the
// Product Service. The status code is passed through to the caller.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("product service returned status %d", e.Code)
}

// TransportError reports that the Product Service could not be reached:
// connection refused, DNS failure, timeout. The underlying transport
// error is preserved for the caller's message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("product service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProductClient looks products up over the Product Service HTTP contract.
// One client, and therefore one connection pool, is shared across all
// workflow invocations.
type ProductClient struct {
	BaseURL string
	Client  *http.Client
}

const defaultLookupTimeout = 5 * time.Second

func NewProductClient(baseURL string) *ProductClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &ProductClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: defaultLookupTimeout},
	}
}

func (c *ProductClient) GetProduct(ctx context.Context, id string) (Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s", c.BaseURL, id), nil)
	if err != nil {
		return Product{}, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return Product{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Product{}, ErrProductNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Product{}, &StatusError{Code: resp.StatusCode}
	}

	var p Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Product{}, err
	}
	return p, nil
}
