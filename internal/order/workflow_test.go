package order

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newUpstream serves the Product Service lookup contract from a fixed
// id -> price table.
func newUpstream(t *testing.T, prices map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/products/")
		price, ok := prices[id]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail":"Product not found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"name":"Product %s","price":%s,"category":"Test"}`, id, id, price)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newWorkflowServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()

	return &Server{
		Store:    NewMemStore(),
		Products: NewProductClient(upstreamURL),
		Log:      zap.NewNop(),
	}
}

func TestPlaceOrder_TotalIsSumOfLineItems(t *testing.T) {
	ts := newUpstream(t, map[string]string{"1": "9.99", "2": "29.99"})
	s := newWorkflowServer(t, ts.URL)

	o, err := s.placeOrder(context.Background(), "alice", []Item{
		{ProductID: "1", Quantity: 3},
		{ProductID: "2", Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "1", o.ID)
	assert.Equal(t, "alice", o.CustomerID)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("59.96")), "total=%s", o.Total)
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, "UTC", o.CreatedAt.Location().String())
}

func TestPlaceOrder_TotalRoundedToTwoDecimals(t *testing.T) {
	ts := newUpstream(t, map[string]string{"1": "0.335"})
	s := newWorkflowServer(t, ts.URL)

	o, err := s.placeOrder(context.Background(), "alice", []Item{{ProductID: "1", Quantity: 3}})
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(decimal.RequireFromString("1.01")), "total=%s", o.Total)
}

func TestPlaceOrder_SequentialIDs(t *testing.T) {
	ts := newUpstream(t, map[string]string{"1": "9.99"})
	s := newWorkflowServer(t, ts.URL)

	for i, want := range []string{"1", "2", "3"} {
		o, err := s.placeOrder(context.Background(), "alice", []Item{{ProductID: "1", Quantity: i + 1}})
		require.NoError(t, err)
		assert.Equal(t, want, o.ID)
	}
}

func TestPlaceOrder_FirstUnknownProductWins(t *testing.T) {
	ts := newUpstream(t, map[string]string{"1": "9.99"})
	s := newWorkflowServer(t, ts.URL)

	_, err := s.placeOrder(context.Background(), "alice", []Item{
		{ProductID: "1", Quantity: 1},
		{ProductID: "998", Quantity: 1},
		{ProductID: "999", Quantity: 1},
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "998", notFound.ProductID)

	// A failed workflow call persists nothing.
	orders, lerr := s.Store.List(context.Background(), "")
	require.NoError(t, lerr)
	assert.Empty(t, orders)
}

func TestPlaceOrder_UpstreamStatusPassthrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	s := newWorkflowServer(t, ts.URL)

	_, err := s.placeOrder(context.Background(), "alice", []Item{{ProductID: "1", Quantity: 1}})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
	assert.Equal(t, "1", upstream.ProductID)
}

func TestPlaceOrder_UpstreamUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	s := newWorkflowServer(t, url)

	_, err := s.placeOrder(context.Background(), "alice", []Item{{ProductID: "1", Quantity: 1}})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Error(), "Product Service unavailable:")
	require.Error(t, unavailable.Err)

	orders, lerr := s.Store.List(context.Background(), "")
	require.NoError(t, lerr)
	assert.Empty(t, orders)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	ts := newUpstream(t, nil)
	s := newWorkflowServer(t, ts.URL)

	o, err := s.placeOrder(context.Background(), "alice", []Item{})
	require.NoError(t, err)

	assert.True(t, o.Total.IsZero())
	assert.Equal(t, StatusPending, o.Status)
}
