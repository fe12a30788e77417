package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shoplite/pkg/kit"
)

const maxCreateBody = 1 << 20

type Server struct {
	Store    Store
	Products *ProductClient
	Log      *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		kit.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "order-service",
		})
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/orders", s.create)
	r.Get("/orders", s.list)
	r.Get("/orders/{id}", s.get)
	r.Patch("/orders/{id}/status", s.updateStatus)

	return r
}

// createReq distinguishes a missing items field (rejected) from an empty
// items array (an order with total 0, matching upstream behavior).
type createReq struct {
	CustomerID string  `json:"customer_id"`
	Items      *[]Item `json:"items"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	defer func() { _ = r.Body.Close() }()

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json")
		return
	}
	if req.CustomerID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "customer_id is required")
		return
	}
	if req.Items == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "items is required")
		return
	}

	o, err := s.placeOrder(r.Context(), req.CustomerID, *req.Items)
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *ProductNotFoundError
	if errors.As(err, &notFound) {
		kit.WriteError(w, r, http.StatusNotFound, notFound.Error())
		return
	}

	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		kit.WriteError(w, r, http.StatusServiceUnavailable, unavailable.Error())
		return
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		kit.WriteError(w, r, upstream.Status, upstream.Error())
		return
	}

	if s.Log != nil {
		s.Log.Error("create order failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error")
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get order failed", zap.Error(err), zap.String("order_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found")
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")

	orders, err := s.Store.List(r.Context(), customerID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list orders failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := r.URL.Query().Get("status")

	err := s.Store.UpdateStatus(r.Context(), id, status)
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Order not found")
		return
	case errors.Is(err, ErrInvalidStatus):
		kit.WriteError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Invalid status. Must be one of %v", ValidStatuses))
		return
	case err != nil:
		if s.Log != nil {
			s.Log.Error("update order status failed", zap.Error(err), zap.String("order_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Order %s status updated to %s", id, status),
	})
}
