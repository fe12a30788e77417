package product

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shoplite/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		kit.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "product-service",
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

	r.Get("/products", s.list)
	r.Post("/products", s.create)
	r.Get("/products/{id}", s.get)
	r.Put("/products/{id}", s.update)
	r.Delete("/products/{id}", s.delete)

	return r
}

// productPayload is the create/update body: the Product shape without an
// identifier. Price is a pointer so a missing field can be told apart from
// a legitimate zero price.
type productPayload struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
}

func decodePayload(w http.ResponseWriter, r *http.Request) (productPayload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return productPayload{}, false
	}
	if req.Name == nil || req.Price == nil || req.Category == nil {
		return productPayload{}, false
	}
	return req, true
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := s.Store.List(r.Context(), category)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePayload(w, r)
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "name, price and category are required")
		return
	}

	p, err := s.Store.Create(r.Context(), Product{
		Name:     *req.Name,
		Price:    *req.Price,
		Category: *req.Category,
	})
	if err != nil {
		if s.Log != nil {
			s.Log.Error("create product failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := decodePayload(w, r)
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "name, price and category are required")
		return
	}

	p, found, err := s.Store.Update(r.Context(), id, Product{
		Name:     *req.Name,
		Price:    *req.Price,
		Category: *req.Category,
	})
	if err != nil {
		if s.Log != nil {
			s.Log.Error("update product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("delete product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
