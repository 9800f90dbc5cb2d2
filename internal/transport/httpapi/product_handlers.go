package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"minimarket/internal/domain"
)

// handleCreateProduct регистрирует товар в каталоге.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	created, err := s.catalog.CreateProduct(r.Context(), domain.Product{
		Name:         payload.Name,
		Description:  payload.Description,
		PriceMinor:   payload.PriceMinor,
		StockOnHand:  payload.StockOnHand,
		StockMinimum: payload.StockMinimum,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleListLowStock возвращает товары, остаток которых на минимуме или ниже.
func (s *Server) handleListLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListLowStock(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

// handleAdjustStock выполняет ручную корректировку остатка (инвентаризация,
// списание порчи). Отказ по остаткам возвращается как конфликт.
func (s *Server) handleAdjustStock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload adjustStockPayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	if err := s.catalog.AdjustStock(r.Context(), id, payload.Delta); err != nil {
		s.writeError(w, err)
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}
