package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"minimarket/internal/domain"
)

// handleCreateSale собирает корзину из строк запроса и фиксирует продажу.
// Строки с одним товаром сливаются, количество сверяется с остатком.
func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var payload createSalePayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	comp := domain.NewComposition()
	for _, line := range payload.Lines {
		if err := s.sales.AddLine(r.Context(), comp, line.ProductID, line.Qty); err != nil {
			s.writeError(w, err)
			return
		}
	}

	sale, err := s.sales.Commit(r.Context(), comp, payload.Customer.toDomain(),
		domain.PaymentMethod(payload.PaymentMethod), payload.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toSaleResponse(sale))
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	saleList, err := s.salesRead.ListSales(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]saleResponse, 0, len(saleList))
	for _, sale := range saleList {
		out = append(out, toSaleResponse(sale))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSale(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sale, err := s.salesRead.GetSale(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSaleResponse(sale))
}

// handleEditSale редактирует метаданные продажи. Строки и остатки не меняются.
func (s *Server) handleEditSale(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload editSalePayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	upd := domain.SaleUpdate{Notes: payload.Notes}
	if payload.Customer != nil {
		customer := payload.Customer.toDomain()
		upd.Customer = &customer
	}
	if payload.PaymentMethod != nil {
		method := domain.PaymentMethod(*payload.PaymentMethod)
		upd.PaymentMethod = &method
	}

	if err := s.sales.Edit(r.Context(), id, upd); err != nil {
		s.writeError(w, err)
		return
	}

	sale, err := s.salesRead.GetSale(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSaleResponse(sale))
}

// handleVoidSale аннулирует продажу с возвратом остатков на склад.
func (s *Server) handleVoidSale(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.sales.Void(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
