package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"minimarket/internal/domain"
)

// handleCreateOrder собирает заказ поставщику из строк запроса. Строка с
// product_id берётся из каталога, строка с is_new описывает новый товар.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload createOrderPayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	comp := domain.NewComposition()
	for _, line := range payload.Lines {
		var err error
		if line.IsNew {
			err = s.purchases.AddNewProductLine(comp, line.Name, line.Qty, line.PriceMinor)
		} else {
			err = s.purchases.AddCatalogLine(r.Context(), comp, line.ProductID, line.Qty, line.NegotiatedPriceMinor)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	order, err := s.purchases.Commit(r.Context(), comp, payload.SupplierID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orderList, err := s.orders.ListOrders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orderList))
	for _, order := range orderList {
		out = append(out, toOrderResponse(order))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// handleUpdateOrderStatus выполняет переход статуса заказа.
func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload updateOrderStatusPayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	if err := s.purchases.UpdateStatus(r.Context(), id, domain.OrderStatus(payload.Status)); err != nil {
		s.writeError(w, err)
		return
	}

	order, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// handleDeleteOrder удаляет заказ; разрешено только в статусе pending.
func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.purchases.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleOrderHistory возвращает историю статусов заказа.
func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	events, err := s.orders.OrderHistory(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toStatusEventResponses(events))
}

func (s *Server) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var payload supplierPayload
	if err := decodeBody(r, &payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errBadBody.Error()})
		return
	}

	created, err := s.suppliers.Register(r.Context(), domain.Supplier{
		CompanyName: payload.CompanyName,
		ContactName: payload.ContactName,
		Email:       payload.Email,
		Phone:       payload.Phone,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toSupplierResponse(created))
}

func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	supplierList, err := s.suppliers.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]supplierResponse, 0, len(supplierList))
	for _, supplier := range supplierList {
		out = append(out, toSupplierResponse(supplier))
	}
	s.writeJSON(w, http.StatusOK, out)
}
