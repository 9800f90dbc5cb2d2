package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"minimarket/internal/domain"
	"minimarket/internal/service/catalog"
	"minimarket/internal/service/purchase"
	"minimarket/internal/service/sales"
)

// Server собирает REST API магазина поверх сервисного слоя.
type Server struct {
	catalog   *catalog.Service
	sales     *sales.Lifecycle
	salesRead domain.SalesService
	purchases *purchase.Lifecycle
	orders    *purchase.Service
	suppliers *purchase.SupplierRegistry
	logger    *log.Entry
}

// NewServer создаёт HTTP-сервер API.
func NewServer(
	catalogSvc *catalog.Service,
	salesLifecycle *sales.Lifecycle,
	salesRead domain.SalesService,
	purchaseLifecycle *purchase.Lifecycle,
	orders *purchase.Service,
	suppliers *purchase.SupplierRegistry,
	logger *log.Entry,
) *Server {
	return &Server{
		catalog:   catalogSvc,
		sales:     salesLifecycle,
		salesRead: salesRead,
		purchases: purchaseLifecycle,
		orders:    orders,
		suppliers: suppliers,
		logger:    logger,
	}
}

// Router настраивает маршруты API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/products", s.handleCreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/low-stock", s.handleListLowStock).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", s.handleGetProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}/stock", s.handleAdjustStock).Methods(http.MethodPatch)

	r.HandleFunc("/sales", s.handleCreateSale).Methods(http.MethodPost)
	r.HandleFunc("/sales", s.handleListSales).Methods(http.MethodGet)
	r.HandleFunc("/sales/{id}", s.handleGetSale).Methods(http.MethodGet)
	r.HandleFunc("/sales/{id}", s.handleEditSale).Methods(http.MethodPut)
	r.HandleFunc("/sales/{id}", s.handleVoidSale).Methods(http.MethodDelete)

	r.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", s.handleDeleteOrder).Methods(http.MethodDelete)
	r.HandleFunc("/orders/{id}/status", s.handleUpdateOrderStatus).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{id}/history", s.handleOrderHistory).Methods(http.MethodGet)

	r.HandleFunc("/suppliers", s.handleCreateSupplier).Methods(http.MethodPost)
	r.HandleFunc("/suppliers", s.handleListSuppliers).Methods(http.MethodGet)

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("request handled")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusForError переводит доменные ошибки в HTTP-статусы: отказ валидации
// и пустая корзина — 400, отсутствующая запись — 404, отказ по остаткам и
// статусной машине — 409, рассогласование состояния — 500.
func statusForError(err error) int {
	switch {
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrEmptyTransaction),
		errors.Is(err, domain.ErrAmountMismatch):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsStock(err),
		domain.IsIllegalTransition(err),
		errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

var errBadBody = errors.New("request body is not valid JSON for this endpoint")
