package httpapi

import (
	"time"

	"minimarket/internal/domain"
)

type productPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	PriceMinor   int64  `json:"price_minor"`
	StockOnHand  int32  `json:"stock_on_hand"`
	StockMinimum int32  `json:"stock_minimum"`
}

type productResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PriceMinor   int64     `json:"price_minor"`
	StockOnHand  int32     `json:"stock_on_hand"`
	StockMinimum int32     `json:"stock_minimum"`
	LowStock     bool      `json:"low_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceMinor:   p.PriceMinor,
		StockOnHand:  p.StockOnHand,
		StockMinimum: p.StockMinimum,
		LowStock:     p.LowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type adjustStockPayload struct {
	Delta int32 `json:"delta"`
}

type customerPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c customerPayload) toDomain() domain.Customer {
	return domain.Customer{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

type saleLinePayload struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"qty"`
}

type createSalePayload struct {
	Customer      customerPayload   `json:"customer"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes,omitempty"`
	Lines         []saleLinePayload `json:"lines"`
}

type editSalePayload struct {
	Customer      *customerPayload `json:"customer,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

type saleLineResponse struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
	TotalMinor int64  `json:"total_minor"`
}

type saleResponse struct {
	ID            string             `json:"id"`
	Customer      customerPayload    `json:"customer"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	TotalMinor    int64              `json:"total_minor"`
	Lines         []saleLineResponse `json:"lines"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toSaleResponse(sale domain.Sale) saleResponse {
	lines := make([]saleLineResponse, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		lines = append(lines, saleLineResponse{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Qty:        line.Qty,
			PriceMinor: line.PriceMinor,
			TotalMinor: line.LineTotal(),
		})
	}
	return saleResponse{
		ID: sale.ID,
		Customer: customerPayload{
			Name:  sale.Customer.Name,
			Email: sale.Customer.Email,
			Phone: sale.Customer.Phone,
		},
		PaymentMethod: string(sale.PaymentMethod),
		Notes:         sale.Notes,
		TotalMinor:    sale.TotalMinor,
		Lines:         lines,
		CreatedAt:     sale.CreatedAt,
	}
}

type orderLinePayload struct {
	ProductID            string `json:"product_id,omitempty"`
	Name                 string `json:"name,omitempty"`
	Qty                  int32  `json:"qty"`
	PriceMinor           int64  `json:"price_minor,omitempty"`
	NegotiatedPriceMinor int64  `json:"negotiated_price_minor,omitempty"`
	IsNew                bool   `json:"is_new,omitempty"`
}

type createOrderPayload struct {
	SupplierID string             `json:"supplier_id"`
	Lines      []orderLinePayload `json:"lines"`
}

type updateOrderStatusPayload struct {
	Status string `json:"status"`
}

type orderLineResponse struct {
	ProductID  string `json:"product_id,omitempty"`
	Name       string `json:"name"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
	TotalMinor int64  `json:"total_minor"`
	IsNew      bool   `json:"is_new,omitempty"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	SupplierID string              `json:"supplier_id"`
	Status     string              `json:"status"`
	TotalMinor int64               `json:"total_minor"`
	Lines      []orderLineResponse `json:"lines"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func toOrderResponse(order domain.PurchaseOrder) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineResponse{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Qty:        line.Qty,
			PriceMinor: line.PriceMinor,
			TotalMinor: line.LineTotal(),
			IsNew:      line.IsNew,
		})
	}
	return orderResponse{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     string(order.Status),
		TotalMinor: order.TotalMinor,
		Lines:      lines,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

type statusEventResponse struct {
	From     string    `json:"from,omitempty"`
	To       string    `json:"to"`
	Occurred time.Time `json:"occurred"`
}

func toStatusEventResponses(events []domain.StatusEvent) []statusEventResponse {
	out := make([]statusEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, statusEventResponse{
			From:     string(event.From),
			To:       string(event.To),
			Occurred: event.Occurred,
		})
	}
	return out
}

type supplierPayload struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type supplierResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSupplierResponse(s domain.Supplier) supplierResponse {
	return supplierResponse{
		ID:          s.ID,
		CompanyName: s.CompanyName,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		CreatedAt:   s.CreatedAt,
	}
}
