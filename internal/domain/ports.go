package domain

import "context"

// CatalogService описывает взаимодействие с каталогом товаров.
// Каталог — единственный авторитет по остаткам: проверка и изменение
// выполняются атомарно на его стороне.
type CatalogService interface {
	// GetProduct возвращает товар каталога по идентификатору.
	GetProduct(ctx context.Context, id string) (Product, error)
	// AdjustStock изменяет остаток на delta (отрицательный при продаже,
	// положительный при аннулировании). Запрос, уводящий остаток в минус,
	// отклоняется с StockError без частичного применения.
	AdjustStock(ctx context.Context, id string, delta int32) error
}

// SalesService описывает хранение зафиксированных продаж.
type SalesService interface {
	// CreateSale сохраняет снимок продажи и возвращает его с присвоенным ID.
	CreateSale(ctx context.Context, sale Sale) (Sale, error)
	// GetSale возвращает продажу со строками или ErrSaleNotFound.
	GetSale(ctx context.Context, id string) (Sale, error)
	// ListSales возвращает продажи, новые первыми.
	ListSales(ctx context.Context) ([]Sale, error)
	// UpdateSale применяет редактирование метаданных; строки не затрагиваются.
	UpdateSale(ctx context.Context, id string, upd SaleUpdate) error
	// DeleteSale удаляет продажу или возвращает ErrSaleNotFound.
	DeleteSale(ctx context.Context, id string) error
}

// SupplierService описывает хранение заказов поставщикам.
type SupplierService interface {
	// CreateOrder сохраняет заказ в статусе pending.
	CreateOrder(ctx context.Context, order PurchaseOrder) (PurchaseOrder, error)
	// GetOrder возвращает заказ со строками или ErrOrderNotFound.
	GetOrder(ctx context.Context, id string) (PurchaseOrder, error)
	// ListOrders возвращает заказы, новые первыми.
	ListOrders(ctx context.Context) ([]PurchaseOrder, error)
	// UpdateOrderStatus выполняет переход статуса; недопустимый переход
	// отклоняется с IllegalTransitionError против сохранённого статуса.
	UpdateOrderStatus(ctx context.Context, id string, next OrderStatus) error
	// DeleteOrder удаляет заказ; разрешено только в статусе pending.
	// Остатки каталога при удалении заказа не затрагиваются.
	DeleteOrder(ctx context.Context, id string) error
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	Create(ctx context.Context, product Product) error
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	ListLowStock(ctx context.Context) ([]Product, error)
	// AdjustStock атомарно изменяет остаток; отказ по остаткам — StockError.
	AdjustStock(ctx context.Context, id string, delta int32) (Product, error)
}

// SaleRepository описывает требования к хранилищу продаж.
type SaleRepository interface {
	Create(ctx context.Context, sale Sale) error
	Get(ctx context.Context, id string) (Sale, error)
	List(ctx context.Context) ([]Sale, error)
	UpdateMeta(ctx context.Context, id string, upd SaleUpdate) error
	Delete(ctx context.Context, id string) error
}

// PurchaseOrderRepository описывает требования к хранилищу заказов поставщикам.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order PurchaseOrder) error
	Get(ctx context.Context, id string) (PurchaseOrder, error)
	List(ctx context.Context) ([]PurchaseOrder, error)
	// Save применяет обновления с учётом optimistic locking по Version.
	Save(ctx context.Context, order PurchaseOrder) error
	Delete(ctx context.Context, id string) error
}

// SupplierRepository описывает требования к реестру поставщиков.
type SupplierRepository interface {
	Create(ctx context.Context, supplier Supplier) error
	Get(ctx context.Context, id string) (Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
}

// StatusHistoryRepository хранит историю статусов заказа поставщику.
type StatusHistoryRepository interface {
	Append(ctx context.Context, event StatusEvent) error
	List(ctx context.Context, orderID string) ([]StatusEvent, error)
}
