package order

import (
	"context"

	domain "github.com/example/ecommerce-api/domain/order"
	"github.com/example/ecommerce-api/domain/errs"
	"github.com/example/ecommerce-api/modules/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	itemsByPosition = store.Preload{Path: "OrderItems", Order: "position asc"}
	userName        = store.Preload{Path: "User", Columns: []string{"id", "name"}}
	itemProduct     = store.Preload{Path: "OrderItems.Product"}
	productCategory = store.Preload{Path: "OrderItems.Product.Category"}

	// listPreloads populate the user name and each item's product.
	listPreloads = []store.Preload{userName, itemsByPosition, itemProduct}
	// detailPreloads go one level deeper, down to the product's category.
	detailPreloads = []store.Preload{userName, itemsByPosition, itemProduct, productCategory}
)

// Repository reads and writes orders and order items.
type Repository struct {
	db     *gorm.DB
	orders *store.Collection[domain.Order]
	items  *store.Collection[domain.OrderItem]
}

// NewRepository creates a Repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:     db,
		orders: store.NewCollection[domain.Order](db, ErrOrderNotFound),
		items:  store.NewCollection[domain.OrderItem](db, ErrOrderItemNotFound),
	}
}

// WithTx returns a Repository whose collections run on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{
		db:     tx,
		orders: r.orders.WithTx(tx),
		items:  r.items.WithTx(tx),
	}
}

// Transaction runs fn with a transaction-bound Repository.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return store.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// CreateItem persists one unattached order item.
func (r *Repository) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	return r.items.Create(ctx, item)
}

// FindItem loads an order item by id.
func (r *Repository) FindItem(ctx context.Context, id string) (*domain.OrderItem, error) {
	return r.items.FindByID(ctx, id)
}

// DeleteItems removes the items with the given ids.
func (r *Repository) DeleteItems(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.items.DeleteWhere(ctx, map[string]any{"id": ids})
}

// DeleteItemsOf removes every item attached to orderID.
func (r *Repository) DeleteItemsOf(ctx context.Context, orderID string) (int64, error) {
	return r.items.DeleteWhere(ctx, map[string]any{"order_id": orderID})
}

// AttachItems points the given unattached items at orderID and reports how
// many were claimed.
func (r *Repository) AttachItems(ctx context.Context, orderID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Where("id IN ? AND order_id IS NULL", ids).
		Update("order_id", orderID)
	if result.Error != nil {
		return 0, errs.Storage("attach items", result.Error)
	}
	return result.RowsAffected, nil
}

// CreateOrder inserts the order row only; items are attached separately.
func (r *Repository) CreateOrder(ctx context.Context, o *domain.Order) error {
	if err := r.orders.DB().WithContext(ctx).Omit("OrderItems", "User").Create(o).Error; err != nil {
		return errs.Storage("create order", err)
	}
	return nil
}

// FindOrder loads an order with the given relationships populated.
func (r *Repository) FindOrder(ctx context.Context, id string, preloads ...store.Preload) (*domain.Order, error) {
	return r.orders.FindByID(ctx, id, preloads...)
}

// FindOrders returns every order matching where, oldest first.
func (r *Repository) FindOrders(ctx context.Context, where map[string]any, preloads []store.Preload) ([]domain.Order, error) {
	return r.orders.Find(ctx, store.Query{
		Where:    where,
		Order:    "date_ordered asc",
		Preloads: preloads,
	})
}

// UpdateStatus sets the status column of one order.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	return r.orders.Update(ctx, id, map[string]any{"status": string(status)})
}

// DeleteOrder removes the order row.
func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	return r.orders.Delete(ctx, id)
}

// TotalSales sums total_price over every order.
func (r *Repository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	return r.orders.SumDecimal(ctx, "total_price", nil)
}

// CountOrders returns the number of orders.
func (r *Repository) CountOrders(ctx context.Context) (int64, error) {
	return r.orders.Count(ctx, nil)
}
