package order

import (
	"time"

	"github.com/example/ecommerce-api/domain/catalog"
	"github.com/example/ecommerce-api/domain/user"
	"github.com/shopspring/decimal"
)

// Status is the caller-driven order state. Any string is accepted; the
// constants name the values the storefront uses.
type Status string

const (
	StatusPending   Status = "0"
	StatusShipped   Status = "1"
	StatusDelivered Status = "2"
	StatusCancelled Status = "3"
)

var statusLabels = map[Status]string{
	StatusPending:   "pending",
	StatusShipped:   "shipped",
	StatusDelivered: "delivered",
	StatusCancelled: "cancelled",
}

// Label returns a readable name for well-known statuses and the raw value
// otherwise.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Known reports whether s is one of the named statuses.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// OrderItem is one (product, quantity) line. OrderID stays nil until the
// owning order is persisted.
type OrderItem struct {
	ID        string           `gorm:"primaryKey;type:text" json:"id"`
	OrderID   *string          `gorm:"type:text;index" json:"-"`
	Position  int              `gorm:"not null;default:0" json:"-"`
	Quantity  int              `gorm:"not null" json:"quantity"`
	ProductID string           `gorm:"type:text;not null;index" json:"productId"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for the OrderItem entity.
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is a placed order. It exclusively owns its items.
type Order struct {
	ID               string          `gorm:"primaryKey;type:text" json:"id"`
	OrderItems       []OrderItem     `gorm:"foreignKey:OrderID" json:"orderItems"`
	ShippingAddress  string          `gorm:"not null;type:text" json:"shippingAddress"`
	ShippingAddress1 string          `gorm:"type:text" json:"shippingAddress1,omitempty"`
	Barangay         string          `gorm:"not null;type:text" json:"barangay"`
	City             string          `gorm:"not null;type:text" json:"city"`
	Zip              string          `gorm:"not null;type:text" json:"zip"`
	Region           string          `gorm:"not null;type:text" json:"region"`
	Phone            string          `gorm:"not null;type:text" json:"phone"`
	Status           Status          `gorm:"not null;type:text;default:'0';index" json:"status"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"totalPrice"`
	UserID           string          `gorm:"type:text;not null;index" json:"userId"`
	User             *user.User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DateOrdered      time.Time       `gorm:"not null;index" json:"dateOrdered"`
}

// TableName returns the table name for the Order entity.
func (Order) TableName() string {
	return "orders"
}

// ItemIDs returns the ids of the order's items in their stored order.
func (o *Order) ItemIDs() []string {
	ids := make([]string, len(o.OrderItems))
	for i, it := range o.OrderItems {
		ids[i] = it.ID
	}
	return ids
}
