// Package events declares the domain events modules publish on the mono
// event bus.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is emitted after an order and its items are persisted.
type OrderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ItemCount   int             `json:"item_count"`
	Status      string          `json:"status"`
	DateOrdered time.Time       `json:"date_ordered"`
}

// OrderCreatedV1 is the typed event definition for order creation.
// Subject: events.order.v1.order-created
var OrderCreatedV1 = helper.EventDefinition[OrderCreatedEvent](
	"order", "OrderCreated", "v1",
)

// OrderStatusChangedEvent is emitted when an order's status is updated.
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderStatusChangedV1 is the typed event definition for status updates.
// Subject: events.order.v1.order-status-changed
var OrderStatusChangedV1 = helper.EventDefinition[OrderStatusChangedEvent](
	"order", "OrderStatusChanged", "v1",
)

// OrderDeletedEvent is emitted after an order and its items are removed.
type OrderDeletedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	ItemCount int       `json:"item_count"`
	DeletedAt time.Time `json:"deleted_at"`
}

// OrderDeletedV1 is the typed event definition for order deletion.
// Subject: events.order.v1.order-deleted
var OrderDeletedV1 = helper.EventDefinition[OrderDeletedEvent](
	"order", "OrderDeleted", "v1",
)
