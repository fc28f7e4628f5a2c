// Package notification records customer-facing notices for order events.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	orderdomain "github.com/example/ecommerce-api/domain/order"
	"github.com/example/ecommerce-api/events"
	"github.com/example/ecommerce-api/modules/order"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// DefaultCapacity bounds how many notices are kept in memory.
const DefaultCapacity = 500

// Notice is one recorded notification.
type Notice struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// Module subscribes to order events and keeps the most recent notices in a
// fixed-size ring.
type Module struct {
	mu       sync.RWMutex
	ring     []Notice
	head     int // index of the oldest notice
	size     int
	capacity int
	orders   order.OrderPort
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a notification module holding up to capacity notices.
func NewModule(capacity int, logger types.Logger) *Module {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Module{
		ring:     make([]Notice, capacity),
		capacity: capacity,
		logger:   logger.WithModule("notification"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"order"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "order" {
		m.orders = order.NewOrderAdapter(container)
	}
}

// RegisterEventConsumers subscribes to the order events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderCreatedV1, m.handleOrderCreated, m); err != nil {
		return fmt.Errorf("failed to register OrderCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderStatusChangedV1, m.handleStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register OrderStatusChanged consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderDeletedV1, m.handleOrderDeleted, m); err != nil {
		return fmt.Errorf("failed to register OrderDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "OrderCreated, OrderStatusChanged, OrderDeleted")
	return nil
}

func (m *Module) handleOrderCreated(_ context.Context, event events.OrderCreatedEvent, _ *mono.Msg) error {
	m.record("order_created", event.OrderID, event.UserID,
		fmt.Sprintf("Order %s placed: %d item(s), total %s", event.OrderID, event.ItemCount, event.TotalPrice.StringFixed(2)))
	return nil
}

// Status notices carry the order's size and total when the order module can
// still answer for it.
func (m *Module) handleStatusChanged(ctx context.Context, event events.OrderStatusChangedEvent, _ *mono.Msg) error {
	message := fmt.Sprintf("Order %s is now %s", event.OrderID, orderdomain.Status(event.To).Label())
	if m.orders != nil {
		summary, err := m.orders.GetOrder(ctx, event.OrderID)
		if err != nil {
			m.logger.Warn("Order summary unavailable", "order_id", event.OrderID, "error", err)
		} else {
			message += fmt.Sprintf(" (%d item(s), total %s)", summary.ItemCount, summary.TotalPrice.StringFixed(2))
		}
	}
	m.record("order_status_changed", event.OrderID, event.UserID, message)
	return nil
}

func (m *Module) handleOrderDeleted(_ context.Context, event events.OrderDeletedEvent, _ *mono.Msg) error {
	m.record("order_deleted", event.OrderID, event.UserID,
		fmt.Sprintf("Order %s was removed", event.OrderID))
	return nil
}

func (m *Module) record(kind, orderID, userID, message string) {
	m.logger.Info("Notification", "type", kind, "order_id", orderID, "user_id", userID)

	m.mu.Lock()
	defer m.mu.Unlock()

	n := Notice{
		ID:        uuid.New().String(),
		Type:      kind,
		OrderID:   orderID,
		UserID:    userID,
		Message:   message,
		Channel:   "event",
		Timestamp: time.Now(),
	}
	if m.size < m.capacity {
		m.ring[(m.head+m.size)%m.capacity] = n
		m.size++
		return
	}
	// Full: overwrite the oldest and advance.
	m.ring[m.head] = n
	m.head = (m.head + 1) % m.capacity
}

// Notices returns a copy of the recorded notices, oldest first. A non-empty
// userID keeps only that user's notices.
func (m *Module) Notices(userID string) []Notice {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Notice, 0, m.size)
	for i := range m.size {
		n := m.ring[(m.head+i)%m.capacity]
		if userID == "" || n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Notification module started - listening for order events")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Notification module stopped")
	return nil
}

// Health reports how many notices are held.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"notices":  m.size,
			"capacity": m.capacity,
		},
	}
}
